package container

import "testing"

// TestDetectDefaultsToFlac is testable property #7: ambiguous input
// defaults to FLAC rather than erroring.
func TestDetectDefaultsToFlac(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Kind
	}{
		{"flac magic", []byte("fLaC\x00\x00\x00\x00"), KindFlac},
		{"mp4 ftyp", []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'M', '4', 'A', ' '}, KindMP4},
		{"empty", nil, KindFlac},
		{"too short for either magic", []byte{1, 2, 3}, KindFlac},
		{"neither magic present", []byte("RIFF....WAVEfmt "), KindFlac},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Detect(c.data); got != c.want {
				t.Errorf("Detect(%q) = %v, want %v", c.data, got, c.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if KindFlac.Extension() != "flac" {
		t.Errorf("KindFlac.Extension() = %q", KindFlac.Extension())
	}
	if KindMP4.Extension() != "m4a" {
		t.Errorf("KindMP4.Extension() = %q", KindMP4.Extension())
	}
}
