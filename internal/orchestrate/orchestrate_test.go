package orchestrate

import "testing"

// TestParseLinkVariants is testable property #1.
func TestParseLinkVariants(t *testing.T) {
	cases := []struct {
		link     string
		wantKind LinkKind
		wantID   string
	}{
		{"123456", KindTrack, "123456"},
		{"https://tidal.com/browse/track/789", KindTrack, "789"},
		{"https://listen.tidal.com/track/789", KindTrack, "789"},
		{"https://tidal.com/browse/album/42", KindAlbum, "42"},
		{"https://listen.tidal.com/album/42", KindAlbum, "42"},
		{"https://tidal.com/browse/playlist/abcd1234-ab12-ab12-ab12-abcdef123456", KindPlaylist, "abcd1234-ab12-ab12-ab12-abcdef123456"},
	}
	for _, c := range cases {
		kind, id, err := ParseLink(c.link)
		if err != nil {
			t.Fatalf("ParseLink(%q): %v", c.link, err)
		}
		if kind != c.wantKind || id != c.wantID {
			t.Errorf("ParseLink(%q) = (%q, %q), want (%q, %q)", c.link, kind, id, c.wantKind, c.wantID)
		}
	}
}

func TestParseLinkRejectsUnrecognizedInput(t *testing.T) {
	if _, _, err := ParseLink("https://example.com/not-tidal"); err == nil {
		t.Fatal("expected an error for a non-Tidal link")
	}
}

// TestSanitizeFilename is testable property #3.
func TestSanitizeFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{`AC/DC - T.N.T`, "AC_DC - T.N.T"},
		{`Artist: "Title"`, "Artist_ _Title_"},
		{"trailing dot.", "trailing dot"},
		{"trailing space ", "trailing space"},
		{`<weird>|name?*`, "_weird__name__"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.seconds); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}
