// Package container sniffs the downloaded segment bytes to decide which
// container a track decodes to, rather than trusting the stream info's
// codec/mime-type hints in isolation. Grounded on
// original_source/tidal-dl/src/main.rs's detect_container.
package container

// Kind is the detected container format.
type Kind string

const (
	KindFlac Kind = "flac"
	KindMP4  Kind = "mp4"
)

// Detect sniffs data's magic bytes: "fLaC" at offset 0 identifies a FLAC
// stream, "ftyp" at offset 4 identifies an ISO base media (MP4) file.
// Ambiguous or too-short input defaults to FLAC, matching the original's
// fallback exactly.
func Detect(data []byte) Kind {
	if len(data) >= 4 && string(data[:4]) == "fLaC" {
		return KindFlac
	}
	if len(data) >= 8 && string(data[4:8]) == "ftyp" {
		return KindMP4
	}
	return KindFlac
}

// Extension returns the file extension for k.
func (k Kind) Extension() string {
	switch k {
	case KindMP4:
		return "m4a"
	default:
		return "flac"
	}
}
