package tags

import (
	"path/filepath"
	"strings"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// Write embeds s into the audio file at path, dispatching on the file's
// extension the way embed_metadata dispatches on TagType: ".flac" gets
// Vorbis comments, everything else gets the MP4 ilst atom.
func Write(path string, s *Set) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".flac":
		return WriteFlac(path, s)
	case ".m4a", ".mp4":
		return WriteMp4(path, s)
	default:
		return tidalerr.Decode("unsupported container for tagging: " + ext)
	}
}
