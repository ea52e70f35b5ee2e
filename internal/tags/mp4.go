package tags

import (
	"strconv"
	"strings"

	mp4tag "github.com/Sorrow446/go-mp4tag"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// WriteMp4 embeds s into the M4A file at path via the ilst atom. Fields
// with a dedicated MP4Tags member are set directly; everything else this
// package's generic field set carries (ISRC, catalog numbers, per-role
// credits, ...) has no standard iTunes atom, so it is folded into the
// Comments field the same way the original's fallback arm folds unmapped
// credit roles into its lofty Comment tag.
func WriteMp4(path string, s *Set) error {
	m, err := mp4tag.Open(path)
	if err != nil {
		return tidalerr.IO(err)
	}
	defer m.Close()

	out := &mp4tag.MP4Tags{
		Title:       s.Get("Title"),
		Artist:      s.Get("Artist"),
		AlbumArtist: s.Get("AlbumArtist"),
		Album:       s.Get("Album"),
		Genre:       s.Get("Genre"),
		Composer:    s.Get("Composer"),
		Lyrics:      s.Get("Lyrics"),
		Copyright:   s.Get("CopyrightMessage"),
		Year:        s.Get("Year"),
		Comments:    extraComments(s),
	}

	if v := s.Get("Track"); v != "" {
		out.TrackNumber = atoiSafe(v)
	}
	if v := s.Get("TrackTotal"); v != "" {
		out.TrackTotal = atoiSafe(v)
	}
	if v := s.Get("Disk"); v != "" {
		out.DiscNumber = atoiSafe(v)
	}
	if v := s.Get("DiskTotal"); v != "" {
		out.DiscTotal = atoiSafe(v)
	}
	if v := s.Get("BPM"); v != "" {
		out.BPM = atoiSafe(v)
	}

	if cover, _ := s.Cover(); len(cover) > 0 {
		out.Pictures = []*mp4tag.MP4Picture{{Data: cover}}
	}

	if err := m.Write(out, nil); err != nil {
		return tidalerr.IO(err)
	}
	return nil
}

// extraComments folds the fields with no dedicated MP4 atom, plus the
// accumulated free-text comment, into one Comments string. This is the
// same fallback the fields below get in Vorbis comments too — flac.go's
// generic loop writes any key with no explicit mapping under its own
// name, so this list keeps the two tag writers at parity.
func extraComments(s *Set) string {
	var extras []string
	for _, key := range []string{
		"ISRC", "CatalogNumber", "Barcode", "Label", "Publisher",
		"InitialKey", "Producer", "MixEngineer", "Engineer", "Writer",
		"Lyricist", "Arranger", "Conductor", "Remixer", "EncoderSettings",
		"ParentalAdvisory",
		"TrackSubtitle", "Performer", "OriginalArtist", "TrackArtists",
		"RecordingDate", "ReleaseDate", "OriginalReleaseDate",
		"OriginalMediaType", "AudioSourceURL", "ReplayGainTrackGain",
		"ReplayGainTrackPeak", "Description", "Popularimeter",
		"EncoderSoftware", "EncodedBy", "IntegerBpm",
	} {
		if v := s.Get(key); v != "" {
			extras = append(extras, key+": "+v)
		}
	}
	if c := s.Comment(); c != "" {
		extras = append(extras, c)
	}
	return strings.Join(extras, " | ")
}

// atoiSafe parses a tag field we built ourselves as a decimal string
// (track number, BPM, ...); a malformed value degrades to 0 rather than
// failing the whole tag write.
func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
