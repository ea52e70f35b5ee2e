package tags

import (
	"strings"

	flacvorbis "github.com/go-flac/flacvorbis/v2"
	flacpicture "github.com/go-flac/flacpicture/v2"
	flac "github.com/go-flac/go-flac/v2"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// vorbisFieldNames maps this package's generic field keys to the Vorbis
// comment field names a FLAC player actually recognizes; keys with no
// well-known Vorbis equivalent (AudioSourceURL, Popularimeter, ...) are
// still written under their own name since Vorbis comments are free-form
// and unknown fields are harmless to carry.
var vorbisFieldNames = map[string]string{
	"Title":               flacvorbis.FIELD_TITLE,
	"Artist":              flacvorbis.FIELD_ARTIST,
	"Album":                flacvorbis.FIELD_ALBUM,
	"AlbumArtist":          "ALBUMARTIST",
	"Genre":                flacvorbis.FIELD_GENRE,
	"Year":                 flacvorbis.FIELD_DATE,
	"Track":                flacvorbis.FIELD_TRACKNUMBER,
	"TrackTotal":           "TRACKTOTAL",
	"Disk":                 "DISCNUMBER",
	"DiskTotal":            "DISCTOTAL",
	"ISRC":                 "ISRC",
	"Composer":             "COMPOSER",
	"Comment":              flacvorbis.FIELD_COMMENT,
	"Lyrics":               "LYRICS",
	"CopyrightMessage":     "COPYRIGHT",
	"Label":                "LABEL",
	"Publisher":            "ORGANIZATION",
	"BPM":                  "BPM",
	"InitialKey":           "INITIALKEY",
	"Producer":             "PRODUCER",
	"MixEngineer":          "MIXER",
	"Engineer":             "ENGINEER",
	"Writer":               "WRITER",
	"Lyricist":             "LYRICIST",
	"Arranger":             "ARRANGER",
	"Conductor":            "CONDUCTOR",
	"Remixer":              "REMIXER",
	"CatalogNumber":        "CATALOGNUMBER",
	"Barcode":              "BARCODE",
	"EncoderSoftware":      "ENCODEDBY",
	"ReplayGainTrackGain":  "REPLAYGAIN_TRACK_GAIN",
	"ReplayGainTrackPeak":  "REPLAYGAIN_TRACK_PEAK",
}

// WriteFlac embeds s into the FLAC file at path: every mapped field as a
// Vorbis comment, plus a front-cover picture block if one was attached.
// Grounded on original_source/tidal-dl/src/main.rs's use of the lofty
// crate's VorbisComments tag; go-flac/v2's block-level API is this
// module's analogue (metadata blocks appended directly rather than going
// through a generic tag abstraction).
func WriteFlac(path string, s *Set) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return tidalerr.IO(err)
	}

	comment := flacvorbis.New()
	for _, kv := range s.All() {
		name, ok := vorbisFieldNames[kv[0]]
		if !ok {
			name = strings.ToUpper(kv[0])
		}
		if err := comment.Add(name, kv[1]); err != nil {
			return tidalerr.IO(err)
		}
	}

	commentBlock := comment.Marshal()
	f.Meta = replaceBlock(f.Meta, flac.VorbisComment, &commentBlock)

	if cover, mime := s.Cover(); len(cover) > 0 {
		pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front cover", cover, mime)
		if err != nil {
			return tidalerr.IO(err)
		}
		picBlock := pic.Marshal()
		f.Meta = replaceBlock(f.Meta, flac.Picture, &picBlock)
	}

	if err := f.Save(path); err != nil {
		return tidalerr.IO(err)
	}
	return nil
}

// replaceBlock drops any existing metadata block of kind and appends the
// replacement, so re-tagging a file doesn't accumulate duplicate blocks.
func replaceBlock(blocks []*flac.MetaDataBlock, kind byte, replacement *flac.MetaDataBlock) []*flac.MetaDataBlock {
	out := blocks[:0:0]
	for _, b := range blocks {
		if b.Type != kind {
			out = append(out, b)
		}
	}
	return append(out, replacement)
}
