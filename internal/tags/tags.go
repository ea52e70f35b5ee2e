// Package tags embeds metadata into a downloaded audio file: FLAC via
// Vorbis comments and a front-cover picture block, MP4 via the ilst atom.
// Grounded on original_source/tidal-dl/src/main.rs's embed_metadata, whose
// field-by-field mapping and credits-routing table are ported below field
// for field rather than "cleaned up" — the original's fallback chains
// (album artist falling back to track's primary artist falling back to
// the joined artist list, for instance) are load-bearing behavior, not
// incidental style.
package tags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidal-dl/tidal-dl/internal/stream"
	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
)

// field is one generic tag assignment, keyed by a name shared across both
// backends; flac.go and mp4.go each translate the key set they recognize
// into their own container's representation.
type field struct {
	key   string
	value string
}

// Set is the backend-agnostic result of mapping one track (plus its
// stream and credits) to tag fields, ready for either writer to consume.
type Set struct {
	fields   []field
	comment  []string // accumulated free-text comment lines, joined with " | "
	cover    []byte
	coverMIME string
}

func (s *Set) set(key, value string) {
	if value == "" {
		return
	}
	s.fields = append(s.fields, field{key, value})
}

func (s *Set) addComment(line string) {
	s.comment = append(s.comment, line)
}

// Get returns the first value stored under key, or "" if none.
func (s *Set) Get(key string) string {
	for _, f := range s.fields {
		if f.key == key {
			return f.value
		}
	}
	return ""
}

// Comment returns the accumulated free-text comment lines joined with
// " | ", or "" if none were collected.
func (s *Set) Comment() string {
	return strings.Join(s.comment, " | ")
}

// All returns every (key, value) pair in assignment order, the comment
// field folded in last as "Comment" if any comment lines were collected.
func (s *Set) All() [][2]string {
	out := make([][2]string, 0, len(s.fields)+1)
	for _, f := range s.fields {
		out = append(out, [2]string{f.key, f.value})
	}
	if len(s.comment) > 0 {
		out = append(out, [2]string{"Comment", strings.Join(s.comment, " | ")})
	}
	return out
}

// Cover returns the embedded cover art bytes and its MIME type, if any
// was attached via WithCover.
func (s *Set) Cover() ([]byte, string) {
	return s.cover, s.coverMIME
}

// WithCover attaches front-cover artwork to the set.
func (s *Set) WithCover(data []byte, mime string) {
	s.cover = data
	s.coverMIME = mime
}

// BuildFullTitle joins a track's title with its version in parentheses,
// e.g. "Run (Radio Edit)" — used both for tagging and for filenames.
func BuildFullTitle(title string, version *string) string {
	if version != nil && *version != "" {
		return fmt.Sprintf("%s (%s)", title, *version)
	}
	return title
}

func encodeAudioDetails(info *stream.Info) string {
	var parts []string
	if info.SampleRate != nil {
		parts = append(parts, fmt.Sprintf("%d kHz", *info.SampleRate/1000))
	}
	if info.BitDepth != nil {
		parts = append(parts, fmt.Sprintf("%d bit", *info.BitDepth))
	}
	if info.Codecs != "" {
		parts = append(parts, info.Codecs)
	}
	return strings.Join(parts, " ")
}

// creditRouting maps a lower-cased credit type to the generic field key
// it should be written under; an empty string routes to the comment
// field instead, matching the original's wildcard arm.
var creditRouting = map[string]string{
	"producer":            "Producer",
	"producers":           "Producer",
	"mixer":               "MixEngineer",
	"mixing":              "MixEngineer",
	"mix engineer":        "MixEngineer",
	"engineer":            "Engineer",
	"recording engineer":  "Engineer",
	"audio engineer":      "Engineer",
	"writer":              "Writer",
	"songwriter":          "Writer",
	"composer":            "Composer",
	"composers":           "Composer",
	"lyricist":            "Lyricist",
	"arranger":            "Arranger",
	"conductor":           "Conductor",
	"remixer":             "Remixer",
	"remix":               "Remixer",
	"record label":        "Label",
}

// Build maps one track to a backend-agnostic Set, following
// embed_metadata's field order and fallback chains. albumPage may be nil
// if the credits lookup failed or the track has no album — credits are
// then simply omitted, matching the original's Err(_) => None arm.
func Build(track *tidalapi.Track, info *stream.Info, albumPage *tidalapi.AlbumPage, lyrics string, fullAlbum *tidalapi.Album) *Set {
	s := &Set{}

	artistNames := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		artistNames[i] = a.Name
	}
	artistsJoined := strings.Join(artistNames, ", ")

	fullTitle := BuildFullTitle(track.Title, track.Version)
	s.set("Title", fullTitle)
	s.set("Artist", artistsJoined)

	if track.Version != nil && *track.Version != "" {
		s.set("TrackSubtitle", *track.Version)
	}

	switch {
	case track.Album != nil && track.Album.PrimaryArtist() != nil:
		s.set("AlbumArtist", track.Album.PrimaryArtist().Name)
	case track.PrimaryArtist() != nil:
		s.set("AlbumArtist", track.PrimaryArtist().Name)
	default:
		s.set("AlbumArtist", artistsJoined)
	}

	s.set("Performer", artistsJoined)
	s.set("OriginalArtist", artistsJoined)

	// TrackArtists: the original pushes one multi-valued tag item per
	// artist; both backends fold that into a comma-joined value here,
	// since neither Vorbis comments nor MP4 freeform atoms gain anything
	// from keeping them as separate list entries for this field.
	if len(artistNames) > 0 {
		s.set("TrackArtists", strings.Join(artistNames, ", "))
	}

	genreTags := mediaTags(track.MediaMetadata)
	if len(genreTags) == 0 && track.Album != nil {
		genreTags = mediaTags(track.Album.MediaMetadata)
	}
	if len(genreTags) > 0 {
		s.set("Genre", strings.Join(genreTags, ", "))
	}

	var dateToUse *string
	if track.Album != nil {
		if track.Album.ReleaseDate != nil {
			dateToUse = track.Album.ReleaseDate
		} else if track.Album.StreamStartDate != nil {
			dateToUse = track.Album.StreamStartDate
		}
	}
	if dateToUse == nil {
		dateToUse = track.StreamStartDate
	}
	if dateToUse != nil {
		if year, ok := yearOf(*dateToUse); ok {
			s.set("Year", year)
			dateOnly := strings.SplitN(*dateToUse, "T", 2)[0]
			s.set("RecordingDate", dateOnly)
			s.set("ReleaseDate", dateOnly)
			s.set("OriginalReleaseDate", dateOnly)
		}
	}

	if track.Album != nil {
		s.set("Album", track.Album.Title)

		if fullAlbum != nil && fullAlbum.NumberOfTracks != nil {
			s.set("TrackTotal", strconv.Itoa(*fullAlbum.NumberOfTracks))
		} else if track.Album.NumberOfTracks != nil {
			s.set("TrackTotal", strconv.Itoa(*track.Album.NumberOfTracks))
		}
		if fullAlbum != nil && fullAlbum.NumberOfVolumes != nil {
			s.set("DiskTotal", strconv.Itoa(*fullAlbum.NumberOfVolumes))
		} else if track.Album.NumberOfVolumes != nil {
			s.set("DiskTotal", strconv.Itoa(*track.Album.NumberOfVolumes))
		}

		if track.Album.UPC != nil {
			s.set("CatalogNumber", *track.Album.UPC)
			s.set("Barcode", *track.Album.UPC)
		}
		if track.Album.AlbumType != nil {
			s.set("OriginalMediaType", *track.Album.AlbumType)
		}
	}

	if track.TrackNumber != nil {
		s.set("Track", strconv.Itoa(*track.TrackNumber))
	}
	if track.VolumeNumber != nil {
		s.set("Disk", strconv.Itoa(*track.VolumeNumber))
	}
	if track.ISRC != nil {
		s.set("ISRC", *track.ISRC)
	}
	if track.URL != nil {
		s.set("AudioSourceURL", *track.URL)
	}
	if track.Explicit {
		s.set("ParentalAdvisory", "Explicit")
	}
	if track.ReplayGain != nil {
		s.set("ReplayGainTrackGain", fmt.Sprintf("%.2f dB", *track.ReplayGain))
	}
	if track.Peak != nil {
		s.set("ReplayGainTrackPeak", fmt.Sprintf("%.6f", *track.Peak))
	}

	var encoderParts []string
	quality := track.AudioQuality
	if quality == nil && track.Album != nil {
		quality = track.Album.AudioQuality
	}
	if quality != nil {
		encoderParts = append(encoderParts, "Tidal "+*quality)
	}
	if details := encodeAudioDetails(info); details != "" {
		encoderParts = append(encoderParts, details)
	}
	if len(track.AudioModes) > 0 {
		encoderParts = append(encoderParts, "Modes: "+strings.Join(track.AudioModes, ", "))
	}
	if len(encoderParts) > 0 {
		s.set("EncoderSettings", strings.Join(encoderParts, " | "))
	}
	s.set("EncoderSoftware", "Tidal")

	if len(genreTags) > 0 {
		s.set("Description", "Quality: "+strings.Join(genreTags, ", "))
	}
	if track.Popularity != nil {
		s.set("Popularimeter", strconv.Itoa(*track.Popularity))
	}

	copyright := track.Copyright
	if copyright == nil && track.Album != nil {
		copyright = track.Album.Copyright
	}
	if copyright != nil {
		s.set("CopyrightMessage", *copyright)
	}

	if track.Album != nil && track.Album.ArtistRef != nil {
		s.set("Label", track.Album.ArtistRef.Name)
		s.set("Publisher", track.Album.ArtistRef.Name)
	}
	s.set("EncodedBy", "Tidal")

	if key := track.MusicalKeyFormatted(); key != "" {
		s.set("InitialKey", key)
	}
	if track.BPM != nil {
		s.set("BPM", strconv.Itoa(*track.BPM))
		s.set("IntegerBpm", strconv.Itoa(*track.BPM))
	}

	if track.Popularity != nil {
		s.addComment(fmt.Sprintf("Popularity: %d/100", *track.Popularity))
	}
	if track.StreamReady != nil && *track.StreamReady && track.StreamStartDate != nil {
		dateOnly := strings.SplitN(*track.StreamStartDate, "T", 2)[0]
		s.addComment("Available since: " + dateOnly)
	}
	s.addComment(fmt.Sprintf("Tidal ID: %d", track.ID))

	if lyrics != "" {
		s.set("Lyrics", lyrics)
	}

	applyCredits(s, albumPage)

	// Composer defaults to the primary artist only once an explicit
	// "composer"/"composers" credit has had its chance to set it above.
	if s.Get("Composer") == "" {
		if p := track.PrimaryArtist(); p != nil {
			s.set("Composer", p.Name)
		} else {
			s.set("Composer", artistsJoined)
		}
	}

	return s
}

func mediaTags(m *tidalapi.MediaMetadata) []string {
	if m == nil || len(m.Tags) == 0 {
		return nil
	}
	return m.Tags
}

func yearOf(date string) (string, bool) {
	year := strings.SplitN(date, "-", 2)[0]
	if len(year) == 0 {
		return "", false
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return year, true
}

// applyCredits walks the ALBUM_HEADER module of a /pages/album payload —
// the only place the catalogue exposes role-granular credits — and routes
// each credit's contributor list to a tag field, or to the comment field
// for roles with no dedicated field (performers and anything unrecognized).
func applyCredits(s *Set, albumPage *tidalapi.AlbumPage) {
	if albumPage == nil {
		return
	}
	var credits []tidalapi.Credit
	for _, row := range albumPage.Rows {
		for _, mod := range row.Modules {
			if mod.ModuleType == "ALBUM_HEADER" && mod.Credits != nil {
				credits = mod.Credits.Items
			}
		}
	}

	for _, credit := range credits {
		names := make([]string, len(credit.Contributors))
		for i, c := range credit.Contributors {
			names[i] = c.Name
		}
		contributors := strings.Join(names, ", ")
		if contributors == "" {
			continue
		}

		lower := strings.ToLower(credit.CreditType)
		switch lower {
		case "performer", "performers":
			s.addComment("Performers: " + contributors)
		default:
			if key, ok := creditRouting[lower]; ok {
				if key == "Composer" && s.Get("Composer") != "" {
					continue
				}
				if key == "Label" {
					s.set("Label", contributors)
					s.set("Publisher", contributors)
					continue
				}
				s.set(key, contributors)
			} else {
				s.addComment(fmt.Sprintf("%s: %s", credit.CreditType, contributors))
			}
		}
	}
}
