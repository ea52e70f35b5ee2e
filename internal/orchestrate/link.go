// Package orchestrate drives the end-to-end download flow: parsing a
// Tidal link, bootstrapping an authenticated session, and running the
// track/album/playlist download loops. Grounded on
// original_source/tidal-dl/src/main.rs.
package orchestrate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// LinkKind is the content type a parsed Tidal link resolves to.
type LinkKind string

const (
	KindTrack    LinkKind = "track"
	KindAlbum    LinkKind = "album"
	KindPlaylist LinkKind = "playlist"
)

var (
	trackRe    = regexp.MustCompile(`(?:tidal\.com|listen\.tidal\.com)(?:/browse)?/track/(\d+)`)
	albumRe    = regexp.MustCompile(`(?:tidal\.com|listen\.tidal\.com)(?:/browse)?/album/(\d+)`)
	playlistRe = regexp.MustCompile(`(?:tidal\.com|listen\.tidal\.com)(?:/browse)?/playlist/([a-f0-9-]+)`)
)

// ParseLink accepts a bare numeric track id or a tidal.com/listen.tidal.com
// URL for a track, album, or playlist, and resolves it to a (kind, id)
// pair. A bare numeric id is always treated as a track id, matching the
// original's first check.
func ParseLink(link string) (LinkKind, string, error) {
	if _, err := strconv.ParseUint(link, 10, 64); err == nil {
		return KindTrack, link, nil
	}
	if m := trackRe.FindStringSubmatch(link); m != nil {
		return KindTrack, m[1], nil
	}
	if m := albumRe.FindStringSubmatch(link); m != nil {
		return KindAlbum, m[1], nil
	}
	if m := playlistRe.FindStringSubmatch(link); m != nil {
		return KindPlaylist, m[1], nil
	}
	return "", "", tidalerr.Decode("could not parse Tidal link: " + link)
}

const invalidFilenameChars = `<>:"/\|?*`

// SanitizeFilename replaces every filesystem-hostile character with an
// underscore and trims trailing dots/spaces, which Windows silently drops
// from a path component.
func SanitizeFilename(name string) string {
	result := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
	return strings.TrimRight(result, ". ")
}

// FormatDuration renders a duration in seconds as "m:ss", matching
// tidalapi's own track-duration formatting exactly (kept in sync
// deliberately — both exist because this one takes a bare int rather
// than a Track, for durations that don't come from a Track struct).
func FormatDuration(seconds int) string {
	mins := seconds / 60
	secs := seconds % 60
	return strconv.Itoa(mins) + ":" + pad2(secs)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
