// Package manifest decodes the two manifest shapes a playbackinfo response
// can carry: the proprietary BTS JSON form and the MPEG-DASH MPD XML form.
// Grounded on original_source/tidal-rs/src/core/api/playback.rs; the MPD
// projection below (decode_dash_manifest/parse_mpd) is ported token for
// token since it encodes an observed quirk (a single running segment
// counter, ignoring startNumber/timescale/@t) that must be reproduced
// exactly rather than "fixed".
package manifest

import (
	"encoding/base64"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

const (
	btsMimeType  = "application/vnd.tidal.bts"
	dashMimeType = "application/dash+xml"
)

// IsBts reports whether mimeType names the proprietary BTS manifest shape.
func IsBts(mimeType string) bool {
	return strings.Contains(mimeType, "vnd.tidal.bt")
}

// IsDash reports whether mimeType names an MPEG-DASH XML manifest.
func IsDash(mimeType string) bool {
	return strings.Contains(mimeType, "dash+xml")
}

func decodeBase64(manifest string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(manifest)
	if err != nil {
		return nil, tidalerr.DecodeWrap("decode manifest base64", err)
	}
	return decoded, nil
}

// DecodeBts base64-decodes and JSON-parses the BTS manifest embedded in a
// PlaybackInfo response.
func DecodeBts(info *tidalapi.PlaybackInfo) (*tidalapi.BtsManifest, error) {
	decoded, err := decodeBase64(info.Manifest)
	if err != nil {
		return nil, err
	}
	var out tidalapi.BtsManifest
	if err := json.Unmarshal(decoded, &out); err != nil {
		return nil, tidalerr.JSON(err)
	}
	return &out, nil
}

// DecodeDash base64-decodes the manifest and projects the MPD XML down to
// a flat, ordered segment-URL list.
func DecodeDash(info *tidalapi.PlaybackInfo) (*tidalapi.DashManifest, error) {
	decoded, err := decodeBase64(info.Manifest)
	if err != nil {
		return nil, err
	}
	return ParseMPD(string(decoded))
}

type segmentRun struct {
	repeat int // total occurrence count, i.e. r+1
}

// ParseMPD streams the MPD XML with encoding/xml.Decoder's token reader —
// the Go analogue of quick_xml's event-based reader — and projects it to
// the flat URL list the downstream stream acquisition component consumes.
//
// The projection deliberately keeps the original's exact (and slightly
// surprising) segment-numbering behavior: one running counter starting at
// 1 is advanced across every <S> entry's repeat count, in document order,
// regardless of SegmentTemplate's startNumber or any <S t="..."> attribute
// — see DESIGN.md's Open Question decision for why this is kept rather
// than "corrected" against the MPEG-DASH spec.
func ParseMPD(mpdString string) (*tidalapi.DashManifest, error) {
	decoder := xml.NewDecoder(strings.NewReader(mpdString))

	var (
		urls             []string
		mimeType         string
		codecs           string
		inSegmentTimeline bool
		initializationURL string
		mediaTemplate     string
		segments          []segmentRun
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, tidalerr.Manifest("MPD parse error: " + err.Error())
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "AdaptationSet":
				if v := attr(el, "mimeType"); v != "" {
					mimeType = v
				}
			case "Representation":
				if v := attr(el, "codecs"); v != "" {
					codecs = v
				}
				if v := attr(el, "mimeType"); v != "" {
					mimeType = v
				}
			case "SegmentTemplate":
				if v := attr(el, "initialization"); v != "" {
					initializationURL = v
				}
				if v := attr(el, "media"); v != "" {
					mediaTemplate = v
				}
			case "SegmentTimeline":
				inSegmentTimeline = true
			case "S":
				if inSegmentTimeline {
					repeat := 0
					if v := attr(el, "r"); v != "" {
						if n, err := strconv.Atoi(v); err == nil {
							repeat = n
						}
					}
					segments = append(segments, segmentRun{repeat: repeat + 1})
				}
			}
		case xml.EndElement:
			if el.Name.Local == "SegmentTimeline" {
				inSegmentTimeline = false
			}
		}
	}

	if initializationURL != "" {
		urls = append(urls, initializationURL)
	}

	if mediaTemplate != "" {
		segmentNumber := 1
		for _, seg := range segments {
			for i := 0; i < seg.repeat; i++ {
				urls = append(urls, strings.ReplaceAll(mediaTemplate, "$Number$", strconv.Itoa(segmentNumber)))
				segmentNumber++
			}
		}
	}

	if len(urls) == 0 {
		return nil, tidalerr.Manifest("No URLs found in DASH manifest")
	}

	if mimeType == "" {
		mimeType = "audio/mp4"
	}

	return &tidalapi.DashManifest{
		MimeType: mimeType,
		Codecs:   codecs,
		URLs:     urls,
	}, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
