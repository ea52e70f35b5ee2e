// Package stream implements stream acquisition (C7): resolving a track's
// playback manifest into an ordered list of segment URLs plus an optional
// decryptor, then fetching and decrypting those segments strictly in
// order. Grounded on original_source/tidal-rs/src/core/stream.rs.
package stream

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidal-dl/tidal-dl/internal/crypto"
	"github.com/tidal-dl/tidal-dl/internal/manifest"
	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// AudioQuality is the five-value quality ladder the playbackinfo endpoint
// accepts; HiResLossless is the default the original client always
// requested.
type AudioQuality string

const (
	QualityLow           AudioQuality = "LOW"
	QualityHigh          AudioQuality = "HIGH"
	QualityLossless      AudioQuality = "LOSSLESS"
	QualityHiRes         AudioQuality = "HI_RES"
	QualityHiResLossless AudioQuality = "HI_RES_LOSSLESS"
)

// Info is the resolved, ready-to-fetch stream: an ordered URL list, the
// container/codec the segments decode to, and an optional decryptor. It
// owns the StreamDecryptor — the decryptor is mutable, single-use, and
// must be advanced in URL order (see internal/crypto).
type Info struct {
	TrackID    int64
	URLs       []string
	MimeType   string
	Codecs     string
	SampleRate *int
	BitDepth   *int
	Decryptor  *crypto.StreamDecryptor
}

// FileExtension reports the container extension the segments decode to:
// "flac" for lossless FLAC, "m4a" for everything else, matching
// StreamInfo::file_extension exactly.
func (i Info) FileExtension() string {
	switch i.Codecs {
	case "flac":
		return "flac"
	case "mp4a.40.2", "mp4a.40.5":
		return "m4a"
	}
	if strings.Contains(strings.ToLower(i.MimeType), "flac") {
		return "flac"
	}
	return "m4a"
}

// IsLossless reports whether the stream is FLAC.
func (i Info) IsLossless() bool {
	return i.Codecs == "flac" || strings.Contains(strings.ToLower(i.MimeType), "flac")
}

// GetInfo fetches playback info for a track at the requested quality and
// resolves it into an Info, dispatching on manifest_mime_type and, for
// BTS manifests, on encryption_type.
func GetInfo(ctx context.Context, client *tidalapi.Client, trackID int64, quality AudioQuality) (*Info, error) {
	var playbackInfo tidalapi.PlaybackInfo
	url := client.ListenURL(
		itoaPath(trackID)+"/playbackinfopostpaywall/v4",
		[2]string{"playbackmode", "STREAM"},
		[2]string{"assetpresentation", "FULL"},
		[2]string{"audioquality", string(quality)},
		[2]string{"prefetch", "false"},
	)
	if err := client.Get(ctx, url, &playbackInfo); err != nil {
		return nil, err
	}
	return parseStreamInfo(&playbackInfo)
}

func itoaPath(trackID int64) string {
	return "tracks/" + strconv.FormatInt(trackID, 10)
}

func parseStreamInfo(playbackInfo *tidalapi.PlaybackInfo) (*Info, error) {
	switch {
	case manifest.IsBts(playbackInfo.ManifestMimeType):
		bts, err := manifest.DecodeBts(playbackInfo)
		if err != nil {
			return nil, err
		}

		var decryptor *crypto.StreamDecryptor
		switch bts.EncryptionType {
		case "OLD_AES":
			if bts.KeyID == nil {
				return nil, tidalerr.Manifest("BTS manifest missing keyId for OLD_AES encryption")
			}
			dk, err := crypto.UnwrapKeyID(*bts.KeyID)
			if err != nil {
				return nil, err
			}
			decryptor, err = crypto.NewStreamDecryptor(dk)
			if err != nil {
				return nil, err
			}
		case "NONE":
			decryptor = nil
		default:
			return nil, tidalerr.Encryption("unknown encryption type: " + bts.EncryptionType)
		}

		return &Info{
			TrackID:    playbackInfo.TrackID,
			URLs:       bts.URLs,
			MimeType:   bts.MimeType,
			Codecs:     bts.Codecs,
			SampleRate: playbackInfo.SampleRate,
			BitDepth:   playbackInfo.BitDepth,
			Decryptor:  decryptor,
		}, nil

	case manifest.IsDash(playbackInfo.ManifestMimeType):
		dash, err := manifest.DecodeDash(playbackInfo)
		if err != nil {
			return nil, err
		}
		return &Info{
			TrackID:    playbackInfo.TrackID,
			URLs:       dash.URLs,
			MimeType:   dash.MimeType,
			Codecs:     dash.Codecs,
			SampleRate: playbackInfo.SampleRate,
			BitDepth:   playbackInfo.BitDepth,
		}, nil

	default:
		return nil, tidalerr.Manifest("unknown manifest type: " + playbackInfo.ManifestMimeType)
	}
}

// Fetch downloads every segment URL strictly in order, decrypting each
// one in place before appending it, and returns the concatenated bytes.
// Segments are never fetched concurrently: the CTR decryptor is a single
// mutable, non-restartable state machine (see internal/crypto) that
// depends on being advanced in exactly this order.
func Fetch(ctx context.Context, httpClient *http.Client, info *Info) ([]byte, error) {
	var data []byte
	for _, segmentURL := range info.URLs {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, segmentURL, nil)
		if err != nil {
			return nil, tidalerr.Network(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, tidalerr.Network(err)
		}
		segment, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, tidalerr.IO(err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, tidalerr.API(resp.StatusCode, string(segment))
		}

		if info.Decryptor != nil {
			info.Decryptor.Decrypt(segment)
		}
		data = append(data, segment...)
	}
	return data, nil
}
