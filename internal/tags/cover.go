package tags

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// FetchCover downloads a track's XLarge cover art over a plain,
// unauthenticated GET — resources.tidal.com serves cover images publicly,
// no Tidal session headers are involved — and returns the bytes plus a
// best-guess MIME type from the response's Content-Type. A missing cover
// URL or a non-2xx response yields (nil, "", nil): cover art is optional
// decoration, never a hard failure of the download, matching
// fetch_cover_image's Ok(None) arms.
func FetchCover(ctx context.Context, track *tidalapi.Track) ([]byte, string, error) {
	url := track.CoverURL(tidalapi.ImageXLarge)
	if url == "" {
		return nil, "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", tidalerr.Network(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", tidalerr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", tidalerr.IO(err)
	}

	contentType := resp.Header.Get("Content-Type")
	return data, guessImageMIME(contentType), nil
}

func guessImageMIME(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return "image/png"
	case strings.Contains(ct, "gif"):
		return "image/gif"
	case strings.Contains(ct, "bmp"):
		return "image/bmp"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return "image/jpeg"
	default:
		return "image/jpeg"
	}
}
