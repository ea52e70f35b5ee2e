package tidalapi

import (
	"context"
	"strconv"
	"strings"
)

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// GetTrack fetches one track by id.
func (c *Client) GetTrack(ctx context.Context, trackID int64) (*Track, error) {
	var out Track
	if err := c.Get(ctx, c.APIURL("tracks/"+strconv.FormatInt(trackID, 10)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTracks batch-fetches tracks by a comma-joined id list.
func (c *Client) GetTracks(ctx context.Context, trackIDs []int64) ([]Track, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}
	var resp struct {
		Items []Track `json:"items"`
	}
	if err := c.Get(ctx, c.APIURL("tracks", [2]string{"ids", joinIDs(trackIDs)}), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetTrackCredits fetches the per-track credits list (distinct from the
// album-page credits C9 parses — this is the flat /tracks/{id}/credits
// endpoint).
func (c *Client) GetTrackCredits(ctx context.Context, trackID int64) ([]Credit, error) {
	var resp struct {
		Credits []Credit `json:"credits"`
	}
	if err := c.Get(ctx, c.APIURL("tracks/"+strconv.FormatInt(trackID, 10)+"/credits"), &resp); err != nil {
		return nil, err
	}
	return resp.Credits, nil
}

// GetTrackMix fetches the "more like this" mix seeded from one track.
func (c *Client) GetTrackMix(ctx context.Context, trackID int64) (*Mix, error) {
	var out Mix
	if err := c.Get(ctx, c.APIURL("tracks/"+strconv.FormatInt(trackID, 10)+"/mix"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLyrics fetches the raw lyrics response — both the plain-text
// "lyrics" field C9 tags with and the synced "subtitles" field C10 parses.
func (c *Client) GetLyrics(ctx context.Context, trackID int64) (*Lyrics, error) {
	var out Lyrics
	if err := c.Get(ctx, c.APIURL("tracks/"+strconv.FormatInt(trackID, 10)+"/lyrics"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMixTracks pages a mix's track list.
func (c *Client) GetMixTracks(ctx context.Context, mixID string, limit int) (*ItemsPage[MixItem], error) {
	var out ItemsPage[MixItem]
	url := c.APIURL("mixes/"+mixID+"/items", [2]string{"limit", strconv.Itoa(limit)})
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
