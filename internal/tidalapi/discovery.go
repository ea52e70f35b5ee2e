package tidalapi

import (
	"context"
	"strconv"
)

// GetGenres lists the catalogue's top-level genres.
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var resp struct {
		Items []Genre `json:"items"`
	}
	if err := c.Get(ctx, c.APIURL("genres"), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetGenreTracks pages a genre's track list.
func (c *Client) GetGenreTracks(ctx context.Context, genre string, limit, offset int) (*ItemsPage[Track], error) {
	var out ItemsPage[Track]
	url := c.APIURL("genres/"+genre+"/tracks",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMoods lists the catalogue's mood categories.
func (c *Client) GetMoods(ctx context.Context) ([]Mood, error) {
	var resp struct {
		Items []Mood `json:"items"`
	}
	if err := c.Get(ctx, c.APIURL("moods"), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetMoodPlaylists pages a mood's playlist list.
func (c *Client) GetMoodPlaylists(ctx context.Context, mood string, limit, offset int) (*ItemsPage[Playlist], error) {
	var out ItemsPage[Playlist]
	url := c.APIURL("moods/"+mood+"/playlists",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideo fetches one music video by id.
func (c *Client) GetVideo(ctx context.Context, videoID int64) (*Video, error) {
	var out Video
	if err := c.Get(ctx, c.APIURL("videos/"+strconv.FormatInt(videoID, 10)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
