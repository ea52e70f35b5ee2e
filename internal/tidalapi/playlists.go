package tidalapi

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"
)

// GetPlaylist fetches one playlist by its UUID.
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	var out Playlist
	if err := c.Get(ctx, c.APIURL("playlists/"+playlistID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPlaylistTracks pages a playlist's item list — the primary driver of
// the playlist download loop in internal/orchestrate.
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*ItemsPage[PlaylistItem], error) {
	var out ItemsPage[PlaylistItem]
	url := c.APIURL("playlists/"+playlistID+"/items",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserPlaylists pages the playlists a user owns or follows.
func (c *Client) GetUserPlaylists(ctx context.Context, userID int64, limit, offset int) (*ItemsPage[Playlist], error) {
	var out ItemsPage[Playlist]
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/playlists",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlaylist creates a new playlist owned by userID.
func (c *Client) CreatePlaylist(ctx context.Context, userID int64, title, description string) (*Playlist, error) {
	body, err := json.Marshal(map[string]string{"title": title, "description": description})
	if err != nil {
		return nil, err
	}
	var out Playlist
	if err := c.Post(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/playlists"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTracksToPlaylist appends tracks to an existing playlist.
func (c *Client) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []int64) error {
	url := c.APIURL("playlists/"+playlistID+"/items", [2]string{"trackIds", joinIDs(trackIDs)})
	return c.PostEmpty(ctx, url, nil)
}

// DeletePlaylist deletes a playlist by UUID.
func (c *Client) DeletePlaylist(ctx context.Context, playlistID string) error {
	return c.DeleteEmpty(ctx, c.APIURL("playlists/"+playlistID))
}
