package tidalapi

import (
	"context"
	"strconv"
)

// GetSuggestions fetches search-as-you-type suggestions for query, with
// the original client's default explicit/hybrid options.
func (c *Client) GetSuggestions(ctx context.Context, query string) (*SearchSuggestions, error) {
	return c.GetSuggestionsWithOptions(ctx, query, true, true)
}

// GetSuggestionsWithOptions fetches search suggestions with explicit
// content inclusion and hybrid (local+streaming) results toggled.
func (c *Client) GetSuggestionsWithOptions(ctx context.Context, query string, explicit, hybrid bool) (*SearchSuggestions, error) {
	var out SearchSuggestions
	if err := c.Get(ctx, c.SuggestionsURL(query, explicit, hybrid), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a combined search across every item type, matching the
// original's search() which always requests
// types=ARTISTS,ALBUMS,TRACKS,VIDEOS,PLAYLISTS.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResults, error) {
	var out SearchResults
	url := c.APIURL("search",
		[2]string{"query", query},
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"types", "ARTISTS,ALBUMS,TRACKS,VIDEOS,PLAYLISTS"},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchTracks searches the track catalogue only, paginated.
func (c *Client) SearchTracks(ctx context.Context, query string, limit, offset int) (*SearchPage[Track], error) {
	var out SearchPage[Track]
	url := c.APIURL("search/tracks",
		[2]string{"query", query},
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchAlbums searches the album catalogue only, paginated.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit, offset int) (*SearchPage[Album], error) {
	var out SearchPage[Album]
	url := c.APIURL("search/albums",
		[2]string{"query", query},
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchArtists searches the artist catalogue only, paginated.
func (c *Client) SearchArtists(ctx context.Context, query string, limit, offset int) (*SearchPage[Artist], error) {
	var out SearchPage[Artist]
	url := c.APIURL("search/artists",
		[2]string{"query", query},
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPlaylists searches the playlist catalogue only, paginated.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit, offset int) (*SearchPage[Playlist], error) {
	var out SearchPage[Playlist]
	url := c.APIURL("search/playlists",
		[2]string{"query", query},
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchVideos searches the video catalogue only, paginated.
func (c *Client) SearchVideos(ctx context.Context, query string, limit, offset int) (*SearchPage[Video], error) {
	var out SearchPage[Video]
	url := c.APIURL("search/videos",
		[2]string{"query", query},
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
