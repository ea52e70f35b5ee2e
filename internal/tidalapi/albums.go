package tidalapi

import (
	"context"
	"strconv"
)

// GetAlbum fetches one album by id.
func (c *Client) GetAlbum(ctx context.Context, albumID int64) (*Album, error) {
	var out Album
	if err := c.Get(ctx, c.APIURL("albums/"+strconv.FormatInt(albumID, 10)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAlbums batch-fetches albums by a comma-joined id list.
func (c *Client) GetAlbums(ctx context.Context, albumIDs []int64) ([]Album, error) {
	if len(albumIDs) == 0 {
		return nil, nil
	}
	var resp struct {
		Items []Album `json:"items"`
	}
	if err := c.Get(ctx, c.APIURL("albums", [2]string{"ids", joinIDs(albumIDs)}), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetAlbumTracks pages an album's track list — the primary driver of the
// album download loop in internal/orchestrate.
func (c *Client) GetAlbumTracks(ctx context.Context, albumID int64, limit, offset int) (*ItemsPage[Track], error) {
	var out ItemsPage[Track]
	url := c.APIURL("albums/"+strconv.FormatInt(albumID, 10)+"/tracks",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAlbumCredits fetches the flat /albums/{id}/credits endpoint.
func (c *Client) GetAlbumCredits(ctx context.Context, albumID int64) ([]Credit, error) {
	var resp struct {
		Credits []Credit `json:"credits"`
	}
	if err := c.Get(ctx, c.APIURL("albums/"+strconv.FormatInt(albumID, 10)+"/credits"), &resp); err != nil {
		return nil, err
	}
	return resp.Credits, nil
}

// GetAlbumReview fetches editorial review text for an album.
func (c *Client) GetAlbumReview(ctx context.Context, albumID int64) (*AlbumReview, error) {
	var out AlbumReview
	if err := c.Get(ctx, c.APIURL("albums/"+strconv.FormatInt(albumID, 10)+"/review"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSimilarAlbums pages albums similar to the given one.
func (c *Client) GetSimilarAlbums(ctx context.Context, albumID int64, limit int) (*ItemsPage[Album], error) {
	var out ItemsPage[Album]
	url := c.APIURL("albums/"+strconv.FormatInt(albumID, 10)+"/similar", [2]string{"limit", strconv.Itoa(limit)})
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAlbumPage fetches the /pages/album payload C9's credits routing
// walks — rows of modules, one of which (module_type == "ALBUM_HEADER")
// carries the full credits list the flat /credits endpoint above doesn't
// expose role granularity for.
func (c *Client) GetAlbumPage(ctx context.Context, albumID int64) (*AlbumPage, error) {
	var out AlbumPage
	url := c.PagesURL("album", [2]string{"albumId", strconv.FormatInt(albumID, 10)})
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
