package tidalapi

import (
	"context"
	"strconv"
)

// GetArtist fetches one artist by id.
func (c *Client) GetArtist(ctx context.Context, artistID int64) (*Artist, error) {
	var out Artist
	if err := c.Get(ctx, c.APIURL("artists/"+strconv.FormatInt(artistID, 10)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtists batch-fetches artists by a comma-joined id list.
func (c *Client) GetArtists(ctx context.Context, artistIDs []int64) ([]Artist, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}
	var resp struct {
		Items []Artist `json:"items"`
	}
	if err := c.Get(ctx, c.APIURL("artists", [2]string{"ids", joinIDs(artistIDs)}), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetArtistBio fetches an artist's editorial biography.
func (c *Client) GetArtistBio(ctx context.Context, artistID int64) (*ArtistBio, error) {
	var out ArtistBio
	if err := c.Get(ctx, c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/bio"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistLinks fetches an artist's external links (official site,
// social profiles).
func (c *Client) GetArtistLinks(ctx context.Context, artistID int64) ([]ArtistLink, error) {
	var resp struct {
		Items  []ArtistLink `json:"items"`
		Source *string      `json:"source"`
	}
	if err := c.Get(ctx, c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/links"), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetArtistMix fetches the "more like this" mix seeded from one artist.
func (c *Client) GetArtistMix(ctx context.Context, artistID int64) (*Mix, error) {
	var out Mix
	if err := c.Get(ctx, c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/mix"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistAlbums pages an artist's discography.
func (c *Client) GetArtistAlbums(ctx context.Context, artistID int64, limit, offset int) (*ItemsPage[Album], error) {
	var out ItemsPage[Album]
	url := c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/albums",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistTopTracks pages an artist's most popular tracks.
func (c *Client) GetArtistTopTracks(ctx context.Context, artistID int64, limit, offset int) (*ItemsPage[Track], error) {
	var out ItemsPage[Track]
	url := c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/toptracks",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArtistVideos pages an artist's music videos.
func (c *Client) GetArtistVideos(ctx context.Context, artistID int64, limit, offset int) (*ItemsPage[Video], error) {
	var out ItemsPage[Video]
	url := c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/videos",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSimilarArtists pages artists similar to the given one.
func (c *Client) GetSimilarArtists(ctx context.Context, artistID int64, limit int) (*ItemsPage[Artist], error) {
	var out ItemsPage[Artist]
	url := c.APIURL("artists/"+strconv.FormatInt(artistID, 10)+"/similar", [2]string{"limit", strconv.Itoa(limit)})
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
