package tidalapi

import (
	"context"
	"strconv"
)

func favoritesURL(c *Client, userID int64, itemType string, extra ...[2]string) string {
	return c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/"+itemType,
		append([][2]string{{"order", "DATE"}, {"orderDirection", "DESC"}}, extra...)...)
}

// GetFavoriteTracks pages a user's favorited tracks, newest first.
func (c *Client) GetFavoriteTracks(ctx context.Context, userID int64, limit, offset int) (*ItemsPage[FavoriteItem[Track]], error) {
	var out ItemsPage[FavoriteItem[Track]]
	url := favoritesURL(c, userID, "tracks",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFavoriteAlbums pages a user's favorited albums, newest first.
func (c *Client) GetFavoriteAlbums(ctx context.Context, userID int64, limit, offset int) (*ItemsPage[FavoriteItem[Album]], error) {
	var out ItemsPage[FavoriteItem[Album]]
	url := favoritesURL(c, userID, "albums",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFavoriteArtists pages a user's favorited artists, newest first.
func (c *Client) GetFavoriteArtists(ctx context.Context, userID int64, limit, offset int) (*ItemsPage[FavoriteItem[Artist]], error) {
	var out ItemsPage[FavoriteItem[Artist]]
	url := favoritesURL(c, userID, "artists",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFavoritePlaylists pages a user's favorited playlists, newest first.
func (c *Client) GetFavoritePlaylists(ctx context.Context, userID int64, limit, offset int) (*ItemsPage[FavoriteItem[Playlist]], error) {
	var out ItemsPage[FavoriteItem[Playlist]]
	url := favoritesURL(c, userID, "playlists",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFavoriteVideos pages a user's favorited videos, newest first.
func (c *Client) GetFavoriteVideos(ctx context.Context, userID int64, limit, offset int) (*ItemsPage[FavoriteItem[Video]], error) {
	var out ItemsPage[FavoriteItem[Video]]
	url := favoritesURL(c, userID, "videos",
		[2]string{"limit", strconv.Itoa(limit)},
		[2]string{"offset", strconv.Itoa(offset)},
	)
	if err := c.Get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFavoriteIds fetches every favorited id across all five item types in
// one call.
func (c *Client) GetFavoriteIds(ctx context.Context, userID int64) (*FavoriteIds, error) {
	var out FavoriteIds
	if err := c.Get(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/ids"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddFavoriteTrack favorites a track for userID.
func (c *Client) AddFavoriteTrack(ctx context.Context, userID, trackID int64) error {
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/tracks", [2]string{"trackIds", strconv.FormatInt(trackID, 10)})
	return c.PostEmpty(ctx, url, nil)
}

// AddFavoriteAlbum favorites an album for userID.
func (c *Client) AddFavoriteAlbum(ctx context.Context, userID, albumID int64) error {
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/albums", [2]string{"albumIds", strconv.FormatInt(albumID, 10)})
	return c.PostEmpty(ctx, url, nil)
}

// AddFavoriteArtist favorites an artist for userID.
func (c *Client) AddFavoriteArtist(ctx context.Context, userID, artistID int64) error {
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/artists", [2]string{"artistIds", strconv.FormatInt(artistID, 10)})
	return c.PostEmpty(ctx, url, nil)
}

// AddFavoritePlaylist favorites a playlist for userID.
func (c *Client) AddFavoritePlaylist(ctx context.Context, userID int64, playlistID string) error {
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/playlists", [2]string{"uuids", playlistID})
	return c.PostEmpty(ctx, url, nil)
}

// AddFavoriteVideo favorites a video for userID.
func (c *Client) AddFavoriteVideo(ctx context.Context, userID, videoID int64) error {
	url := c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/videos", [2]string{"videoIds", strconv.FormatInt(videoID, 10)})
	return c.PostEmpty(ctx, url, nil)
}

// RemoveFavoriteTrack unfavorites a track for userID.
func (c *Client) RemoveFavoriteTrack(ctx context.Context, userID, trackID int64) error {
	return c.DeleteEmpty(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/tracks/"+strconv.FormatInt(trackID, 10)))
}

// RemoveFavoriteAlbum unfavorites an album for userID.
func (c *Client) RemoveFavoriteAlbum(ctx context.Context, userID, albumID int64) error {
	return c.DeleteEmpty(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/albums/"+strconv.FormatInt(albumID, 10)))
}

// RemoveFavoriteArtist unfavorites an artist for userID.
func (c *Client) RemoveFavoriteArtist(ctx context.Context, userID, artistID int64) error {
	return c.DeleteEmpty(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/artists/"+strconv.FormatInt(artistID, 10)))
}

// RemoveFavoritePlaylist unfavorites a playlist for userID.
func (c *Client) RemoveFavoritePlaylist(ctx context.Context, userID int64, playlistID string) error {
	return c.DeleteEmpty(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/playlists/"+playlistID))
}

// RemoveFavoriteVideo unfavorites a video for userID.
func (c *Client) RemoveFavoriteVideo(ctx context.Context, userID, videoID int64) error {
	return c.DeleteEmpty(ctx, c.APIURL("users/"+strconv.FormatInt(userID, 10)+"/favorites/videos/"+strconv.FormatInt(videoID, 10)))
}
