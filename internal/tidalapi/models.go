package tidalapi

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ImageSize selects which resources.tidal.com resolution an image URL
// points at.
type ImageSize string

const (
	ImageSmall  ImageSize = "160x160"
	ImageMedium ImageSize = "320x320"
	ImageLarge  ImageSize = "640x640"
	ImageXLarge ImageSize = "1280x1280"
)

const imageBase = "https://resources.tidal.com/images"

// ImageURL builds a cover/picture URL from a Tidal UUID, replacing dashes
// with path separators the way every image endpoint does.
func ImageURL(uuid string, size ImageSize) string {
	path := strings.ReplaceAll(uuid, "-", "/")
	return imageBase + "/" + path + "/" + string(size) + ".jpg"
}

type SessionInfo struct {
	UserID      int64  `json:"userId"`
	CountryCode string `json:"countryCode"`
}

type UserProfile struct {
	ID          int64   `json:"id"`
	Username    *string `json:"username"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	CountryCode *string `json:"countryCode"`
	DateOfBirth *string `json:"dateOfBirth"`
}

type Subscription struct {
	StartDate          *string `json:"startDate"`
	ValidUntil          *string `json:"validUntil"`
	Status              *string `json:"status"`
	HighestSoundQuality *string `json:"highestSoundQuality"`
}

type ArtistRole struct {
	Category   string `json:"category"`
	CategoryID int    `json:"categoryId"`
}

type ArtistMixes struct {
	ArtistMix *string `json:"ARTIST_MIX"`
}

type Artist struct {
	ID                         int64         `json:"id"`
	Name                       string        `json:"name"`
	Popularity                 *int          `json:"popularity"`
	URL                        *string       `json:"url"`
	ArtistTypes                []string      `json:"artistTypes"`
	Picture                    *string       `json:"picture"`
	Handle                     *string       `json:"handle"`
	UserID                     *int64        `json:"userId"`
	ArtistType                 *string       `json:"type"`
	ContributionLinkURL        *string       `json:"contributionLinkUrl"`
	ArtistRoles                []ArtistRole  `json:"artistRoles"`
	Mixes                      *ArtistMixes  `json:"mixes"`
	SelectedAlbumCoverFallback *string       `json:"selectedAlbumCoverFallback"`
}

// PictureURL returns the artist's picture, falling back to the selected
// album cover when no dedicated picture is set.
func (a Artist) PictureURL(size ImageSize) string {
	if a.Picture != nil {
		return ImageURL(*a.Picture, size)
	}
	if a.SelectedAlbumCoverFallback != nil {
		return ImageURL(*a.SelectedAlbumCoverFallback, size)
	}
	return ""
}

type ArtistBio struct {
	Source      *string `json:"source"`
	Text        *string `json:"text"`
	Summary     *string `json:"summary"`
	LastUpdated *string `json:"lastUpdated"`
}

type ArtistLink struct {
	URL      string  `json:"url"`
	SiteName *string `json:"siteName"`
}

type MediaMetadata struct {
	Tags []string `json:"tags"`
}

type Album struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	NumberOfTracks   *int           `json:"numberOfTracks"`
	NumberOfVolumes  *int           `json:"numberOfVolumes"`
	NumberOfVideos   *int           `json:"numberOfVideos"`
	ReleaseDate      *string        `json:"releaseDate"`
	StreamStartDate  *string        `json:"streamStartDate"`
	Duration         *int           `json:"duration"`
	UPC              *string        `json:"upc"`
	ArtistRef        *Artist        `json:"artist"`
	Artists          []Artist       `json:"artists"`
	Explicit         *bool          `json:"explicit"`
	Copyright        *string        `json:"copyright"`
	Popularity       *int           `json:"popularity"`
	AudioQuality     *string        `json:"audioQuality"`
	AudioModes       []string       `json:"audioModes"`
	MediaMetadata    *MediaMetadata `json:"mediaMetadata"`
	URL              *string        `json:"url"`
	AlbumType        *string        `json:"type"`
	Version          *string        `json:"version"`
	Cover            *string        `json:"cover"`
	VideoCover       *string        `json:"videoCover"`
	VibrantColor     *string        `json:"vibrantColor"`
	StreamReady      *bool          `json:"streamReady"`
	AllowStreaming   *bool          `json:"allowStreaming"`
	PayToStream      *bool          `json:"payToStream"`
	Upload           *bool          `json:"upload"`
}

// PrimaryArtist returns the album's credited artist, preferring the
// singular field over the first entry of the artists list.
func (a Album) PrimaryArtist() *Artist {
	if a.ArtistRef != nil {
		return a.ArtistRef
	}
	if len(a.Artists) > 0 {
		return &a.Artists[0]
	}
	return nil
}

// CoverURL returns the album cover image URL, or "" if no cover is set.
func (a Album) CoverURL(size ImageSize) string {
	if a.Cover == nil {
		return ""
	}
	return ImageURL(*a.Cover, size)
}

type AlbumReview struct {
	Text   *string `json:"text"`
	Source *string `json:"source"`
}

type TrackMixes struct {
	TrackMix *string `json:"TRACK_MIX"`
}

type Track struct {
	ID                     int64          `json:"id"`
	Title                  string         `json:"title"`
	Duration               int            `json:"duration"`
	TrackNumber            *int           `json:"trackNumber"`
	VolumeNumber           *int           `json:"volumeNumber"`
	ISRC                   *string        `json:"isrc"`
	Explicit               bool           `json:"explicit"`
	Artists                []Artist       `json:"artists"`
	ArtistRef              *Artist        `json:"artist"`
	Album                  *Album         `json:"album"`
	AudioQuality           *string        `json:"audioQuality"`
	AudioModes             []string       `json:"audioModes"`
	Copyright              *string        `json:"copyright"`
	ReplayGain             *float32       `json:"replayGain"`
	Peak                   *float32       `json:"peak"`
	URL                    *string        `json:"url"`
	Popularity             *int           `json:"popularity"`
	BPM                    *int           `json:"bpm"`
	Key                    *string        `json:"key"`
	KeyScale               *string        `json:"keyScale"`
	MediaMetadata          *MediaMetadata `json:"mediaMetadata"`
	Version                *string        `json:"version"`
	Editable               *bool          `json:"editable"`
	AllowStreaming         *bool          `json:"allowStreaming"`
	StreamReady            *bool          `json:"streamReady"`
	StreamStartDate        *string        `json:"streamStartDate"`
	AccessType             *string        `json:"accessType"`
	Spotlighted            *bool          `json:"spotlighted"`
	Upload                 *bool          `json:"upload"`
	Mixes                  *TrackMixes    `json:"mixes"`
}

// DisplayTitle joins every credited artist's name with the track title,
// the form used in log lines and as a fallback filename.
func (t Track) DisplayTitle() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ") + " - " + t.Title
}

// PrimaryArtist returns the track's credited artist, preferring the
// singular field over the first entry of the artists list.
func (t Track) PrimaryArtist() *Artist {
	if t.ArtistRef != nil {
		return t.ArtistRef
	}
	if len(t.Artists) > 0 {
		return &t.Artists[0]
	}
	return nil
}

// DurationFormatted renders "m:ss" — minutes are never wrapped to hours,
// matching the original client's display format exactly.
func (t Track) DurationFormatted() string {
	return formatDuration(t.Duration)
}

func formatDuration(totalSeconds int) string {
	mins := totalSeconds / 60
	secs := totalSeconds % 60
	sep := ""
	if secs < 10 {
		sep = "0"
	}
	return strconv.Itoa(mins) + ":" + sep + strconv.Itoa(secs)
}

// CoverURL returns the track's album cover URL, or "" if unavailable.
func (t Track) CoverURL(size ImageSize) string {
	if t.Album == nil {
		return ""
	}
	return t.Album.CoverURL(size)
}

// MusicalKeyFormatted renders the track's key in flat notation with its
// scale, e.g. "A♭ minor"; returns "" if no key is set.
func (t Track) MusicalKeyFormatted() string {
	if t.Key == nil {
		return ""
	}
	display := *t.Key
	switch strings.ToUpper(display) {
	case "AB":
		display = "A♭"
	case "BB":
		display = "B♭"
	case "DB":
		display = "D♭"
	case "EB":
		display = "E♭"
	case "GB":
		display = "G♭"
	}
	if t.KeyScale == nil || *t.KeyScale == "" {
		return display
	}
	return display + " " + strings.ToLower(*t.KeyScale)
}

type Video struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Duration    int      `json:"duration"`
	Explicit    bool     `json:"explicit"`
	Artists     []Artist `json:"artists"`
	ArtistRef   *Artist  `json:"artist"`
	Album       *Album   `json:"album"`
	Quality     *string  `json:"quality"`
	ReleaseDate *string  `json:"releaseDate"`
	Popularity  *int     `json:"popularity"`
}

// DisplayTitle joins every credited artist's name with the video title.
func (v Video) DisplayTitle() string {
	names := make([]string, len(v.Artists))
	for i, a := range v.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ") + " - " + v.Title
}

// DurationFormatted renders "m:ss".
func (v Video) DurationFormatted() string {
	return formatDuration(v.Duration)
}

type Playlist struct {
	UUID            string           `json:"uuid"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	NumberOfTracks  *int             `json:"numberOfTracks"`
	NumberOfVideos  *int             `json:"numberOfVideos"`
	Duration        *int             `json:"duration"`
	Creator         *PlaylistCreator `json:"creator"`
	PublicPlaylist  *bool            `json:"publicPlaylist"`
	LastUpdated     *string          `json:"lastUpdated"`
	Created         *string          `json:"created"`
	URL             *string          `json:"url"`
	Popularity      *int             `json:"popularity"`
	PlaylistType    *string          `json:"type"`
	Image           *string          `json:"image"`
	SquareImage     *string          `json:"squareImage"`
}

// ImageURL returns the playlist's square image, falling back to its
// regular image.
func (p Playlist) ImageURL(size ImageSize) string {
	if p.SquareImage != nil {
		return ImageURL(*p.SquareImage, size)
	}
	if p.Image != nil {
		return ImageURL(*p.Image, size)
	}
	return ""
}

type PlaylistCreator struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type PlaylistItem struct {
	Item      Track   `json:"item"`
	ItemType  *string `json:"type"`
	DateAdded *string `json:"dateAdded"`
}

type Mix struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	SubTitle *string `json:"subTitle"`
	MixType *string `json:"mixType"`
}

type MixItem struct {
	Item     Track   `json:"item"`
	ItemType *string `json:"type"`
}

type Contributor struct {
	Name string  `json:"name"`
	ID   *int64  `json:"id"`
	Role *string `json:"role"`
}

type Credit struct {
	CreditType   string        `json:"type"`
	Contributors []Contributor `json:"contributors"`
}

type TrackCredits struct {
	Item     Track    `json:"item"`
	ItemType *string  `json:"type"`
	Credits  []Credit `json:"credits"`
}

type AlbumCredits struct {
	Items []Credit `json:"items"`
}

type Folder struct {
	ID             string  `json:"trn"`
	Name           string  `json:"name"`
	Parent         *string `json:"parent"`
	CreatedAt      *string `json:"createdAt"`
	LastModifiedAt *string `json:"lastModifiedAt"`
}

type FolderItem struct {
	ID        string          `json:"trn"`
	Name      *string         `json:"name"`
	AddedAt   *string         `json:"addedAt"`
	ItemType  *string         `json:"itemType"`
	Data      json.RawMessage `json:"data"`
}

// ItemID pulls the nested catalogue id out of Data without declaring a
// distinct struct per ItemType ("TRACK", "ALBUM", "PLAYLIST", ...) — the
// shape of Data varies by type, but every variant nests its id under
// either "id" (tracks/albums) or "uuid" (playlists) at the top level.
func (f FolderItem) ItemID() string {
	if v := gjson.GetBytes(f.Data, "id"); v.Exists() {
		return v.String()
	}
	return gjson.GetBytes(f.Data, "uuid").String()
}

// PlaybackInfo is the /tracks/{id}/playbackinfo response: quality
// negotiation outcome, the manifest's MIME type, and the manifest payload
// itself (base64, format depends on manifest_mime_type).
type PlaybackInfo struct {
	TrackID             int64    `json:"trackId"`
	AudioQuality        string   `json:"audioQuality"`
	AudioMode           string   `json:"audioMode"`
	ManifestMimeType    string   `json:"manifestMimeType"`
	Manifest            string   `json:"manifest"`
	BitDepth            *int     `json:"bitDepth"`
	SampleRate          *int     `json:"sampleRate"`
	AlbumReplayGain     *float32 `json:"albumReplayGain"`
	AlbumPeakAmplitude  *float32 `json:"albumPeakAmplitude"`
	TrackReplayGain     *float32 `json:"trackReplayGain"`
	TrackPeakAmplitude  *float32 `json:"trackPeakAmplitude"`
}

// BtsManifest is the proprietary application/vnd.tidal.bts manifest shape:
// a flat list of segment URLs plus an optional key_id for OLD_AES content.
type BtsManifest struct {
	MimeType       string   `json:"mimeType"`
	Codecs         string   `json:"codecs"`
	EncryptionType string   `json:"encryptionType"`
	KeyID          *string  `json:"keyId"`
	URLs           []string `json:"urls"`
}

// DashManifest is the projection of an application/dash+xml MPEG-DASH
// manifest down to the flat segment-URL list C6's streaming parser
// produces — it is never decoded via struct tags since it comes from XML,
// not JSON.
type DashManifest struct {
	MimeType string
	Codecs   string
	URLs     []string
}

type Lyrics struct {
	TrackID               int64   `json:"trackId"`
	Lyrics                *string `json:"lyrics"`
	Subtitles             *string `json:"subtitles"`
	Provider              *string `json:"lyricsProvider"`
	ProviderCommontrackID *string `json:"providerCommontrackId"`
	ProviderLyricsID      *string `json:"providerLyricsId"`
	IsRightToLeft         *bool   `json:"isRightToLeft"`
}

type Genre struct {
	Name        string `json:"name"`
	Path        *string `json:"path"`
	HasPlaylists *bool  `json:"hasPlaylists"`
	HasArtists   *bool  `json:"hasArtists"`
	HasAlbums    *bool  `json:"hasAlbums"`
	HasTracks    *bool  `json:"hasTracks"`
}

type Mood struct {
	Name string  `json:"name"`
	Path *string `json:"path"`
}

// SearchPage wraps a paginated search result list.
type SearchPage[T any] struct {
	Items  []T  `json:"items"`
	Total  *int `json:"totalNumberOfItems"`
	Limit  *int `json:"limit"`
	Offset *int `json:"offset"`
}

type SearchResults struct {
	Artists   *SearchPage[Artist]   `json:"artists"`
	Albums    *SearchPage[Album]    `json:"albums"`
	Tracks    *SearchPage[Track]    `json:"tracks"`
	Videos    *SearchPage[Video]    `json:"videos"`
	Playlists *SearchPage[Playlist] `json:"playlists"`
}

// ItemsPage wraps a paginated, non-search list endpoint (album tracks,
// playlist items, artist top tracks): the shape every /tracks,
// /playlists/{uuid}/items-style endpoint returns.
type ItemsPage[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"totalNumberOfItems"`
	Limit  *int `json:"limit"`
	Offset *int `json:"offset"`
}

// SuggestionItem is one entry of a search-suggestions response.
type SuggestionItem struct {
	Query string `json:"query"`
}

type SearchSuggestions struct {
	History         []SuggestionItem `json:"history"`
	Suggestions     []SuggestionItem `json:"suggestions"`
	SuggestionUUID  *string          `json:"suggestionUuid"`
}

// FavoriteItem wraps one favorited entity with the date it was favorited,
// the shape every /users/{id}/favorites/{type} list item takes.
type FavoriteItem[T any] struct {
	Item    T       `json:"item"`
	Created *string `json:"created"`
}

// FavoriteIds is the /users/{id}/favorites/ids payload: every favorited
// id across all five item types in one call, playlists keyed by uuid
// string rather than numeric id.
type FavoriteIds struct {
	Tracks    []int64  `json:"TRACK"`
	Videos    []int64  `json:"VIDEO"`
	Artists   []int64  `json:"ARTIST"`
	Albums    []int64  `json:"ALBUM"`
	Playlists []string `json:"PLAYLIST"`
}

// AlbumPage is the /pages/album payload: a rows->modules tree that C9's
// tag writer walks to find the ALBUM_HEADER module carrying credits.
type AlbumPage struct {
	SelfLink *string         `json:"selfLink"`
	ID       *string         `json:"id"`
	Title    *string         `json:"title"`
	Rows     []AlbumPageRow  `json:"rows"`
}

type AlbumPageRow struct {
	Modules []AlbumPageModule `json:"modules"`
}

type AlbumPageModule struct {
	ID          *string       `json:"id"`
	ModuleType  string        `json:"type"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Album       *Album        `json:"album"`
	Review      *AlbumReview  `json:"review"`
	Credits     *AlbumCredits `json:"credits"`
	ReleaseDate *string       `json:"releaseDate"`
	Copyright   *string       `json:"copyright"`
}
