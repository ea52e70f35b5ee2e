package orchestrate

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tidal-dl/tidal-dl/internal/container"
	"github.com/tidal-dl/tidal-dl/internal/stream"
	"github.com/tidal-dl/tidal-dl/internal/tags"
	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// pageSize is the item count every paginated album/playlist listing call
// requests per page, matching the original's hardcoded 100.
const pageSize = 100

// DownloadTrack fetches track's stream at the highest quality, writes it
// to outputDir with a sanitized "{artist} - {full title}.{ext}" filename,
// embeds metadata and cover art, and saves synced lyrics to a sibling
// .lrc file if available. A lyrics failure is logged and does not fail
// the download. Grounded on original_source/tidal-dl/src/main.rs's
// download_track.
func DownloadTrack(ctx context.Context, client *tidalapi.Client, track *tidalapi.Track, outputDir string, quality stream.AudioQuality, console *Console) (string, error) {
	artist := ""
	if a := track.PrimaryArtist(); a != nil {
		artist = a.Name
	}
	fullTitle := tags.BuildFullTitle(track.Title, track.Version)
	console.PrintTrackStart(track.Title, artist)

	info, err := stream.GetInfo(ctx, client, track.ID, quality)
	if err != nil {
		return "", err
	}
	console.PrintQuality(info.Codecs, info.SampleRate, info.BitDepth)

	data, err := stream.Fetch(ctx, client.HTTPClient(), info)
	if err != nil {
		return "", err
	}

	kind := container.Detect(data)
	filename := SanitizeFilename(artist+" - "+fullTitle) + "." + kind.Extension()
	outPath := filepath.Join(outputDir, filename)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", tidalerr.IO(err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", tidalerr.IO(err)
	}

	lyricsText := fetchLyricsText(ctx, client, track.ID)
	if lyricsText != "" {
		if err := saveLyricsFile(outPath, lyricsText); err != nil {
			console.PrintLyricsWarning(err)
		}
	}

	embedMetadata(ctx, client, track, info, lyricsText, outPath, console)

	console.PrintTrackDone(outPath)
	return outPath, nil
}

// fetchLyricsText fetches a track's lyrics, preferring time-synced
// subtitles over plain lyrics — matching the original's
// lyrics.subtitles.or(lyrics.lyrics). Returns "" on any failure; lyrics
// are always optional.
func fetchLyricsText(ctx context.Context, client *tidalapi.Client, trackID int64) string {
	l, err := client.GetLyrics(ctx, trackID)
	if err != nil {
		return ""
	}
	if l.Subtitles != nil && *l.Subtitles != "" {
		return *l.Subtitles
	}
	if l.Lyrics != nil {
		return *l.Lyrics
	}
	return ""
}

func saveLyricsFile(audioPath, lyricsText string) error {
	lrcPath := audioPath[:len(audioPath)-len(filepath.Ext(audioPath))] + ".lrc"
	if err := os.WriteFile(lrcPath, []byte(lyricsText), 0o644); err != nil {
		return tidalerr.IO(err)
	}
	return nil
}

// embedMetadata assembles and writes the tag set. The album/credits
// lookups are best-effort: a failure there still lets the track's own
// fields carry the tag, matching the original's error->None fallback
// around its inline get_album/get_album_page calls.
func embedMetadata(ctx context.Context, client *tidalapi.Client, track *tidalapi.Track, info *stream.Info, lyricsText, outPath string, console *Console) {
	var fullAlbum *tidalapi.Album
	var albumPage *tidalapi.AlbumPage
	if track.Album != nil {
		if a, err := client.GetAlbum(ctx, track.Album.ID); err == nil {
			fullAlbum = a
		}
		if p, err := client.GetAlbumPage(ctx, track.Album.ID); err == nil {
			albumPage = p
		}
	}

	set := tags.Build(track, info, albumPage, lyricsText, fullAlbum)

	if coverData, mime, err := tags.FetchCover(ctx, track); err == nil && coverData != nil {
		set.WithCover(coverData, mime)
	}

	if err := tags.Write(outPath, set); err != nil {
		log.Warn().Err(err).Str("path", outPath).Msg("failed to embed metadata")
	}
}

// DownloadAlbum downloads album's first page of up to pageSize tracks into
// a sanitized subfolder of outputDir. One track's failure is logged and
// does not abort the rest of the album. Matches the original's
// download_album literally: a single get_album_tracks(album_id, 100, 0)
// call, no pagination loop — an album with more than 100 tracks only
// downloads its first page.
func DownloadAlbum(ctx context.Context, client *tidalapi.Client, albumID int64, outputDir string, quality stream.AudioQuality, console *Console) error {
	album, err := client.GetAlbum(ctx, albumID)
	if err != nil {
		return err
	}
	artist := ""
	if a := album.PrimaryArtist(); a != nil {
		artist = a.Name
	}
	folder := filepath.Join(outputDir, SanitizeFilename(artist+" - "+album.Title))

	page, err := client.GetAlbumTracks(ctx, albumID, pageSize, 0)
	if err != nil {
		return err
	}
	for i := range page.Items {
		track := &page.Items[i]
		if _, err := DownloadTrack(ctx, client, track, folder, quality, console); err != nil {
			console.PrintTrackError(track.Title, err)
		}
	}
	return nil
}

// DownloadPlaylist downloads every track of playlist into a sanitized
// subfolder of outputDir, with the same per-track error tolerance as
// DownloadAlbum. Unlike DownloadAlbum, this paginates until exhaustion —
// the original's download_playlist does loop over successive
// get_playlist_tracks pages, since playlists commonly exceed 100 tracks.
func DownloadPlaylist(ctx context.Context, client *tidalapi.Client, playlist *tidalapi.Playlist, outputDir string, quality stream.AudioQuality, console *Console) error {
	folder := filepath.Join(outputDir, SanitizeFilename(playlist.Title))

	offset := 0
	for {
		page, err := client.GetPlaylistTracks(ctx, playlist.UUID, pageSize, offset)
		if err != nil {
			return err
		}
		for i := range page.Items {
			track := &page.Items[i].Item
			if _, err := DownloadTrack(ctx, client, track, folder, quality, console); err != nil {
				console.PrintTrackError(track.Title, err)
			}
		}
		offset += len(page.Items)
		if len(page.Items) < pageSize || offset >= page.Total {
			break
		}
	}
	return nil
}
