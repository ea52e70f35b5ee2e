// Command tidal-dl downloads tracks, albums, and playlists from Tidal
// given a link or bare track id, embedding full metadata and synced
// lyrics on the way out.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tidal-dl/tidal-dl/internal/orchestrate"
	"github.com/tidal-dl/tidal-dl/internal/stream"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: "+tidalerr.Display(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputDir string
		quality   string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:           "tidal-dl <link or track id>",
		Short:         "Download a Tidal track, album, or playlist",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)
			q, err := parseQuality(quality)
			if err != nil {
				return err
			}
			return run(cmd.Context(), args[0], outputDir, q)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory to save downloads into")
	cmd.Flags().StringVarP(&quality, "quality", "q", string(stream.QualityHiResLossless),
		"audio quality: LOW|HIGH|LOSSLESS|HI_RES|HI_RES_LOSSLESS")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func parseQuality(s string) (stream.AudioQuality, error) {
	switch stream.AudioQuality(s) {
	case stream.QualityLow, stream.QualityHigh, stream.QualityLossless, stream.QualityHiRes, stream.QualityHiResLossless:
		return stream.AudioQuality(s), nil
	default:
		return "", fmt.Errorf("invalid quality %q: must be one of LOW|HIGH|LOSSLESS|HI_RES|HI_RES_LOSSLESS", s)
	}
}

func configureLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func run(ctx context.Context, link, outputDir string, quality stream.AudioQuality) error {
	console := orchestrate.NewConsole()

	client, err := orchestrate.Bootstrap(ctx, console)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	kind, id, err := orchestrate.ParseLink(link)
	if err != nil {
		return err
	}

	switch kind {
	case orchestrate.KindTrack:
		trackID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid track id %q: %w", id, err)
		}
		track, err := client.GetTrack(ctx, trackID)
		if err != nil {
			return err
		}
		_, err = orchestrate.DownloadTrack(ctx, client, track, outputDir, quality, console)
		return err

	case orchestrate.KindAlbum:
		albumID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid album id %q: %w", id, err)
		}
		return orchestrate.DownloadAlbum(ctx, client, albumID, outputDir, quality, console)

	case orchestrate.KindPlaylist:
		playlist, err := client.GetPlaylist(ctx, id)
		if err != nil {
			return err
		}
		return orchestrate.DownloadPlaylist(ctx, client, playlist, outputDir, quality, console)
	}

	return fmt.Errorf("unsupported link kind %q", kind)
}
