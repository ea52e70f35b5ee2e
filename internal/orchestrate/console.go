package orchestrate

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Console renders the download run's status lines: which track is active,
// its stream quality, and per-track failures that don't abort a batch.
// Kept separate from the structured zerolog output so a plain run looks
// like a normal CLI tool and the --verbose log stream stays out of the
// way.
type Console struct {
	out io.Writer
}

// NewConsole builds a Console writing to os.Stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// PrintAuthPrompt shows the device-code sign-in prompt: the mandatory
// verification URI is always printed, and the complete URI (which embeds
// the code so the user doesn't have to type it) is shown as a shortcut
// only when the server provided one.
func (c *Console) PrintAuthPrompt(verificationURI, verificationURIComplete, userCode string) {
	fmt.Fprintln(c.out, color.CyanString("Visit %s and enter code %s to sign in", verificationURI, userCode))
	if verificationURIComplete != "" {
		fmt.Fprintln(c.out, color.CyanString("Or open %s", verificationURIComplete))
	}
}

func (c *Console) PrintTrackStart(title, artist string) {
	fmt.Fprintln(c.out, color.GreenString("Downloading")+" "+artist+" - "+title)
}

func (c *Console) PrintQuality(codec string, sampleRate *int, bitDepth *int) {
	line := "  quality: " + codec
	if sampleRate != nil {
		line += fmt.Sprintf(" %dHz", *sampleRate)
	}
	if bitDepth != nil {
		line += fmt.Sprintf(" %d-bit", *bitDepth)
	}
	fmt.Fprintln(c.out, color.HiBlackString(line))
}

func (c *Console) PrintTrackDone(path string) {
	fmt.Fprintln(c.out, color.GreenString("  saved ")+path)
}

// PrintTrackError reports a single track's failure without returning it —
// album and playlist downloads tolerate individual track failures and
// keep going.
func (c *Console) PrintTrackError(title string, err error) {
	fmt.Fprintln(c.out, color.RedString("  failed %s: %v", title, err))
}

func (c *Console) PrintLyricsWarning(err error) {
	fmt.Fprintln(c.out, color.YellowString("  lyrics unavailable: %v", err))
}

// NewSpinner returns a progress bar in indeterminate-spinner mode for a
// step with no known size, such as "fetching album" before the track
// count is known.
func (c *Console) NewSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSpinnerType(14),
	)
}
