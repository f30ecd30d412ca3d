package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/ts-extractor/internal/parsers"
)

// CLIProgressReporter shows a progress bar while the program is loaded.
// The total grows as imports are discovered.
type CLIProgressReporter struct {
	out       io.Writer
	bar       *progressbar.ProgressBar
	total     int
	startTime time.Time
}

var _ parsers.ProgressReporter = (*CLIProgressReporter)(nil)

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{out: out}
}

func (c *CLIProgressReporter) OnLoadStart(entryFiles int) {
	c.startTime = time.Now()
	c.total = entryFiles
	c.bar = progressbar.NewOptions(entryFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Parsing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileDiscovered(fileName string) {
	if c.bar == nil {
		return
	}
	c.total++
	c.bar.ChangeMax(c.total)
}

func (c *CLIProgressReporter) OnFileParsed(fileName string) {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnLoadComplete(files int) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	fmt.Fprintf(c.out, "✓ Parsed %d files in %.1fs\n", files, time.Since(c.startTime).Seconds())
}
