package reporter

import (
	"fmt"
	"io"
	"time"

	"go-savedjobs-extractor/internal/scraper"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
)

// Terminal shows live extraction progress as a spinner line and
// mirrors every update to the log.
type Terminal struct {
	spin   *spinner.Spinner
	logger *log.Logger
	last   scraper.Progress
}

func NewTerminal(w io.Writer, logger *log.Logger) *Terminal {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + progressLine(scraper.Progress{CurrentPage: 1})
	return &Terminal{spin: s, logger: logger}
}

func (t *Terminal) Start() { t.spin.Start() }

func (t *Terminal) Stop() { t.spin.Stop() }

func (t *Terminal) Report(p scraper.Progress) {
	t.spin.Lock()
	t.spin.Suffix = " " + progressLine(p)
	t.spin.Unlock()
	t.last = p
	t.logger.Info("🔄 "+progressLine(p), "jobs", p.RecordCount, "page", p.CurrentPage)
}

// Last is the most recent progress reported.
func (t *Terminal) Last() scraper.Progress {
	return t.last
}

func progressLine(p scraper.Progress) string {
	return fmt.Sprintf("Extracting: %d jobs found | Page: %d", p.RecordCount, p.CurrentPage)
}
