package scraper

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Progress is a snapshot taken after a page's jobs were appended.
type Progress struct {
	RecordCount int
	CurrentPage int
}

// ProgressReporter receives one Progress per processed page.
type ProgressReporter interface {
	Report(p Progress)
}

// ProgressFunc adapts a function to ProgressReporter.
type ProgressFunc func(p Progress)

func (f ProgressFunc) Report(p Progress) { f(p) }

// Result is the outcome of a run. A run stopped by navigation still
// carries every job collected before it stopped.
type Result struct {
	Jobs   []Job
	Pages  int
	Reason StopReason
}

// Degraded reports whether the run ended before the last page.
func (r *Result) Degraded() bool {
	return r.Reason == NavigationStopped
}

// Extractor walks the listing page by page and accumulates its jobs.
type Extractor struct {
	reader    PageReader
	paginator *Paginator
	settle    Settler
	progress  ProgressReporter
	logger    *log.Logger
}

type Option func(*Extractor)

// WithSettler replaces the default fixed settle delay.
func WithSettler(s Settler) Option {
	return func(e *Extractor) { e.settle = s }
}

func WithProgress(p ProgressReporter) Option {
	return func(e *Extractor) { e.progress = p }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

func NewExtractor(reader PageReader, opts ...Option) *Extractor {
	e := &Extractor{
		reader: reader,
		settle: FixedDelay(DefaultSettleDelay),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.paginator = NewPaginator(reader, e.settle)
	return e
}

type runState int

const (
	stateRunning runState = iota
	stateTerminal
)

// Run extracts every page reachable through the next control. Only one
// page is ever read at a time: the next page is not touched until the
// settle wait after the click has returned.
//
// A returned error means the page could not be inspected; no partial
// result is delivered in that case.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	var (
		jobs   []Job
		page   = 1
		reason StopReason
		state  = stateRunning
	)

	for state == stateRunning {
		e.logger.Info("📄 Processing page", "page", page)

		pageJobs, err := ReadPage(ctx, e.reader)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		e.logger.Info("📦 Found jobs on page", "page", page, "count", len(pageJobs))

		for _, job := range pageJobs {
			jobs = append(jobs, job)
			e.logger.Debug("added job", "title", job.Title, "company", job.Company, "location", job.Location)
		}

		if e.progress != nil {
			e.progress.Report(Progress{RecordCount: len(jobs), CurrentPage: page})
		}

		hasNext, err := e.paginator.HasNext(ctx)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if !hasNext {
			e.logger.Info("🏁 No more pages. Extraction complete.")
			reason, state = EndOfPages, stateTerminal
			continue
		}

		outcome, err := e.paginator.Advance(ctx)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		switch outcome {
		case Advanced:
			page++
		default:
			e.logger.Warn("⚠️ Failed to navigate to next page. Stopping extraction.", "page", page, "outcome", outcome)
			reason, state = NavigationStopped, stateTerminal
		}
	}

	return &Result{Jobs: jobs, Pages: page, Reason: reason}, nil
}
