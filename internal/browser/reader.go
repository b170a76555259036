package browser

import (
	"context"
	"fmt"

	"go-savedjobs-extractor/internal/scraper"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// PageReader reads the listing from a live playwright page.
type PageReader struct {
	page        playwright.Page
	sel         scraper.Selectors
	screenshots *ScreenshotDebugger
	logger      *log.Logger
}

func NewPageReader(page playwright.Page, sel scraper.Selectors, screenshots *ScreenshotDebugger, logger *log.Logger) *PageReader {
	return &PageReader{page: page, sel: sel, screenshots: screenshots, logger: logger}
}

func (r *PageReader) Fragments(ctx context.Context, col scraper.Column) (scraper.FragmentList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texts, err := r.page.Locator(r.sel.For(col)).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s nodes: %w", col, err)
	}
	return scraper.FragmentList(texts), nil
}

func (r *PageReader) HasNext(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	count, err := r.page.Locator(r.sel.Next).Count()
	if err != nil {
		return false, fmt.Errorf("failed to query next control: %w", err)
	}
	return count > 0, nil
}

// ClickNext clicks the first enabled next control. A control that is gone
// or rejects the click is reported as false so the caller can stop.
func (r *PageReader) ClickNext(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	next := r.page.Locator(r.sel.Next)
	count, err := next.Count()
	if err != nil {
		return false, fmt.Errorf("failed to query next control: %w", err)
	}
	if count == 0 {
		r.screenshots.CaptureAndLog(r.page, "next-control-vanished", "Next control disappeared before click")
		return false, nil
	}

	if err := MouseJiggle(r.page); err != nil {
		r.logger.Debug("mouse jiggle failed", "err", err)
	}
	r.logger.Info("➡️ Clicking Next button to navigate to the next page...")
	if err := next.First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		r.logger.Warn("⚠️ Next control could not be clicked", "err", err)
		r.screenshots.CaptureAndLog(r.page, "next-control-click", "Next control rejected the click")
		return false, nil
	}
	return true, nil
}

// Content returns the current page HTML.
func (r *PageReader) Content() (string, error) {
	return r.page.Content()
}
