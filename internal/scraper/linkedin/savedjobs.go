package linkedin

import (
	"errors"
	"fmt"
	"strings"

	"go-savedjobs-extractor/internal/browser"
	"go-savedjobs-extractor/internal/scraper"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// SavedJobsURL is the first page of the signed-in user's saved jobs.
const SavedJobsURL = "https://www.linkedin.com/my-items/saved-jobs/"

const savedJobsPath = "linkedin.com/my-items/saved-jobs"

var ErrNotSavedJobsPage = errors.New("not a linkedin saved jobs page")

// CheckSavedJobsURL rejects URLs outside the saved jobs listing.
func CheckSavedJobsURL(rawURL string) error {
	if !strings.Contains(strings.ToLower(rawURL), savedJobsPath) {
		return fmt.Errorf("%w: %s (expected %s)", ErrNotSavedJobsPage, rawURL, SavedJobsURL)
	}
	return nil
}

// DefaultSelectors matches the saved jobs markup. The class names are
// generated by LinkedIn and change often; override them in config.yaml.
func DefaultSelectors() scraper.Selectors {
	return scraper.Selectors{
		Company:  ".pxUtFAnNAlQUqKbhgaSFYXfZujHHeMMyHYkPM.t-14.t-black.t-normal",
		Title:    ".t-roman.t-sans .display-flex a",
		Location: ".dckMfiyJszFLylsZdQUdDdjNLVwdiBBmvz.t-14.t-normal",
		Next:     "button.artdeco-pagination__button--next:not([disabled])",
	}
}

// Open loads the saved jobs page, verifies the session is signed in and
// waits for the first list to render.
func Open(page playwright.Page, url string, sel scraper.Selectors, logger *log.Logger) error {
	logger.Info("🌐 Visiting saved jobs", "url", url)
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load saved jobs page: %w", err)
	}

	//verify login
	if _, err := page.WaitForSelector("#global-nav", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("login verification failed - global nav not found")
	}
	logger.Info("✅ Login confirmed.")

	//an empty listing renders no title links at all, so don't fail here
	if _, err := page.WaitForSelector(sel.Title, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		logger.Warn("⚠️ Saved jobs list not found or empty.")
	}

	browser.RandomDelay(1000, 2000)
	if err := browser.HumanScroll(page); err != nil {
		logger.Debug("scroll failed", "err", err)
	}
	return nil
}
