package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// ScreenshotDebugger saves full-page screenshots when navigation goes wrong.
type ScreenshotDebugger struct {
	outputDir string
	logger    *log.Logger
}

func NewScreenshotDebugger(outputDir string, logger *log.Logger) *ScreenshotDebugger {
	return &ScreenshotDebugger{outputDir: outputDir, logger: logger}
}

// CaptureAndLog takes a screenshot named after name and the current time.
// A nil debugger or an empty output dir disables it.
func (s *ScreenshotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	if s == nil || s.outputDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))
	s.logger.Warn("📸 " + message)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		s.logger.Warn("⚠️ Failed to capture screenshot", "err", err)
		return err
	}

	s.logger.Info("Screenshot saved", "path", path)
	return nil
}
