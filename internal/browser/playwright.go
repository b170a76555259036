package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the playwright driver and the launched Chromium.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the driver and launches Chromium.
func NewPlaywright(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}

	return &Manager{pw: pw, browser: browser}, nil
}

// NewContext opens an isolated browser context carrying the given cookies.
func (m *Manager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctx, err := m.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport: &playwright.Size{
			Width:  1366,
			Height: 900,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			ctx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return ctx, nil
}

// NewPage opens a blank page in a fresh context without cookies.
func (m *Manager) NewPage() (playwright.Page, error) {
	return m.browser.NewPage()
}

func (m *Manager) Close() error {
	return errors.Join(m.browser.Close(), m.pw.Stop())
}
