// Command snapshot captures every page of the saved jobs listing as HTML
// so that extractor --replay can run against it offline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-savedjobs-extractor/internal/browser"
	"go-savedjobs-extractor/internal/config"
	"go-savedjobs-extractor/internal/scraper"
	"go-savedjobs-extractor/internal/scraper/linkedin"
	"go-savedjobs-extractor/internal/snapshot"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		outDir     string
		maxPages   int
	)

	cmd := &cobra.Command{
		Use:          "snapshot",
		Short:        "Capture the saved jobs listing page by page for offline replay.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return capture(cmd.Context(), configPath, outDir, maxPages)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "snapshots", "directory to write page-NNNN.html files to")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "stop after this many pages (0 captures all)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func capture(ctx context.Context, configPath, outDir string, maxPages int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	if err := linkedin.CheckSavedJobsURL(cfg.StartURL); err != nil {
		return err
	}

	pm, err := browser.NewPlaywright(!cfg.Headed)
	if err != nil {
		return err
	}
	defer pm.Close()

	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		logger.Warn("⚠️ Could not load cookies. Continuing without them.", "err", err)
	}
	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		return err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create new page: %w", err)
	}
	if err := linkedin.Open(page, cfg.StartURL, cfg.Selectors, logger); err != nil {
		return err
	}

	reader := browser.NewPageReader(page, cfg.Selectors, browser.NewScreenshotDebugger(cfg.ScreenshotDir, logger), logger)
	paginator := scraper.NewPaginator(reader, scraper.FixedDelay(cfg.SettleDelay))

	for n := 1; ; n++ {
		html, err := reader.Content()
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		path, err := snapshot.Save(outDir, n, html)
		if err != nil {
			return err
		}
		logger.Info("📸 Page captured", "page", n, "path", path)

		if maxPages > 0 && n >= maxPages {
			logger.Info("🛑 Reached max pages", "pages", n)
			return nil
		}

		outcome, err := paginator.Advance(ctx)
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		if outcome != scraper.Advanced {
			logger.Info("🏁 Capture finished", "pages", n, "outcome", outcome)
			return nil
		}
	}
}
