package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-savedjobs-extractor/internal/browser"
	"go-savedjobs-extractor/internal/config"
	"go-savedjobs-extractor/internal/database"
	"go-savedjobs-extractor/internal/export"
	"go-savedjobs-extractor/internal/report"
	"go-savedjobs-extractor/internal/reporter"
	"go-savedjobs-extractor/internal/scraper"
	"go-savedjobs-extractor/internal/scraper/linkedin"
	"go-savedjobs-extractor/internal/snapshot"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}

// session holds whatever was opened to serve the run.
type session struct {
	reader  scraper.PageReader
	settle  scraper.Settler
	manager *browser.Manager
}

func (s *session) close() {
	if s.manager != nil {
		s.manager.Close()
	}
}

func openSession(cfg *config.Config, replayDir string, logger *log.Logger) (*session, error) {
	if replayDir != "" {
		r, err := snapshot.Load(replayDir, cfg.Selectors)
		if err != nil {
			return nil, err
		}
		logger.Info("📼 Replaying captured pages", "dir", replayDir)
		return &session{reader: r, settle: scraper.Immediate}, nil
	}

	if err := linkedin.CheckSavedJobsURL(cfg.StartURL); err != nil {
		return nil, err
	}

	manager, err := browser.NewPlaywright(!cfg.Headed)
	if err != nil {
		return nil, err
	}
	s := &session{manager: manager, settle: scraper.FixedDelay(cfg.SettleDelay)}

	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		logger.Warn("⚠️ Could not load cookies. Continuing without them.", "path", cfg.CookiesPath, "err", err)
	} else {
		logger.Info("🍪 Loaded cookies", "count", len(cookies))
	}

	browserCtx, err := manager.NewContext(cookies)
	if err != nil {
		s.close()
		return nil, err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}

	if err := linkedin.Open(page, cfg.StartURL, cfg.Selectors, logger); err != nil {
		s.close()
		return nil, err
	}

	shots := browser.NewScreenshotDebugger(cfg.ScreenshotDir, logger)
	s.reader = browser.NewPageReader(page, cfg.Selectors, shots, logger)
	return s, nil
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Info("🔧 Config loaded", "start_url", cfg.StartURL, "settle_delay", cfg.SettleDelay)

	var tg *reporter.Telegram
	if cfg.TelegramEnabled() {
		if tg, err = reporter.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID); err != nil {
			logger.Warn("⚠️ Telegram disabled", "err", err)
			tg = nil
		} else {
			logger.Info("🤖 Telegram Bot initialized.")
		}
	}

	res, sess, err := extract(ctx, cfg, opts.replayDir, stderr, logger)
	if sess != nil {
		defer sess.close()
	}
	if err != nil {
		return fail(logger, tg, err)
	}

	logger.Info("✅ Extraction finished", "jobs", len(res.Jobs), "pages", res.Pages, "reason", res.Reason)
	if res.Degraded() {
		logger.Warn("⚠️ Extraction stopped early; delivering the jobs collected so far.", "pages", res.Pages)
	}

	csvPath, err := writeExports(cfg, res, logger)
	if err != nil {
		return fail(logger, tg, err)
	}
	if err := writeReport(cfg, sess, res, csvPath, logger); err != nil {
		logger.Warn("⚠️ Failed to write report", "err", err)
	}

	presenters := []reporter.Presenter{reporter.NewTable(stdout)}
	if tg != nil {
		presenters = append(presenters, tg)
	}
	for _, p := range presenters {
		if err := p.Present(res, csvPath); err != nil {
			logger.Warn("⚠️ Failed to present results", "err", err)
		}
	}

	if cfg.DatabaseURL != "" {
		saveRun(ctx, cfg, res, logger)
	}

	logger.Info("🏁 Execution finished.")
	return nil
}

func extract(ctx context.Context, cfg *config.Config, replayDir string, stderr io.Writer, logger *log.Logger) (*scraper.Result, *session, error) {
	sess, err := openSession(cfg, replayDir, logger)
	if err != nil {
		return nil, nil, err
	}

	progress := reporter.NewTerminal(stderr, logger)
	progress.Start()
	defer progress.Stop()

	e := scraper.NewExtractor(sess.reader,
		scraper.WithSettler(sess.settle),
		scraper.WithProgress(progress),
		scraper.WithLogger(logger),
	)
	res, err := e.Run(ctx)
	return res, sess, err
}

// writeExports writes every enabled format. If one of them fails, the
// files already written are removed so no partial export is left behind.
func writeExports(cfg *config.Config, res *scraper.Result, logger *log.Logger) (string, error) {
	var (
		csvPath string
		written []string
	)
	rollback := func(err error) (string, error) {
		for _, path := range written {
			if rmErr := os.Remove(path); rmErr != nil {
				logger.Warn("⚠️ Failed to remove partial export", "path", path, "err", rmErr)
			}
		}
		return "", fmt.Errorf("export failed: %w", err)
	}

	if cfg.Wants("csv") {
		path, err := export.WriteCSV(cfg.OutputDir, cfg.FilePrefix, res.Jobs)
		if err != nil {
			return rollback(err)
		}
		written = append(written, path)
		csvPath = path
	}
	if cfg.Wants("json") {
		path, err := export.WriteJSON(cfg.OutputDir, cfg.FilePrefix, res.Jobs)
		if err != nil {
			return rollback(err)
		}
		written = append(written, path)
	}

	for _, path := range written {
		logger.Info("📥 Export saved", "path", path)
	}
	return csvPath, nil
}

// fail reports an aborted run to the operator and, when configured, to
// Telegram.
func fail(logger *log.Logger, tg *reporter.Telegram, err error) error {
	logger.Error("❌ Error during extraction", "err", err)
	if tg != nil {
		if sendErr := tg.SendError(err); sendErr != nil {
			logger.Warn("⚠️ Failed to send error to Telegram", "err", sendErr)
		}
	}
	return err
}

func writeReport(cfg *config.Config, sess *session, res *scraper.Result, csvPath string, logger *log.Logger) error {
	gen, err := report.NewGenerator()
	if err != nil {
		return err
	}
	html, err := gen.HTML(res, csvPath)
	if err != nil {
		return err
	}
	base := filepath.Join(cfg.OutputDir, export.FileName(cfg.FilePrefix, len(res.Jobs), "html"))
	if err := report.SaveToFile(html, base); err != nil {
		return err
	}
	logger.Info("📝 Report saved", "path", base)

	if !cfg.ReportPDF {
		return nil
	}
	if sess.manager == nil {
		if sess.manager, err = browser.NewPlaywright(true); err != nil {
			return err
		}
	}
	page, err := sess.manager.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create report page: %w", err)
	}
	defer page.Close()

	pdf, err := gen.PDF(page, res, csvPath)
	if err != nil {
		return err
	}
	pdfPath := strings.TrimSuffix(base, ".html") + ".pdf"
	if err := report.SaveToFile(pdf, pdfPath); err != nil {
		return err
	}
	logger.Info("📄 PDF report saved", "path", pdfPath)
	return nil
}

func saveRun(ctx context.Context, cfg *config.Config, res *scraper.Result, logger *log.Logger) {
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("⚠️ Database unavailable", "err", err)
		return
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Warn("⚠️ Failed to prepare database", "err", err)
		return
	}
	run, err := repo.SaveRun(ctx, cfg.StartURL, res)
	if err != nil {
		logger.Warn("⚠️ Failed to save run", "err", err)
		return
	}
	logger.Info("💾 Run saved to database", "id", run.ID, "jobs", run.JobCount)
}
