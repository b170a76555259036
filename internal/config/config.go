// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-savedjobs-extractor/internal/scraper"
	"go-savedjobs-extractor/internal/scraper/linkedin"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

var (
	ErrMissingStartURL    = errors.New("start_url is required")
	ErrInvalidSettleDelay = errors.New("settle_delay must not be negative")
	ErrUnknownFormat      = errors.New("unknown export format")
)

type Config struct {
	//Source page
	StartURL    string            `yaml:"start_url"`
	CookiesPath string            `yaml:"cookies_path"`
	Headed      bool              `yaml:"headed"`
	SettleDelay time.Duration     `yaml:"settle_delay"`
	Selectors   scraper.Selectors `yaml:"selectors"`

	//Output
	OutputDir     string   `yaml:"output_dir"`
	FilePrefix    string   `yaml:"file_prefix"`
	Formats       []string `yaml:"formats"`
	ReportPDF     bool     `yaml:"report_pdf"`
	ScreenshotDir string   `yaml:"screenshot_dir"`
	LogLevel      string   `yaml:"log_level"`

	//Optional sinks
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
}

// Load reads .env, then the YAML file at path (a missing file is fine),
// then environment overrides, then fills defaults and validates.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	// set before decoding so an explicit settle_delay: 0s survives
	cfg := &Config{SettleDelay: scraper.DefaultSettleDelay}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if u := os.Getenv("EXTRACTOR_START_URL"); u != "" {
		c.StartURL = u
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.DatabaseURL = dbURL
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.StartURL == "" {
		c.StartURL = linkedin.SavedJobsURL
	}
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies/cookies-linkedin.json"
	}

	def := linkedin.DefaultSelectors()
	if c.Selectors.Company == "" {
		c.Selectors.Company = def.Company
	}
	if c.Selectors.Title == "" {
		c.Selectors.Title = def.Title
	}
	if c.Selectors.Location == "" {
		c.Selectors.Location = def.Location
	}
	if c.Selectors.Next == "" {
		c.Selectors.Next = def.Next
	}

	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.FilePrefix == "" {
		c.FilePrefix = "linkedin_saved_jobs"
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"csv"}
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "logs/screenshots"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.StartURL) == "" {
		return ErrMissingStartURL
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettleDelay, c.SettleDelay)
	}
	for _, f := range c.Formats {
		if f != "csv" && f != "json" {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	return nil
}

// Wants reports whether an export format is enabled.
func (c *Config) Wants(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// TelegramEnabled reports whether both bot token and chat are set.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
