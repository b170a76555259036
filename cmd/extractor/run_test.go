package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"go-savedjobs-extractor/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
start_url: https://www.linkedin.com/my-items/saved-jobs/
settle_delay: 1ms
output_dir: %s
file_prefix: saved
formats: [csv, json]
log_level: error
selectors:
  company: "li .company"
  title: "li .title a"
  location: "li .location"
  next: "button.next:not([disabled])"
`

func writeFixture(t *testing.T) (configPath, replayDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	replayDir = filepath.Join(root, "pages")
	outDir = filepath.Join(root, "out")

	pages := []string{
		`<ul><li><div class="company">Acme</div><div class="title"><a>Go  Engineer</a></div><div class="location">Remote</div></li></ul>
		<button class="next">Next</button>`,
		`<ul><li><div class="company">Globex</div><div class="location">Berlin</div></li></ul>
		<button class="next" disabled>Next</button>`,
	}
	for i, html := range pages {
		_, err := snapshot.Save(replayDir, i+1, html)
		require.NoError(t, err)
	}

	configPath = filepath.Join(root, "config.yaml")
	cfg := bytes.ReplaceAll([]byte(testConfig), []byte("%s"), []byte(outDir))
	require.NoError(t, os.WriteFile(configPath, cfg, 0o644))
	return configPath, replayDir, outDir
}

func TestRun_ReplayWritesExports(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	configPath, replayDir, outDir := writeFixture(t)

	var stdout bytes.Buffer
	err := run(context.Background(), &options{configPath: configPath, replayDir: replayDir}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	csv, err := os.ReadFile(filepath.Join(outDir, "saved_2_items.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Company Name,Job Title,Location\n\"Acme\",\"Go Engineer\",\"Remote\"\n\"Globex\",\"N/A\",\"Berlin\"",
		string(csv))

	assert.FileExists(t, filepath.Join(outDir, "saved_2_items.json"))
	assert.FileExists(t, filepath.Join(outDir, "saved_2_items.html"))
	assert.Contains(t, stdout.String(), "Extraction Complete: 2 Jobs Found")
}

func TestRun_MissingReplayDir(t *testing.T) {
	configPath, _, outDir := writeFixture(t)

	err := run(context.Background(), &options{configPath: configPath, replayDir: filepath.Join(outDir, "nope")}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.NoDirExists(t, outDir)
}

func TestRun_ExportFailureRemovesPartialFiles(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	configPath, replayDir, outDir := writeFixture(t)

	// a directory in place of the JSON file makes the second format fail
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "saved_2_items.json"), 0o755))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &options{configPath: configPath, replayDir: replayDir}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed")

	assert.NoFileExists(t, filepath.Join(outDir, "saved_2_items.csv"))
	assert.NoFileExists(t, filepath.Join(outDir, "saved_2_items.html"))
	assert.Contains(t, stderr.String(), "Error during extraction")
	assert.NotContains(t, stdout.String(), "Extraction Complete")
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(io.Discard, "DEBUG")
	require.NoError(t, err)

	_, err = newLogger(io.Discard, "loud")
	assert.Error(t, err)
}
