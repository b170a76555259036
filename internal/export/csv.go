package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-savedjobs-extractor/internal/scraper"
)

// Header is the first line of every CSV export.
const Header = "Company Name,Job Title,Location"

var ErrNoOutputDir = errors.New("output directory not set")

// FileName encodes the record count, e.g. linkedin_saved_jobs_42_items.csv.
func FileName(prefix string, count int, ext string) string {
	return fmt.Sprintf("%s_%d_items.%s", prefix, count, ext)
}

// EncodeCSV renders the jobs with every field quoted and embedded quotes
// doubled. Rows are separated by "\n" with no trailing newline.
//
// encoding/csv only quotes fields that need it, so rows are built by hand.
func EncodeCSV(jobs []scraper.Job) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for i, job := range jobs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(quote(job.Company))
		buf.WriteByte(',')
		buf.WriteString(quote(job.Title))
		buf.WriteByte(',')
		buf.WriteString(quote(job.Location))
	}
	return buf.Bytes()
}

// WriteCSV writes the export into dir and returns the file path.
func WriteCSV(dir, prefix string, jobs []scraper.Job) (string, error) {
	return write(dir, FileName(prefix, len(jobs), "csv"), EncodeCSV(jobs))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func write(dir, name string, data []byte) (string, error) {
	if dir == "" {
		return "", ErrNoOutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}
