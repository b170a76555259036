package export

import (
	"encoding/json"
	"fmt"

	"go-savedjobs-extractor/internal/scraper"
)

// WriteJSON dumps the jobs as an indented JSON array next to the CSV.
func WriteJSON(dir, prefix string, jobs []scraper.Job) (string, error) {
	if jobs == nil {
		jobs = []scraper.Job{}
	}
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal jobs to JSON: %w", err)
	}
	return write(dir, FileName(prefix, len(jobs), "json"), data)
}
