package models

import (
	"time"
)

type RunStatus string

const (
	StatusComplete RunStatus = "COMPLETE"
	StatusDegraded RunStatus = "DEGRADED"
)

// Run is one extraction run as stored by the database sink.
type Run struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"source_url"`
	Pages     int       `json:"pages"`
	JobCount  int       `json:"job_count"`
	Status    RunStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedJob is one extracted record; Position keeps the extraction order.
type SavedJob struct {
	RunID    string `json:"run_id"`
	Position int    `json:"position"`
	Company  string `json:"company"`
	Title    string `json:"title"`
	Location string `json:"location"`
}
