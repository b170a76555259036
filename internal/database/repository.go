package database

import (
	"context"
	"fmt"
	"time"

	"go-savedjobs-extractor/internal/models"
	"go-savedjobs-extractor/internal/scraper"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS extraction_runs (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	source_url TEXT NOT NULL,
	pages      INTEGER NOT NULL,
	job_count  INTEGER NOT NULL,
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, `
CREATE TABLE IF NOT EXISTS saved_jobs (
	run_id   TEXT NOT NULL REFERENCES extraction_runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	company  TEXT NOT NULL,
	title    TEXT NOT NULL,
	location TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
)`,
}

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers (PgBouncer, Supabase) don't support the
	// prepared statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the run and job tables when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveRun stores a run and all of its jobs in one transaction.
func (r *Repository) SaveRun(ctx context.Context, sourceURL string, res *scraper.Result) (*models.Run, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	run := models.Run{
		SourceURL: sourceURL,
		Pages:     res.Pages,
		JobCount:  len(res.Jobs),
		Status:    runStatus(res),
	}
	query := `
		INSERT INTO extraction_runs (source_url, pages, job_count, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := tx.QueryRow(ctx, query, run.SourceURL, run.Pages, run.JobCount, run.Status).
		Scan(&run.ID, &run.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	rows := jobRows(run.ID, res.Jobs)
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"saved_jobs"},
		[]string{"run_id", "position", "company", "title", "location"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			j := rows[i]
			return []any{j.RunID, j.Position, j.Company, j.Title, j.Location}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("failed to insert saved jobs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return &run, nil
}

func runStatus(res *scraper.Result) models.RunStatus {
	if res.Degraded() {
		return models.StatusDegraded
	}
	return models.StatusComplete
}

func jobRows(runID string, jobs []scraper.Job) []models.SavedJob {
	rows := make([]models.SavedJob, len(jobs))
	for i, job := range jobs {
		rows[i] = models.SavedJob{
			RunID:    runID,
			Position: i + 1,
			Company:  job.Company,
			Title:    job.Title,
			Location: job.Location,
		}
	}
	return rows
}
