package database

import (
	"context"
	"os"
	"testing"

	"go-savedjobs-extractor/internal/models"
	"go-savedjobs-extractor/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var res = &scraper.Result{
	Jobs: []scraper.Job{
		{Company: "Acme", Title: "Engineer", Location: "Remote"},
		{Company: "Globex", Title: scraper.Sentinel, Location: "Onsite"},
	},
	Pages:  2,
	Reason: scraper.NavigationStopped,
}

func TestJobRows(t *testing.T) {
	rows := jobRows("run-1", res.Jobs)
	assert.Equal(t, []models.SavedJob{
		{RunID: "run-1", Position: 1, Company: "Acme", Title: "Engineer", Location: "Remote"},
		{RunID: "run-1", Position: 2, Company: "Globex", Title: scraper.Sentinel, Location: "Onsite"},
	}, rows)
	assert.Empty(t, jobRows("run-2", nil))
}

func TestRunStatus(t *testing.T) {
	assert.Equal(t, models.StatusDegraded, runStatus(res))
	assert.Equal(t, models.StatusComplete, runStatus(&scraper.Result{Reason: scraper.EndOfPages}))
}

// integration test: needs a reachable Postgres in TEST_DATABASE_URL
func TestRepository_SaveRun(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if testing.Short() || dbURL == "" {
		t.Skip("Skipping database integration test")
	}

	ctx := context.Background()
	repo, err := ConnectDB(ctx, dbURL)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	run, err := repo.SaveRun(ctx, "https://www.linkedin.com/my-items/saved-jobs/", res)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.JobCount)
	assert.Equal(t, models.StatusDegraded, run.Status)

	var count int
	require.NoError(t, repo.db.QueryRow(ctx, "SELECT count(*) FROM saved_jobs WHERE run_id = $1", run.ID).Scan(&count))
	assert.Equal(t, 2, count)
}
