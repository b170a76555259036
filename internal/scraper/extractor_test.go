package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExtractor(t *testing.T, reader PageReader) (*Result, []Progress, error) {
	t.Helper()
	var events []Progress
	e := NewExtractor(reader,
		WithSettler(Immediate),
		WithProgress(ProgressFunc(func(p Progress) { events = append(events, p) })),
	)
	res, err := e.Run(context.Background())
	return res, events, err
}

func TestExtractor_ThreePages(t *testing.T) {
	reader := newFakeReader(
		jobsPage(2, true, "p1"),
		jobsPage(2, true, "p2"),
		jobsPage(1, false, "p3"),
	)

	res, events, err := runExtractor(t, reader)
	require.NoError(t, err)

	assert.Equal(t, EndOfPages, res.Reason)
	assert.False(t, res.Degraded())
	assert.Equal(t, 3, res.Pages)
	require.Len(t, res.Jobs, 5)

	var want []Job
	for _, prefix := range []string{"p1", "p1", "p2", "p2", "p3"} {
		want = append(want, Job{Company: prefix + "-company", Title: prefix + "-title", Location: prefix + "-location"})
	}
	if diff := cmp.Diff(want, res.Jobs); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []Progress{
		{RecordCount: 2, CurrentPage: 1},
		{RecordCount: 4, CurrentPage: 2},
		{RecordCount: 5, CurrentPage: 3},
	}, events)

	// every page was read exactly once
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, reader.reads)
}

func TestExtractor_SinglePageNoNext(t *testing.T) {
	reader := newFakeReader(jobsPage(3, false, "only"), jobsPage(4, false, "never"))

	res, events, err := runExtractor(t, reader)
	require.NoError(t, err)

	assert.Equal(t, EndOfPages, res.Reason)
	assert.Len(t, res.Jobs, 3)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 0, reader.clicks)
	assert.Len(t, events, 1)
	assert.NotContains(t, reader.reads, 1)
}

func TestExtractor_NavigationFailedKeepsPartialResult(t *testing.T) {
	failing := jobsPage(2, true, "p2")
	failing.vanish = true
	reader := newFakeReader(
		jobsPage(1, true, "p1"),
		failing,
		jobsPage(5, false, "p3"),
	)

	res, events, err := runExtractor(t, reader)
	require.NoError(t, err)

	assert.Equal(t, NavigationStopped, res.Reason)
	assert.True(t, res.Degraded())
	assert.Equal(t, 2, res.Pages)
	assert.Len(t, res.Jobs, 3)
	assert.Equal(t, "p2-company", res.Jobs[2].Company)
	assert.Len(t, events, 2)
	assert.NotContains(t, reader.reads, 2)
}

func TestExtractor_EmptyPages(t *testing.T) {
	reader := newFakeReader(fakePage{hasNext: true}, fakePage{})

	res, events, err := runExtractor(t, reader)
	require.NoError(t, err)
	assert.Empty(t, res.Jobs)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []Progress{{0, 1}, {0, 2}}, events)
}

func TestExtractor_ProgressIsMonotonic(t *testing.T) {
	reader := newFakeReader(
		jobsPage(3, true, "a"),
		fakePage{hasNext: true},
		jobsPage(1, true, "b"),
		jobsPage(2, false, "c"),
	)

	_, events, err := runExtractor(t, reader)
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].RecordCount, events[i-1].RecordCount)
		assert.Equal(t, events[i-1].CurrentPage+1, events[i].CurrentPage)
	}
}

func TestExtractor_UnexpectedFailureAborts(t *testing.T) {
	boom := errors.New("target closed")
	reader := newFakeReader(jobsPage(2, true, "p1"), jobsPage(2, false, "p2"))
	reader.failPage, reader.failOn, reader.err = 1, ColumnTitle, boom

	res, events, err := runExtractor(t, reader)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "page 2")
	assert.Len(t, events, 1)
}

func TestExtractor_ContextCancelledDuringSettle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := newFakeReader(jobsPage(1, true, "p1"), jobsPage(1, false, "p2"))
	e := NewExtractor(reader, WithSettler(SettleFunc(func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})))

	res, err := e.Run(ctx)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}
