package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSettler struct{ calls int }

func (s *countingSettler) Settle(context.Context) error {
	s.calls++
	return nil
}

func TestPaginator_Advance(t *testing.T) {
	tests := []struct {
		name        string
		page        fakePage
		want        NavigationOutcome
		wantClicks  int
		wantSettles int
	}{
		{name: "enabled control", page: fakePage{hasNext: true}, want: Advanced, wantClicks: 1, wantSettles: 1},
		{name: "no control", page: fakePage{hasNext: false}, want: NoNextControl},
		{name: "control vanished", page: fakePage{hasNext: true, vanish: true}, want: NavigationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newFakeReader(tt.page, fakePage{})
			settler := &countingSettler{}
			p := NewPaginator(reader, settler)

			got, err := p.Advance(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantClicks, reader.clicks)
			assert.Equal(t, tt.wantSettles, settler.calls)
		})
	}
}

func TestPaginator_HasNextIsFresh(t *testing.T) {
	reader := newFakeReader(fakePage{hasNext: true}, fakePage{hasNext: false})
	p := NewPaginator(reader, Immediate)
	ctx := context.Background()

	ok, err := p.HasNext(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	outcome, err := p.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, outcome)

	ok, err = p.HasNext(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaginator_SettleError(t *testing.T) {
	boom := errors.New("page crashed")
	reader := newFakeReader(fakePage{hasNext: true}, fakePage{})
	p := NewPaginator(reader, SettleFunc(func(context.Context) error { return boom }))

	_, err := p.Advance(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFixedDelay(t *testing.T) {
	start := time.Now()
	require.NoError(t, FixedDelay(20*time.Millisecond).Settle(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, FixedDelay(0).Settle(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FixedDelay(time.Hour).Settle(ctx), context.Canceled)
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "advanced", Advanced.String())
	assert.Equal(t, "no next control", NoNextControl.String())
	assert.Equal(t, "navigation failed", NavigationFailed.String())
	assert.Equal(t, "end of pages", EndOfPages.String())
	assert.Equal(t, "navigation stopped", NavigationStopped.String())
}
