package scraper

import (
	"context"
	"fmt"
	"time"
)

// DefaultSettleDelay is how long the page gets to render after a click.
const DefaultSettleDelay = 3 * time.Second

// Settler waits until a freshly triggered page is considered rendered.
type Settler interface {
	Settle(ctx context.Context) error
}

// SettleFunc adapts a function to Settler.
type SettleFunc func(ctx context.Context) error

func (f SettleFunc) Settle(ctx context.Context) error { return f(ctx) }

// Immediate settles without waiting.
var Immediate Settler = SettleFunc(func(context.Context) error { return nil })

// FixedDelay settles after a fixed wait. Completion signals on client
// rendered listings are unreliable, so a bounded sleep is used instead.
type FixedDelay time.Duration

func (d FixedDelay) Settle(ctx context.Context) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Paginator checks for and moves to the next page of the listing.
type Paginator struct {
	reader PageReader
	settle Settler
}

func NewPaginator(reader PageReader, settle Settler) *Paginator {
	if settle == nil {
		settle = FixedDelay(DefaultSettleDelay)
	}
	return &Paginator{reader: reader, settle: settle}
}

// HasNext asks the page again on every call; the control is disabled once
// the last page is shown.
func (p *Paginator) HasNext(ctx context.Context) (bool, error) {
	ok, err := p.reader.HasNext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check next control: %w", err)
	}
	return ok, nil
}

// Advance clicks the next control and waits for the page to settle.
// Errors are reserved for unexpected failures of the reader or the wait.
func (p *Paginator) Advance(ctx context.Context) (NavigationOutcome, error) {
	// Checked again even when the caller just did: Advance on a disabled
	// control must not click or wait. Costs one extra query per page.
	ok, err := p.HasNext(ctx)
	if err != nil {
		return NavigationFailed, err
	}
	if !ok {
		return NoNextControl, nil
	}

	// the control can disappear between the check and the click
	clicked, err := p.reader.ClickNext(ctx)
	if err != nil {
		return NavigationFailed, fmt.Errorf("failed to click next control: %w", err)
	}
	if !clicked {
		return NavigationFailed, nil
	}

	if err := p.settle.Settle(ctx); err != nil {
		return NavigationFailed, fmt.Errorf("settle wait interrupted: %w", err)
	}
	return Advanced, nil
}
