// Shared types for the saved-jobs extraction loop.
// A PageReader exposes whatever page is currently rendered,
// the assembler turns its fragments into jobs and the extractor walks pages.

package scraper

import (
	"context"
)

// Sentinel is the value of a field whose fragment is missing on the page.
const Sentinel = "N/A"

// Job is one assembled listing entry. All three fields are always set,
// either to extracted text or to Sentinel.
type Job struct {
	Company  string `json:"company"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// FragmentList holds the raw texts of one column in render order.
type FragmentList []string

// Column identifies one of the three parallel fragment lists on a page.
type Column int

const (
	ColumnCompany Column = iota
	ColumnTitle
	ColumnLocation
)

func (c Column) String() string {
	switch c {
	case ColumnCompany:
		return "company"
	case ColumnTitle:
		return "title"
	case ColumnLocation:
		return "location"
	}
	return "unknown"
}

// Selectors locate the fragments and the next control on a page.
type Selectors struct {
	Company  string `yaml:"company"`
	Title    string `yaml:"title"`
	Location string `yaml:"location"`
	Next     string `yaml:"next"`
}

// For returns the selector of a column.
func (s Selectors) For(col Column) string {
	switch col {
	case ColumnCompany:
		return s.Company
	case ColumnTitle:
		return s.Title
	case ColumnLocation:
		return s.Location
	}
	return ""
}

// PageReader is the live view of the listing. Every call reads the page as
// it is rendered at that instant.
type PageReader interface {
	// Fragments lists the texts of one column on the current page.
	Fragments(ctx context.Context, col Column) (FragmentList, error)

	// HasNext reports whether an enabled next control is present.
	HasNext(ctx context.Context) (bool, error)

	// ClickNext triggers the next control. It returns false with a nil error
	// when the control is gone or cannot be used.
	ClickNext(ctx context.Context) (bool, error)
}

// NavigationOutcome is the result of trying to move to the next page.
type NavigationOutcome int

const (
	Advanced NavigationOutcome = iota
	NoNextControl
	NavigationFailed
)

func (o NavigationOutcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case NoNextControl:
		return "no next control"
	case NavigationFailed:
		return "navigation failed"
	}
	return "unknown"
}

// StopReason tells why an extraction run ended.
type StopReason int

const (
	EndOfPages StopReason = iota
	NavigationStopped
)

func (r StopReason) String() string {
	switch r {
	case EndOfPages:
		return "end of pages"
	case NavigationStopped:
		return "navigation stopped"
	}
	return "unknown"
}
