package scraper

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// AssemblePage merges the three column lists of one page by index.
// The result is as long as the longest list; a shorter list contributes
// Sentinel for the indices it lacks.
//
// Fragment i of each list is assumed to belong to the same listing entry.
// Nothing on the page lets us check that, so it is trusted as rendered.
func AssemblePage(company, title, location FragmentList) []Job {
	n := max(len(company), len(title), len(location))
	jobs := make([]Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, Job{
			Company:  pick(company, i, cleanField),
			Title:    pick(title, i, NormalizeTitle),
			Location: pick(location, i, cleanField),
		})
	}
	return jobs
}

// ReadPage reads all three columns from the reader and assembles them.
func ReadPage(ctx context.Context, reader PageReader) ([]Job, error) {
	cols := make([]FragmentList, 3)
	for i, col := range []Column{ColumnCompany, ColumnTitle, ColumnLocation} {
		frags, err := reader.Fragments(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s fragments: %w", col, err)
		}
		cols[i] = frags
	}
	return AssemblePage(cols[0], cols[1], cols[2]), nil
}

// NormalizeTitle trims the title and collapses every whitespace run
// (spaces, tabs, newlines, nbsp, BOM) into a single space.
func NormalizeTitle(s string) string {
	return strings.Join(strings.FieldsFunc(cleanField(s), isSpace), " ")
}

// cleanField composes the text to NFC and trims it.
func cleanField(s string) string {
	return strings.TrimFunc(norm.NFC.String(s), isSpace)
}

// isSpace matches the whitespace set of browser text trimming: Unicode
// White_Space plus U+FEFF, without U+0085.
func isSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func pick(list FragmentList, i int, clean func(string) string) string {
	if i >= len(list) {
		return Sentinel
	}
	return clean(list[i])
}
