// Package snapshot replays captured listing pages from disk so an
// extraction can be re-run, or selectors tuned, without a live session.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-savedjobs-extractor/internal/scraper"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoPages = errors.New("no captured pages")

// Reader serves captured pages in order. Clicking next moves to the
// following capture as long as the current one shows an enabled control.
type Reader struct {
	sel     scraper.Selectors
	names   []string
	docs    []*goquery.Document
	current int
}

// Load reads every *.html file of dir, ordered by file name.
func Load(dir string, sel scraper.Selectors) (*Reader, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	sort.Strings(paths)

	r := &Reader{sel: sel}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		doc, err := goquery.NewDocumentFromReader(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		r.names = append(r.names, filepath.Base(path))
		r.docs = append(r.docs, doc)
	}
	if len(r.docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, dir)
	}
	return r, nil
}

// FromHTML builds a reader over in-memory pages.
func FromHTML(sel scraper.Selectors, pages ...string) (*Reader, error) {
	r := &Reader{sel: sel}
	for i, html := range pages {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %d: %w", i+1, err)
		}
		r.names = append(r.names, FileName(i+1))
		r.docs = append(r.docs, doc)
	}
	if len(r.docs) == 0 {
		return nil, ErrNoPages
	}
	return r, nil
}

// FileName is the name a capture of the given page is stored under.
func FileName(page int) string {
	return fmt.Sprintf("page-%04d.html", page)
}

// Save writes the HTML of one page into dir.
func Save(dir string, page int, html string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	path := filepath.Join(dir, FileName(page))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// Current is the name of the page being served.
func (r *Reader) Current() string {
	return r.names[r.current]
}

func (r *Reader) Fragments(ctx context.Context, col scraper.Column) (scraper.FragmentList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var frags scraper.FragmentList
	r.docs[r.current].Find(r.sel.For(col)).Each(func(_ int, s *goquery.Selection) {
		frags = append(frags, s.Text())
	})
	return frags, nil
}

func (r *Reader) HasNext(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.docs[r.current].Find(r.sel.Next).Length() > 0, nil
}

// ClickNext reports false when the capture ends even though the page
// still showed a next control, the offline form of a vanished control.
func (r *Reader) ClickNext(ctx context.Context) (bool, error) {
	ok, err := r.HasNext(ctx)
	if err != nil || !ok {
		return false, err
	}
	if r.current+1 >= len(r.docs) {
		return false, nil
	}
	r.current++
	return true, nil
}
