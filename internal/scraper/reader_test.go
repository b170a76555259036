package scraper

import (
	"context"
	"errors"
)

// fakePage is one scripted rendering of the listing.
type fakePage struct {
	company, title, location FragmentList
	hasNext                  bool
	// vanish makes the control disappear between HasNext and ClickNext.
	vanish bool
}

// fakeReader replays scripted pages and records how it was driven.
type fakeReader struct {
	pages   []fakePage
	current int

	reads    map[int]int
	clicks   int
	failOn   Column
	failPage int
	err      error
}

func newFakeReader(pages ...fakePage) *fakeReader {
	return &fakeReader{pages: pages, reads: make(map[int]int), failPage: -1}
}

func (r *fakeReader) Fragments(_ context.Context, col Column) (FragmentList, error) {
	if r.current == r.failPage && col == r.failOn {
		return nil, r.err
	}
	if col == ColumnCompany {
		r.reads[r.current]++
	}
	p := r.pages[r.current]
	switch col {
	case ColumnCompany:
		return p.company, nil
	case ColumnTitle:
		return p.title, nil
	default:
		return p.location, nil
	}
}

func (r *fakeReader) HasNext(context.Context) (bool, error) {
	return r.pages[r.current].hasNext, nil
}

func (r *fakeReader) ClickNext(context.Context) (bool, error) {
	p := r.pages[r.current]
	if !p.hasNext || p.vanish {
		return false, nil
	}
	if r.current+1 >= len(r.pages) {
		return false, errors.New("script ran out of pages")
	}
	r.clicks++
	r.current++
	return true, nil
}

func jobsPage(n int, hasNext bool, prefix string) fakePage {
	p := fakePage{hasNext: hasNext}
	for i := 0; i < n; i++ {
		p.company = append(p.company, prefix+"-company")
		p.title = append(p.title, prefix+"-title")
		p.location = append(p.location, prefix+"-location")
	}
	return p
}
