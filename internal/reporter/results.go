package reporter

import (
	"fmt"
	"io"

	"go-savedjobs-extractor/internal/scraper"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Presenter shows the final result of a run once, after export.
type Presenter interface {
	Present(res *scraper.Result, exportPath string) error
}

// Table prints the collected jobs as a numbered table.
type Table struct {
	out io.Writer
}

func NewTable(out io.Writer) *Table {
	return &Table{out: out}
}

func (p *Table) Present(res *scraper.Result, exportPath string) error {
	fmt.Fprintln(p.out, Heading(res))
	if exportPath != "" {
		fmt.Fprintln(p.out, DownloadMessage(len(res.Jobs), exportPath))
	}
	if res.Degraded() {
		fmt.Fprintf(p.out, "Extraction stopped early on page %d (%s); the table below may be incomplete.\n", res.Pages, res.Reason)
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"#", "Company", "Job Title", "Location"})
	for i, job := range res.Jobs {
		t.AppendRow(table.Row{i + 1, job.Company, job.Title, job.Location})
	}
	t.AppendFooter(table.Row{"", "", "Pages", res.Pages})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// Heading is the one-line summary shared by every presenter.
func Heading(res *scraper.Result) string {
	return fmt.Sprintf("Extraction Complete: %d Jobs Found", len(res.Jobs))
}

func DownloadMessage(count int, path string) string {
	return fmt.Sprintf("A CSV file with %d jobs has been saved to %s.", count, path)
}
