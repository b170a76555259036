package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"go-savedjobs-extractor/internal/reporter"
	"go-savedjobs-extractor/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

//go:embed templates/summary.html
var templates embed.FS

type summary struct {
	Heading    string
	ExportName string
	Jobs       []scraper.Job
	Pages      int
	Reason     string
	Degraded   bool
}

// Generator renders the end-of-run summary as HTML and, through a
// playwright page, as PDF.
type Generator struct {
	tmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	funcMap := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	tmpl, err := template.New("summary.html").Funcs(funcMap).ParseFS(templates, "templates/summary.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// HTML renders the summary page. Job text is escaped by html/template.
func (g *Generator) HTML(res *scraper.Result, exportPath string) ([]byte, error) {
	data := summary{
		Heading:  reporter.Heading(res),
		Jobs:     res.Jobs,
		Pages:    res.Pages,
		Reason:   res.Reason.String(),
		Degraded: res.Degraded(),
	}
	if exportPath != "" {
		data.ExportName = filepath.Base(exportPath)
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF loads the summary into page and prints it as A4.
func (g *Generator) PDF(page playwright.Page, res *scraper.Result, exportPath string) ([]byte, error) {
	html, err := g.HTML(res, exportPath)
	if err != nil {
		return nil, err
	}

	if err := page.SetContent(string(html), playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return nil, fmt.Errorf("could not set page content: %w", err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String("12mm"),
			Bottom: playwright.String("12mm"),
			Left:   playwright.String("10mm"),
			Right:  playwright.String("10mm"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate PDF: %w", err)
	}
	return pdfBytes, nil
}

// SaveToFile writes a rendered report to disk, creating its directory.
func SaveToFile(data []byte, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	return os.WriteFile(outputPath, data, 0644)
}
