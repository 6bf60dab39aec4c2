// Package pagetext materializes the per-page plain text of a tariff PDF.
// The whole document is read up front, once: downstream extraction is pure
// and synchronous and never touches I/O.
package pagetext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// TocPageIndex is the physical index of the table-of-contents page. Tariff
// documents in this domain put the cover at index 0 and the ToC at index 1.
const TocPageIndex = 1

// Document is the fully materialized page-text sequence of one PDF.
type Document struct {
	Path  string
	Pages []string
}

// Load opens the PDF at path and extracts the plain text of every page in
// order. Page indices stay aligned with the physical page sequence: a page
// whose text cannot be extracted contributes an empty string, never a gap.
func Load(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	expected, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading page count of %s: %w", path, err)
	}

	pf, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF text layer: %w", err)
	}
	defer pf.Close()

	total := reader.NumPage()
	if total != expected {
		return nil, fmt.Errorf("page count mismatch for %s: text layer has %d pages, document reports %d", path, total, expected)
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	return &Document{Path: path, Pages: pages}, nil
}

// PageCount returns the number of physical pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Page returns the text of the physical page at idx, or the empty string for
// out-of-range indices.
func (d *Document) Page(idx int) string {
	if idx < 0 || idx >= len(d.Pages) {
		return ""
	}
	return d.Pages[idx]
}

// TocText returns the raw text of the table-of-contents page.
func (d *Document) TocText() string {
	return d.Page(TocPageIndex)
}
