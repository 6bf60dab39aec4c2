package pagetext

import (
	"context"
	"testing"
)

func TestDocument_Accessors(t *testing.T) {
	doc := &Document{
		Path:  "/tmp/cennik.pdf",
		Pages: []string{"Cenník", "Obsah\nINTERNET .... 4", "4 INTERNET"},
	}

	if doc.PageCount() != 3 {
		t.Errorf("expected 3 pages, got %d", doc.PageCount())
	}

	t.Run("Page", func(t *testing.T) {
		if got := doc.Page(0); got != "Cenník" {
			t.Errorf("unexpected page 0: %q", got)
		}
		if got := doc.Page(-1); got != "" {
			t.Errorf("expected empty string for negative index, got %q", got)
		}
		if got := doc.Page(3); got != "" {
			t.Errorf("expected empty string past the end, got %q", got)
		}
	})

	t.Run("TocText", func(t *testing.T) {
		if got := doc.TocText(); got != "Obsah\nINTERNET .... 4" {
			t.Errorf("unexpected ToC text: %q", got)
		}
	})
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), "/nonexistent/cennik.pdf"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
