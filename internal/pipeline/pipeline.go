// Package pipeline ties the pieces of one extraction together: load the
// document's page text, carve out the configured sections and persist the
// run. Both the CLI and the HTTP API drive extractions through it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkravec/cennik/internal/config"
	"github.com/mkravec/cennik/internal/pagemap"
	"github.com/mkravec/cennik/internal/pagetext"
	"github.com/mkravec/cennik/internal/section"
	"github.com/mkravec/cennik/internal/store"
)

// Request describes one extraction to perform.
type Request struct {
	Provider    string
	ProviderCfg config.ProviderCfg
	PDFPath     string
}

// Output is the outcome of one pipeline run.
type Output struct {
	RunID      string          `json:"run_id,omitempty"`
	Provider   string          `json:"provider"`
	Document   string          `json:"document"`
	Layout     pagemap.Mode    `json:"layout"`
	PageCount  int             `json:"page_count"`
	Result     *section.Result `json:"result"`
	Validation string          `json:"validation_error,omitempty"`
}

// Run executes one extraction. Page-validation failures do not abort the
// run: the result is persisted with the affected sections marked failed and
// the validation message is carried on the Output for the caller to surface.
// st may be nil, in which case nothing is persisted.
func Run(ctx context.Context, st *store.Store, logger *slog.Logger, req Request) (*Output, error) {
	doc, err := pagetext.Load(ctx, req.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", req.PDFPath, err)
	}

	extractor := section.New(doc.Pages, section.Options{
		Layout:    layoutFromHint(req.ProviderCfg.Layout),
		Overrides: req.ProviderCfg.OverrideTable(),
		Logger:    logger,
	})

	result, runErr := extractor.Run(req.ProviderCfg.Sections, doc.TocText())
	if runErr != nil && !errors.Is(runErr, section.ErrPageValidation) {
		return nil, runErr
	}

	out := &Output{
		Provider:  req.Provider,
		Document:  req.PDFPath,
		Layout:    extractor.Layout(),
		PageCount: doc.PageCount(),
		Result:    result,
	}
	if runErr != nil {
		out.Validation = runErr.Error()
	}

	if logger != nil {
		logger.Info("extraction complete",
			"provider", req.Provider,
			"document", req.PDFPath,
			"layout", out.Layout,
			"toc_sections", result.Info.TocSections,
			"successful", result.Summary.Successful,
			"failed", result.Summary.Failed)
	}

	if st != nil {
		run := &store.Run{
			Provider:     req.Provider,
			DocumentPath: req.PDFPath,
			LayoutMode:   string(out.Layout),
			Method:       result.Info.Method,
			TocSections:  result.Info.TocSections,
			Summary:      result.Summary,
		}
		id, err := st.SaveRun(ctx, run, result.Outcomes)
		if err != nil {
			return nil, fmt.Errorf("persisting run: %w", err)
		}
		out.RunID = id
	}

	return out, nil
}

// layoutFromHint maps the config hint to a layout mode; "auto" and unknown
// values mean detect.
func layoutFromHint(hint string) pagemap.Mode {
	switch hint {
	case string(pagemap.ModeSingleSided):
		return pagemap.ModeSingleSided
	case string(pagemap.ModeDoubleSided):
		return pagemap.ModeDoubleSided
	default:
		return ""
	}
}
