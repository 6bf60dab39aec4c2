package section

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/mkravec/cennik/internal/pagemap"
	"github.com/mkravec/cennik/internal/toc"
)

// Extractor resolves configured sections against a document's ToC and carves
// out each section's text. One Extractor serves one document for one run:
// layout mode and occurrence state are per-run properties and never cross
// documents.
type Extractor struct {
	pages     []string
	mapper    *pagemap.Mapper
	matcher   *Matcher
	policy    ValidationPolicy
	overrides map[string]int
	logger    *slog.Logger
}

// Options configures an extraction run.
type Options struct {
	// Layout forces a layout mode. Empty means detect from the pages.
	Layout pagemap.Mode

	// Overrides maps a section title to the 1-based header occurrence that
	// marks the real section start. Some documents repeat a title before
	// the section actually begins; the override says which occurrence to
	// trust. Unlisted titles use the first occurrence found in page order.
	Overrides map[string]int

	Logger *slog.Logger
}

// New builds an Extractor over the document's ordered page texts. Layout
// detection runs here, once, so every section in the run sees the same mode.
func New(pages []string, opts Options) *Extractor {
	mode := opts.Layout
	if mode == "" {
		mode = pagemap.Detect(pages)
	}
	return &Extractor{
		pages:     pages,
		mapper:    pagemap.NewMapper(mode),
		matcher:   NewMatcher(),
		policy:    PolicyFor(mode),
		overrides: opts.Overrides,
		logger:    opts.Logger,
	}
}

// Layout returns the layout mode this run operates under.
func (e *Extractor) Layout() pagemap.Mode {
	return e.mapper.Mode()
}

// Run extracts every configured section in order. The returned Result is
// always complete: one Outcome per Spec, with resolution failures and missing
// headers recorded as failed outcomes rather than errors. The returned error
// is non-nil only when one or more sections failed page validation — those
// sections are reported failed and the joined error is surfaced so a systemic
// mis-mapping is visible, but other sections in the batch are unaffected.
func (e *Extractor) Run(specs []Spec, tocRaw string) (*Result, error) {
	titles := make([]string, len(specs))
	for i, s := range specs {
		titles[i] = s.Title
	}
	entries := toc.NewParser(titles).Parse(tocRaw)
	resolved := e.resolveAll(specs, entries)

	res := &Result{
		Outcomes: make([]Outcome, 0, len(specs)),
		Info:     Info{Method: MethodTocGuidedHeader, TocSections: len(entries)},
	}

	var hardErrs []error
	for i, spec := range specs {
		r := resolved[i]
		if r == nil {
			if e.logger != nil {
				e.logger.Warn("section not found in ToC", "key", spec.Key, "title", spec.Title)
			}
			res.Outcomes = append(res.Outcomes, failedOutcome(spec, ErrNotInToc))
			continue
		}

		text, err := e.extract(r, nextResolved(resolved, i))
		switch {
		case err == nil:
			res.Outcomes = append(res.Outcomes, Outcome{
				Key:       spec.Key,
				Title:     spec.Title,
				Found:     true,
				Text:      text,
				CharCount: len(text),
			})
		case errors.Is(err, ErrPageValidation):
			if e.logger != nil {
				e.logger.Error("section failed page validation",
					"key", spec.Key,
					"nominal_page", r.NominalPage,
					"error", err)
			}
			hardErrs = append(hardErrs, err)
			res.Outcomes = append(res.Outcomes, failedOutcome(spec, err))
		default:
			if e.logger != nil {
				e.logger.Warn("section header not found",
					"key", spec.Key,
					"nominal_page", r.NominalPage,
					"start_page", r.StartPage)
			}
			res.Outcomes = append(res.Outcomes, failedOutcome(spec, err))
		}
	}

	for _, o := range res.Outcomes {
		res.Summary.TotalSections++
		if o.Found {
			res.Summary.Successful++
			res.Summary.TotalCharacters += o.CharCount
		} else {
			res.Summary.Failed++
		}
	}

	return res, errors.Join(hardErrs...)
}

// resolveAll joins each Spec against the ToC entries: exact title match
// first, then normalized (case and accents folded, whitespace collapsed),
// then substring. Specs that never match stay nil.
func (e *Extractor) resolveAll(specs []Spec, entries []toc.Entry) []*Resolved {
	out := make([]*Resolved, len(specs))
	for i, s := range specs {
		entry, ok := resolveTitle(s.Title, entries)
		if !ok {
			continue
		}
		out[i] = &Resolved{
			Spec:        s,
			NominalPage: entry.NominalPage,
			StartPage:   e.mapper.PhysicalIndex(entry.NominalPage),
		}
	}
	return out
}

func resolveTitle(title string, entries []toc.Entry) (toc.Entry, bool) {
	for _, en := range entries {
		if en.Title == title {
			return en, true
		}
	}
	want := normalizeTitle(title)
	for _, en := range entries {
		if normalizeTitle(en.Title) == want {
			return en, true
		}
	}
	for _, en := range entries {
		have := normalizeTitle(en.Title)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return en, true
		}
	}
	return toc.Entry{}, false
}

// normalizeTitle lowercases, strips accents and collapses whitespace.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(foldRune(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// nextResolved returns the first section after index i that resolved against
// the ToC; its header is the stopping signal for section i.
func nextResolved(resolved []*Resolved, i int) *Resolved {
	for j := i + 1; j < len(resolved); j++ {
		if resolved[j] != nil {
			return resolved[j]
		}
	}
	return nil
}

// extract scans forward from the section's start page. It seeks the section's
// own header, then collects text until the next section's header appears or
// the next section's nominal page is reached; content past that point is out
// of scope rather than guessed at. The last section collects to the end of
// the document.
func (e *Extractor) extract(r, next *Resolved) (string, error) {
	start := r.StartPage
	if start < 0 {
		start = 0
	}
	if start >= len(e.pages) {
		return "", ErrHeaderNotFound
	}

	cutoff := len(e.pages)
	if next != nil {
		cutoff = next.StartPage
	}

	wantOcc := e.overrides[r.Title]
	if wantOcc < 1 {
		wantOcc = 1
	}

	var b strings.Builder
	collecting := false
	seen := 0

	for i := start; i < len(e.pages); i++ {
		page := e.pages[i]

		if !collecting {
			m, ok := pickOccurrence(e.matcher.Find(page, r.Title), &seen, wantOcc)
			if !ok {
				continue
			}
			if next != nil {
				if nm, ok := firstMatchAfter(e.matcher.FindNext(page, next.Title), m.End); ok {
					// Short section sharing its page with the next one.
					return e.finish(r, page[m.Start:nm.Start])
				}
			}
			b.WriteString(page[m.Start:])
			collecting = true
			continue
		}

		if next != nil {
			if i > cutoff {
				return e.finish(r, b.String())
			}
			if nm, ok := firstMatch(e.matcher.FindNext(page, next.Title)); ok {
				b.WriteString("\n")
				b.WriteString(page[:nm.Start])
				return e.finish(r, b.String())
			}
			if i >= cutoff {
				b.WriteString("\n")
				b.WriteString(page)
				return e.finish(r, b.String())
			}
		}

		b.WriteString("\n")
		b.WriteString(page)
	}

	if !collecting {
		return "", ErrHeaderNotFound
	}
	return e.finish(r, b.String())
}

// finish validates the assembled text against the expected nominal page
// before accepting it.
func (e *Extractor) finish(r *Resolved, text string) (string, error) {
	if err := e.policy.Validate(r.Key, r.Title, text, r.NominalPage); err != nil {
		return "", err
	}
	return text, nil
}

// pickOccurrence advances the per-section occurrence counter over the matches
// on one page and returns the wanted occurrence if reached.
func pickOccurrence(matches []Match, seen *int, want int) (Match, bool) {
	for _, m := range matches {
		*seen++
		if *seen == want {
			return m, true
		}
	}
	return Match{}, false
}

func firstMatch(matches []Match) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

func firstMatchAfter(matches []Match, pos int) (Match, bool) {
	for _, m := range matches {
		if m.Start >= pos {
			return m, true
		}
	}
	return Match{}, false
}

func failedOutcome(spec Spec, reason error) Outcome {
	return Outcome{Key: spec.Key, Title: spec.Title, Reason: reason.Error()}
}
