// Package toc parses the table-of-contents page of a tariff document into
// ordered (title, nominal page) entries. The parser is deliberately tolerant:
// PDF text layers deliver the ToC either as one long text run or as many short
// fragments split on dot-leaders, and the same title may legitimately appear
// on two different pages. Disambiguation of duplicates is the section
// resolver's job, not the parser's.
package toc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Entry is a single parsed table-of-contents row.
type Entry struct {
	Title       string `json:"title"`
	NominalPage int    `json:"nominal_page"`
}

// fragmentJoinThreshold is the number of non-empty lines above which the raw
// ToC text is treated as dot-leader fragments and joined into a single line.
const fragmentJoinThreshold = 10

// titlePatterns caches compiled per-title patterns process-wide. Patterns are
// pure functions of the configured title, so the cache is shared across runs.
var titlePatterns sync.Map

// titlePattern returns the direct-match pattern for a configured title:
// the escaped title literal, filler (spaces, dots, leader glyphs), then a run
// of digits captured as the nominal page.
func titlePattern(title string) *regexp.Regexp {
	if v, ok := titlePatterns.Load(title); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(title) + `[\s.·…]*?(\d+)`)
	titlePatterns.Store(title, re)
	return re
}

// dotLeaderPattern matches "<title> <two or more dots/spaces> <digits>" at
// the end of a line.
var dotLeaderPattern = regexp.MustCompile(`^(.*?\S)[. ]{2,}(\d+)\s*$`)

// trailingDigitsPattern is the last-resort pattern: non-digit text followed
// by digits at the end of a line.
var trailingDigitsPattern = regexp.MustCompile(`^(\D+?)\s*(\d+)\s*$`)

// Parser converts raw ToC text into entries. The configured section titles
// drive the first (and most reliable) matching strategy; generic patterns
// pick up rows the configuration does not know about so that diagnostics can
// report how many entries the ToC actually carried.
type Parser struct {
	titles     []string
	strategies []strategy
}

// strategy is one step of the matching cascade. Each step reports the
// entries it recognized on a candidate line; the cascade stops at the first
// step that recognizes anything.
type strategy struct {
	name  string
	apply func(line string) []Entry
}

// NewParser creates a Parser for the given configured titles, in document
// order. Titles may be nil; the generic strategies still apply.
func NewParser(titles []string) *Parser {
	p := &Parser{titles: titles}
	p.strategies = []strategy{
		{name: "direct-title", apply: p.matchDirectTitles},
		{name: "dot-leader", apply: matchDotLeader},
		{name: "trailing-digits", apply: matchTrailingDigits},
	}
	return p
}

// Parse extracts ordered entries from raw ToC text. An unparseable ToC yields
// an empty slice, never an error: callers treat "no entries" as "no sections
// resolvable" and report each configured section as failed.
func (p *Parser) Parse(raw string) []Entry {
	lines := splitCandidateLines(raw)

	var entries []Entry
	for _, line := range lines {
		for _, s := range p.strategies {
			found := s.apply(line)
			if len(found) == 0 {
				continue
			}
			entries = append(entries, found...)
			break
		}
	}

	// Duplicates are preserved on purpose; order by nominal page so the
	// resolver sees occurrences in document order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NominalPage < entries[j].NominalPage
	})
	return entries
}

// splitCandidateLines breaks raw ToC text into candidate lines. When the text
// extractor split the ToC on dot-leaders the result is many short fragments;
// those are joined back into one line so title+page pairs line up again.
func splitCandidateLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > fragmentJoinThreshold {
		return []string{strings.Join(lines, " ")}
	}
	return lines
}

// matchDirectTitles applies the per-title patterns for every configured
// title, catching all occurrences so duplicated headers survive parsing.
func (p *Parser) matchDirectTitles(line string) []Entry {
	var entries []Entry
	for _, title := range p.titles {
		re := titlePattern(title)
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			if e, ok := newEntry(title, m[1]); ok {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

func matchDotLeader(line string) []Entry {
	m := dotLeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	e, ok := newEntry(m[1], m[2])
	if !ok {
		return nil
	}
	return []Entry{e}
}

func matchTrailingDigits(line string) []Entry {
	m := trailingDigitsPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	e, ok := newEntry(m[1], m[2])
	if !ok {
		return nil
	}
	return []Entry{e}
}

// newEntry validates a candidate row: the page must parse as a positive
// integer and the title must be non-empty once trailing dots and whitespace
// are trimmed.
func newEntry(title, page string) (Entry, bool) {
	n, err := strconv.Atoi(page)
	if err != nil || n <= 0 {
		return Entry{}, false
	}
	cleaned := strings.TrimRight(strings.TrimSpace(title), ". \t·…")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return Entry{}, false
	}
	return Entry{Title: cleaned, NominalPage: n}, true
}
