package section

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Match is one occurrence of a section title in page text. Start and End are
// byte offsets into the original page string; Text is the on-page form of the
// matched span.
type Match struct {
	Start int
	End   int
	Text  string
}

// reflowVariants is the explicit table of known text-reflow substitutions:
// headers split across a line break by the PDF layout engine drop the space
// between words. New variants are added by extending this table, never by
// loosening the boundary check. Entries are lowercase; matching is
// case-insensitive anyway.
var reflowVariants = [][2]string{
	{"pre služby", "preslužby"},
	{"pre službu", "preslužbu"},
	{"a služby", "aslužby"},
	{"a zľavy", "azľavy"},
}

// Matcher decides whether a page's text contains a section header. Matching
// is case-insensitive and requires the title to appear as a standalone token
// span: a bare substring inside a longer sentence is rejected.
type Matcher struct {
	variants [][2]string
}

// NewMatcher creates a Matcher with the default reflow-variant table.
func NewMatcher() *Matcher {
	return &Matcher{variants: reflowVariants}
}

// Find returns every header occurrence of title in pageText, in page order.
// It tries the exact title first, then the reflow variants, then an
// accent-folded pass for extractors that mangle diacritics.
func (m *Matcher) Find(pageText, title string) []Match {
	for _, needle := range m.needles(title) {
		if occ := findOccurrences(pageText, needle, lowerRune); len(occ) > 0 {
			return occ
		}
	}
	for _, needle := range m.needles(title) {
		if occ := findOccurrences(pageText, needle, foldRune); len(occ) > 0 {
			return occ
		}
	}
	return nil
}

// Contains reports whether pageText carries title as a header.
func (m *Matcher) Contains(pageText, title string) bool {
	return len(m.Find(pageText, title)) > 0
}

// FindNext locates occurrences of the *next* section's header. ToC-sourced
// titles are rendered in full capitals as in-page headers, so only matches
// whose on-page text is all-uppercase count as the stopping boundary. This
// suppresses false positives where the same words occur in lowercase body
// prose; matching stays case-insensitive so the configured title's own case
// never matters.
func (m *Matcher) FindNext(pageText, title string) []Match {
	var filtered []Match
	for _, o := range m.Find(pageText, title) {
		if isUpperShape(o.Text) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// needles returns the title plus its reflow variants, variants first only
// when they actually apply.
func (m *Matcher) needles(title string) []string {
	needles := []string{title}
	lower := strings.ToLower(title)
	for _, v := range m.variants {
		if strings.Contains(lower, v[0]) {
			needles = append(needles, strings.ReplaceAll(lower, v[0], v[1]))
		}
		// Reflow can also be configured the other way around: the ToC
		// carries the glued form while the page carries the spaced one.
		if strings.Contains(lower, v[1]) {
			needles = append(needles, strings.ReplaceAll(lower, v[1], v[0]))
		}
	}
	return needles
}

// findOccurrences scans pageText for needle under the given per-rune
// normalization, verifying the 1-character windows immediately before and
// after each match are boundary characters. The window before a match may
// also be a digit: double-sided pages open with their two page numbers
// directly followed by the header.
func findOccurrences(pageText, needle string, normalize func(rune) rune) []Match {
	page := []rune(pageText)
	want := []rune(needle)
	for i, r := range want {
		want[i] = normalize(r)
	}
	if len(want) == 0 || len(want) > len(page) {
		return nil
	}

	// Byte offset of each rune so matches can slice the original string.
	offsets := make([]int, len(page)+1)
	for i, r := range page {
		offsets[i+1] = offsets[i] + len(string(r))
	}

	var matches []Match
	for i := 0; i+len(want) <= len(page); i++ {
		if !runesEqual(page[i:i+len(want)], want, normalize) {
			continue
		}
		if i > 0 && !isLeadingBoundary(page[i-1]) {
			continue
		}
		end := i + len(want)
		if end < len(page) && !unicode.IsSpace(page[end]) {
			continue
		}
		matches = append(matches, Match{
			Start: offsets[i],
			End:   offsets[end],
			Text:  pageText[offsets[i]:offsets[end]],
		})
	}
	return matches
}

func runesEqual(span, want []rune, normalize func(rune) rune) bool {
	for i := range want {
		if normalize(span[i]) != want[i] {
			return false
		}
	}
	return true
}

// isLeadingBoundary allows whitespace or a digit before a header. The digit
// case covers the "two page numbers then header" pattern at the top of a
// double-sided page.
func isLeadingBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsDigit(r)
}

func lowerRune(r rune) rune {
	return unicode.ToLower(r)
}

// foldRune lowercases and strips combining marks from a single rune, so
// accent variants introduced by the text extractor still line up 1:1 with the
// original rune positions.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r < 0x80 {
		return r
	}
	for _, d := range norm.NFD.String(string(r)) {
		if !unicode.Is(unicode.Mn, d) {
			return unicode.ToLower(d)
		}
	}
	return r
}

// isUpperShape reports whether s contains at least one letter and no
// lowercase letters.
func isUpperShape(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
