// Package pagemap maps between the nominal page numbers printed in a tariff
// document (and used by its table of contents) and the physical indices of
// the extracted page-text sequence. Price-list PDFs in this domain are often
// typeset with two logical pages per physical sheet from page 4 onward, while
// page 1 (cover) and page 2 (ToC) are always single logical pages.
package pagemap

import (
	"strconv"
	"strings"
)

// Mode describes how nominal pages map onto physical pages for one document.
// It is a document-level property: detected once per extraction run and
// reused for every section in that run.
type Mode string

const (
	// ModeSingleSided maps nominal page n to physical index n-1.
	ModeSingleSided Mode = "single_sided"
	// ModeDoubleSided maps two nominal pages per physical sheet from
	// nominal page 4 onward, with pages 1 and 2 fixed to indices 0 and 1.
	ModeDoubleSided Mode = "double_sided"
)

// probeStart and probeEnd bound the nominal pages sampled during layout
// detection. Pages 1-3 are excluded because their mapping is identical (or
// near-identical) under both hypotheses.
const (
	probeStart = 4
	probeEnd   = 6
)

// Mapper converts between nominal pages and physical indices under a fixed,
// already-detected Mode.
type Mapper struct {
	mode Mode
}

// NewMapper creates a Mapper for a known mode.
func NewMapper(mode Mode) *Mapper {
	return &Mapper{mode: mode}
}

// Detect inspects the document's pages and picks the layout mode. For each
// probed nominal page it computes the candidate physical index under both
// hypotheses and checks whether that page's text carries the nominal page
// number as a standalone token, accumulating a score per hypothesis.
//
// Ties and extraction failures fall back to double-sided: guessing
// double-sided on a single-sided document only skips content, while the
// opposite mistake silently loses it.
func Detect(pages []string) Mode {
	var single, double int
	for n := probeStart; n <= probeEnd; n++ {
		if pageHasToken(pages, physicalIndex(n, ModeSingleSided), n) {
			single++
		}
		if pageHasToken(pages, physicalIndex(n, ModeDoubleSided), n) {
			double++
		}
	}
	if single > double {
		return ModeSingleSided
	}
	return ModeDoubleSided
}

// DetectMapper runs Detect and returns a Mapper caching the result.
func DetectMapper(pages []string) *Mapper {
	return NewMapper(Detect(pages))
}

// Mode returns the mode this Mapper was built with.
func (m *Mapper) Mode() Mode {
	return m.mode
}

// PhysicalIndex converts a nominal page to a zero-based physical index.
func (m *Mapper) PhysicalIndex(nominal int) int {
	return physicalIndex(nominal, m.mode)
}

// NominalPage converts a physical index back to the nominal page printed on
// it. In double-sided mode a sheet carries two nominal pages; the first of
// the pair is returned.
func (m *Mapper) NominalPage(physical int) int {
	if m.mode == ModeSingleSided {
		return physical + 1
	}
	switch physical {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return (physical-2)*2 + 4
	}
}

func physicalIndex(nominal int, mode Mode) int {
	if mode == ModeSingleSided {
		return nominal - 1
	}
	switch nominal {
	case 1:
		return 0
	case 2, 3:
		// Page 3, when present, overflows the ToC sheet.
		return 1
	default:
		return (nominal-4)/2 + 2
	}
}

// pageHasToken reports whether pages[idx] contains the decimal rendering of
// n as a standalone whitespace-delimited token.
func pageHasToken(pages []string, idx, n int) bool {
	if idx < 0 || idx >= len(pages) {
		return false
	}
	want := strconv.Itoa(n)
	for _, tok := range strings.Fields(pages[idx]) {
		if tok == want {
			return true
		}
	}
	return false
}
