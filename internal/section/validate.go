package section

import (
	"regexp"
	"strconv"

	"github.com/mkravec/cennik/internal/pagemap"
)

// ValidationPolicy checks that assembled section text actually begins on the
// nominal page the ToC promised. The policy is selected by the detected page
// layout so the lenient tradeoff is visible and testable in isolation rather
// than special-cased inline.
type ValidationPolicy string

const (
	// StrictValidation requires the expected nominal page among the text's
	// leading page-number tokens. Used for double-sided documents, where a
	// mapping mistake silently yields wrong-but-present text.
	StrictValidation ValidationPolicy = "strict"

	// LenientValidation tolerates off-by-one page tokens and accepts long
	// extractions outright. Single-sided documents number their pages more
	// loosely, and a long body of text starting near the right page is a
	// better outcome than a hard failure.
	LenientValidation ValidationPolicy = "lenient"
)

// lenientMinChars is the length at which LenientValidation accepts text even
// without a matching leading page token.
const lenientMinChars = 200

// PolicyFor maps a layout mode to its validation policy.
func PolicyFor(mode pagemap.Mode) ValidationPolicy {
	if mode == pagemap.ModeSingleSided {
		return LenientValidation
	}
	return StrictValidation
}

var leadingIntPattern = regexp.MustCompile(`\d+`)

// Validate checks text against the expected nominal page. The first one or
// two integers found in the text must include the expected value (within a
// small tolerance under LenientValidation). A failure is returned as a
// *ValidationError wrapping ErrPageValidation.
func (p ValidationPolicy) Validate(key, title, text string, expected int) error {
	var found []int
	for _, tok := range leadingIntPattern.FindAllString(text, 2) {
		if n, err := strconv.Atoi(tok); err == nil {
			found = append(found, n)
		}
	}

	tolerance := 0
	if p == LenientValidation {
		tolerance = 1
	}
	for _, n := range found {
		if n >= expected-tolerance && n <= expected+tolerance {
			return nil
		}
	}
	if p == LenientValidation && len(text) >= lenientMinChars {
		return nil
	}
	return &ValidationError{Key: key, Title: title, Expected: expected, Found: found}
}
