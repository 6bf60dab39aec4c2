package section

import (
	"errors"
	"fmt"
)

// Failure reasons recorded on outcomes. These are recovered locally: a single
// missing section never aborts extraction of the rest of the batch.
var (
	// ErrNotInToc means a configured title could not be matched against
	// any parsed ToC entry.
	ErrNotInToc = errors.New("section title not found in table of contents")

	// ErrHeaderNotFound means the title resolved against the ToC but its
	// header was never located in page text.
	ErrHeaderNotFound = errors.New("section header not found in page text")
)

// ErrPageValidation marks a hard per-section error: the extracted text's
// leading page numbers don't match the expected nominal page. Unlike a
// missing section this signals that the page-index mapping itself may be
// wrong for the whole document, so it is surfaced to the caller instead of
// being recorded as a mere failed section.
var ErrPageValidation = errors.New("extracted text does not start at the expected nominal page")

// ValidationError carries the details of a page-validation failure.
type ValidationError struct {
	Key      string
	Title    string
	Expected int
	Found    []int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("section %q (%s): expected nominal page %d, leading page tokens %v",
		e.Key, e.Title, e.Expected, e.Found)
}

func (e *ValidationError) Unwrap() error { return ErrPageValidation }
