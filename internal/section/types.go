// Package section carves a tariff document into the text belonging to each
// configured section, guided by the document's own table of contents. It
// operates purely on already-materialized per-page text: no I/O happens here,
// and a run owns all of its state, so separate documents can be processed
// concurrently by separate runs without coordination.
package section

// Spec names one section to extract and the storage key for its text.
// The ordered Spec list is supplied by configuration and is immutable for a
// given extraction run.
type Spec struct {
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Title string `json:"title" yaml:"title" mapstructure:"title"`
}

// Resolved is a Spec joined against the parsed table of contents and mapped
// to a physical start page. A Spec whose title never appears in the ToC has
// no Resolved form at all; absence is represented by a nil pointer, never a
// sentinel value.
type Resolved struct {
	Spec
	NominalPage int
	StartPage   int
}

// Outcome is the extraction result for one Spec. When Found is false the
// section either never resolved against the ToC or its header was never
// located; Text is empty and CharCount is zero in that case.
type Outcome struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Found     bool   `json:"found"`
	Text      string `json:"text,omitempty"`
	CharCount int    `json:"char_count"`
	Reason    string `json:"reason,omitempty"`
}

// Summary aggregates one run. Successful+Failed always equals TotalSections,
// and TotalCharacters is the sum of CharCount over found outcomes.
type Summary struct {
	TotalSections   int `json:"total_sections"`
	Successful      int `json:"successful_extractions"`
	Failed          int `json:"failed_extractions"`
	TotalCharacters int `json:"total_characters"`
}

// MethodTocGuidedHeader names the extraction method reported in Info.
const MethodTocGuidedHeader = "toc-guided-header"

// Info carries diagnostics about how the run located its sections.
type Info struct {
	Method      string `json:"method"`
	TocSections int    `json:"toc_sections"`
}

// Result is the complete output of one extraction run: one Outcome per Spec
// in configuration order, plus the aggregate summary and diagnostics.
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
	Summary  Summary   `json:"summary"`
	Info     Info      `json:"extraction_info"`
}

// Outcome returns the outcome stored under key, if any.
func (r *Result) Outcome(key string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Key == key {
			return o, true
		}
	}
	return Outcome{}, false
}
