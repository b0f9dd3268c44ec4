package prompt

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Directives appended around every dream description. Labels are stored in the
// vocabulary lower-cased and rendered through the caser so the output casing
// stays uniform.
var directives = []struct {
	label  string
	detail string
}{
	{"style", "Cinematic, dreamlike, and motivational."},
	{"camera", "Smooth, professional camera movements with dynamic angles."},
	{"atmosphere", "Warm, inspiring lighting with vibrant colors."},
	{"duration", "15-30 seconds loop-friendly sequence."},
	{"quality", "High-definition, professional cinematography."},
}

// Enricher expands a raw dream description into a structured cinematic
// generation prompt. It is a pure function of its input: the same title always
// yields the same prompt, so re-running it on every edit carries no drift.
type Enricher struct {
	titler cases.Caser
}

// NewEnricher constructs the deterministic enricher.
func NewEnricher() *Enricher {
	return &Enricher{titler: cases.Title(language.AmericanEnglish)}
}

// Enrich wraps the user's description in fixed stylistic directives. The
// original text is preserved verbatim inside the prompt.
func (e *Enricher) Enrich(title string) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Create a cinematic, inspirational video showing: %s.", strings.TrimSpace(title))
	for _, d := range directives {
		fmt.Fprintf(sb, "\n%s: %s", e.titler.String(d.label), d.detail)
	}
	return sb.String()
}
