package postprocessors

import (
	"regexp"
	"sync"

	"github.com/firstresponse-ai/firstresponse-core/internal/rules"
)

// NewSanitizer builds the answer pipeline: trim, drop reasoning lines,
// anchor on the first numbered step, cap the length.
func NewSanitizer(r rules.ReasoningRules) *Pipeline {
	p := NewPipeline()
	p.Add(NewTrimmer())
	p.Add(NewMarkerFilter(r.Prefixes, r.Substrings))
	p.Add(NewStepAnchor(regexp.MustCompile(r.StepPattern)))
	p.Add(NewLineCap(r.MaxLines))
	return p
}

// NewExplanationCleaner builds the lighter pipeline used for rationing
// explanations: prefix markers only, no cap.
func NewExplanationCleaner(r rules.ReasoningRules) *Pipeline {
	p := NewPipeline()
	p.Add(NewTrimmer())
	p.Add(NewMarkerFilter(r.Prefixes, nil))
	p.Add(NewStepAnchor(regexp.MustCompile(r.StepPattern)))
	return p
}

var (
	defaultOnce      sync.Once
	defaultSanitizer *Pipeline
	defaultCleaner   *Pipeline
)

func defaults() {
	defaultOnce.Do(func() {
		r := rules.MustDefault().Reasoning
		defaultSanitizer = NewSanitizer(r)
		defaultCleaner = NewExplanationCleaner(r)
	})
}

// Sanitize cleans a generated answer with the embedded rule table.
// Sanitize(Sanitize(x)) == Sanitize(x) for any x.
func Sanitize(raw string) string {
	defaults()
	return defaultSanitizer.Process(raw)
}

// CleanExplanation cleans a rationing explanation with the embedded rule table.
func CleanExplanation(raw string) string {
	defaults()
	return defaultCleaner.Process(raw)
}
