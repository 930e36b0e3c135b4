package postprocessors

import (
	"regexp"
	"strings"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

// Trimmer trims every line and drops blank ones.
type Trimmer struct{}

// Verify interface compliance
var _ driven.LineProcessor = (*Trimmer)(nil)

// NewTrimmer creates a new trimmer.
func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

// Process trims lines and removes blanks.
func (t *Trimmer) Process(lines []string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// Name returns the processor name.
func (t *Trimmer) Name() string {
	return "trimmer"
}

// Order returns 0 - trimming runs first.
func (t *Trimmer) Order() int {
	return 0
}

// MarkerFilter drops lines that look like model reasoning or meta commentary.
// Matching is case-insensitive. A line is dropped when it starts with any
// prefix or contains any substring.
type MarkerFilter struct {
	prefixes   []string
	substrings []string
}

// Verify interface compliance
var _ driven.LineProcessor = (*MarkerFilter)(nil)

// NewMarkerFilter creates a filter. Pass nil substrings for a prefix-only filter.
func NewMarkerFilter(prefixes, substrings []string) *MarkerFilter {
	return &MarkerFilter{
		prefixes:   lowerAll(prefixes),
		substrings: lowerAll(substrings),
	}
}

// Process removes marker lines.
func (f *MarkerFilter) Process(lines []string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if !f.matches(strings.ToLower(strings.TrimSpace(line))) {
			result = append(result, line)
		}
	}
	return result
}

func (f *MarkerFilter) matches(lower string) bool {
	for _, p := range f.prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, s := range f.substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// Name returns the processor name.
func (f *MarkerFilter) Name() string {
	return "marker-filter"
}

// Order returns 10.
func (f *MarkerFilter) Order() int {
	return 10
}

// StepAnchor discards every line before the first numbered step.
// Text without a numbered step passes through unchanged.
type StepAnchor struct {
	pattern *regexp.Regexp
}

// Verify interface compliance
var _ driven.LineProcessor = (*StepAnchor)(nil)

// NewStepAnchor creates an anchor for the given step pattern.
func NewStepAnchor(pattern *regexp.Regexp) *StepAnchor {
	return &StepAnchor{pattern: pattern}
}

// Process drops the preamble before the first step.
func (a *StepAnchor) Process(lines []string) []string {
	for i, line := range lines {
		if a.pattern.MatchString(line) {
			return lines[i:]
		}
	}
	return lines
}

// Name returns the processor name.
func (a *StepAnchor) Name() string {
	return "step-anchor"
}

// Order returns 20 - anchoring runs after filtering so the output is stable.
func (a *StepAnchor) Order() int {
	return 20
}

// LineCap keeps at most max lines.
type LineCap struct {
	max int
}

// Verify interface compliance
var _ driven.LineProcessor = (*LineCap)(nil)

// NewLineCap creates a cap. max <= 0 disables it.
func NewLineCap(max int) *LineCap {
	return &LineCap{max: max}
}

// Process truncates lines.
func (c *LineCap) Process(lines []string) []string {
	if c.max > 0 && len(lines) > c.max {
		return lines[:c.max]
	}
	return lines
}

// Name returns the processor name.
func (c *LineCap) Name() string {
	return "line-cap"
}

// Order returns 30 - the cap runs last.
func (c *LineCap) Order() int {
	return 30
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
