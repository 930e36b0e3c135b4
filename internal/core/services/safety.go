package services

import (
	"regexp"
	"strings"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/rules"
)

type blockedTerm struct {
	term    string
	pattern *regexp.Regexp
}

// SafetyGate classifies queries against a keyword block-list.
// A term matches only as a standalone word or phrase, never inside a longer word.
// Pure and safe for concurrent use.
type SafetyGate struct {
	terms   []blockedTerm
	message string
}

// NewSafetyGate compiles the block-list
func NewSafetyGate(r rules.SafetyRules) *SafetyGate {
	g := &SafetyGate{message: r.Message}
	if g.message == "" {
		g.message = domain.BlockedQueryMessage
	}
	for _, term := range r.Terms() {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		g.terms = append(g.terms, blockedTerm{
			term:    term,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	return g
}

// Check returns the verdict for query. An empty query is safe.
func (g *SafetyGate) Check(query string) domain.SafetyVerdict {
	q := strings.ToLower(query)
	for _, t := range g.terms {
		if t.pattern.MatchString(q) {
			return domain.SafetyVerdict{Safe: false, Message: g.message, Term: t.term}
		}
	}
	return domain.SafeVerdict()
}
