package services

import (
	"strings"
	"sync"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/rules"
)

// ChecklistExtractor derives checklist rows from answer text by keyword presence.
// Rows follow the rule order; each rule contributes at most one row.
type ChecklistExtractor struct {
	rules []rules.ChecklistRule
}

// NewChecklistExtractor creates an extractor over the given rule table
func NewChecklistExtractor(r rules.ChecklistRules) *ChecklistExtractor {
	rows := make([]rules.ChecklistRule, len(r.Rows))
	for i, row := range r.Rows {
		triggers := make([]string, len(row.Triggers))
		for j, t := range row.Triggers {
			triggers[j] = strings.ToLower(t)
		}
		row.Triggers = triggers
		rows[i] = row
	}
	return &ChecklistExtractor{rules: rows}
}

// Extract returns the rows whose triggers occur in text. Never nil.
func (e *ChecklistExtractor) Extract(text string) []domain.ChecklistRow {
	lower := strings.ToLower(text)
	rows := make([]domain.ChecklistRow, 0)
	for _, r := range e.rules {
		if containsAny(lower, r.Triggers) {
			rows = append(rows, domain.ChecklistRow{
				Action: r.Action,
				HowTo:  r.HowTo,
				Avoid:  r.Avoid,
			})
		}
	}
	return rows
}

var defaultChecklist = sync.OnceValue(func() *ChecklistExtractor {
	return NewChecklistExtractor(rules.MustDefault().Checklist)
})

// ExtractChecklist runs the embedded checklist table over text
func ExtractChecklist(text string) []domain.ChecklistRow {
	return defaultChecklist().Extract(text)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
