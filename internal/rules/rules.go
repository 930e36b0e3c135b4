// Package rules holds the keyword tables behind the safety gate, the
// reasoning-line filter and the checklist extractor. The tables ship
// embedded and may be overridden per file from a directory.
package rules

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/kaptinlin/jsonschema"
)

//go:embed data/*.json
var embedded embed.FS

// ErrInvalidRules indicates a rule table failed schema validation or could not be parsed
var ErrInvalidRules = errors.New("invalid rule table")

// Table names
const (
	TableSafety    = "safety"
	TableReasoning = "reasoning"
	TableChecklist = "checklist"
)

// SafetyCategory groups block-list terms
type SafetyCategory struct {
	Name  string   `json:"name"`
	Terms []string `json:"terms"`
}

// SafetyRules is the safety gate block-list
type SafetyRules struct {
	Message    string           `json:"message"`
	Categories []SafetyCategory `json:"categories"`
}

// Terms returns every term across categories in table order
func (s SafetyRules) Terms() []string {
	var terms []string
	for _, c := range s.Categories {
		terms = append(terms, c.Terms...)
	}
	return terms
}

// ReasoningRules drives the answer line filter
type ReasoningRules struct {
	Prefixes    []string `json:"prefixes"`
	Substrings  []string `json:"substrings"`
	StepPattern string   `json:"step_pattern"`
	MaxLines    int      `json:"max_lines"`
}

// ChecklistRule appends one row when any trigger occurs in the answer
type ChecklistRule struct {
	Topic    string   `json:"topic"`
	Triggers []string `json:"triggers"`
	Action   string   `json:"action"`
	HowTo    string   `json:"how_to"`
	Avoid    string   `json:"avoid"`
}

// ChecklistRules is the ordered list of checklist triggers
type ChecklistRules struct {
	Rows []ChecklistRule `json:"rows"`
}

// Set is a complete, validated collection of rule tables
type Set struct {
	Safety    SafetyRules
	Reasoning ReasoningRules
	Checklist ChecklistRules

	// Sources maps each table name to where it was read from
	Sources map[string]string
}

// Default returns the embedded tables.
func Default() (*Set, error) {
	return Load("")
}

// MustDefault returns the embedded tables and panics if they are invalid.
// The embedded tables are covered by tests, so this only fails on a broken build.
func MustDefault() *Set {
	set, err := Default()
	if err != nil {
		panic(err)
	}
	return set
}

// Load reads the tables, preferring <dir>/<table>.json over the embedded
// copy when dir is set and the file exists. Every table is validated against
// its embedded schema.
func Load(dir string) (*Set, error) {
	set := &Set{Sources: make(map[string]string, 3)}

	targets := []struct {
		name string
		dst  any
	}{
		{TableSafety, &set.Safety},
		{TableReasoning, &set.Reasoning},
		{TableChecklist, &set.Checklist},
	}

	for _, t := range targets {
		data, source, err := readTable(dir, t.name)
		if err != nil {
			return nil, err
		}
		if err := validate(t.name, data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, t.dst); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, t.name, err)
		}
		set.Sources[t.name] = source
	}

	if _, err := regexp.Compile(set.Reasoning.StepPattern); err != nil {
		return nil, fmt.Errorf("%w: reasoning step_pattern: %v", ErrInvalidRules, err)
	}

	return set, nil
}

func readTable(dir, name string) ([]byte, string, error) {
	file := name + ".json"
	if dir != "" {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("read rule table %s: %w", path, err)
		}
	}

	data, err := embedded.ReadFile("data/" + file)
	if err != nil {
		return nil, "", fmt.Errorf("read embedded rule table %s: %w", file, err)
	}
	return data, "embedded", nil
}

func validate(name string, data []byte) error {
	schemaData, err := embedded.ReadFile("data/" + name + ".schema.json")
	if err != nil {
		return fmt.Errorf("read schema for %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(schemaData)
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", name, err)
	}
	result := schema.ValidateJSON(data)
	if !result.IsValid() {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRules, name, result.Errors)
	}
	return nil
}
