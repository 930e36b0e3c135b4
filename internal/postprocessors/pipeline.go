// Package postprocessors cleans model output into user-facing steps.
package postprocessors

import (
	"slices"
	"strings"
	"sync"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var _ driven.LineProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs line processors in ascending Order(). Processors with equal
// order keep the order they were added in.
type Pipeline struct {
	mu    sync.RWMutex
	steps []driven.LineProcessor
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add inserts processor after every step whose order is not greater. The
// slice is reallocated so a concurrent Process keeps its own snapshot.
func (p *Pipeline) Add(processor driven.LineProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	at := slices.IndexFunc(p.steps, func(s driven.LineProcessor) bool {
		return s.Order() > processor.Order()
	})
	if at < 0 {
		at = len(p.steps)
	}
	p.steps = slices.Insert(slices.Clip(p.steps), at, processor)
}

// Process normalises CRLF endings, then feeds the lines through every step
func (p *Pipeline) Process(text string) string {
	p.mu.RLock()
	steps := p.steps
	p.mu.RUnlock()

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, s := range steps {
		lines = s.Process(lines)
	}
	return strings.Join(lines, "\n")
}

func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name())
	}
	return names
}
