package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven/mocks"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type featureState struct {
	chunks   []string
	embedder *mocks.MockEmbeddingService
	gen      *mocks.MockGenerator

	answer  *domain.Answer
	results []domain.RationResult
	err     error
}

func initializeScenario(sc *godog.ScenarioContext) {
	s := &featureState{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*s = featureState{
			embedder: mocks.NewMockEmbeddingService(),
			gen:      mocks.NewMockGenerator("1. Stay calm."),
		}
		s.embedder.SetDimensions(16)
		return ctx, nil
	})

	sc.Step(`^the manuals contain "([^"]*)"$`, s.manualsContain)
	sc.Step(`^the model answers "([^"]*)"$`, s.modelAnswers)
	sc.Step(`^the model fails with "([^"]*)"$`, s.modelFails)
	sc.Step(`^I ask "([^"]*)" in "([^"]*)"$`, s.ask)
	sc.Step(`^the answer is the safety message$`, s.answerIsSafetyMessage)
	sc.Step(`^the answer is "([^"]*)"$`, s.answerIs)
	sc.Step(`^the checklist is empty$`, s.checklistEmpty)
	sc.Step(`^the checklist contains "([^"]*)"$`, s.checklistContains)
	sc.Step(`^the model is not called$`, s.modelNotCalled)

	sc.Step(`^I allocate (\d+) liters of water for (\d+) people over (\d+) days$`, s.allocateWater)
	sc.Step(`^I allocate (\d+) medicine units for (\d+) people over (\d+) days$`, s.allocateMedicine)
	sc.Step(`^the allocation for "([^"]*)" is ([\d.]+) per person per day$`, s.allocationIs)
	sc.Step(`^the status for "([^"]*)" is "([^"]*)"$`, s.statusIs)
	sc.Step(`^the request is rejected as invalid input$`, s.rejected)
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func (s *featureState) manualsContain(text string) error {
	s.chunks = append(s.chunks, text)
	return nil
}

func (s *featureState) modelAnswers(text string) error {
	s.gen.Text = unescape(text)
	return nil
}

func (s *featureState) modelFails(kind string) error {
	s.gen.GenerateFn = func(domain.GenerationRequest) domain.GenerationResult {
		return domain.GenerationFailed(domain.FailureKind(kind), "scenario failure", 0)
	}
	return nil
}

func (s *featureState) ask(question, language string) error {
	vectors, err := s.embedder.Embed(context.Background(), s.chunks)
	if err != nil {
		return err
	}
	idx, err := NewPassageIndex(&domain.IndexArtifact{Chunks: s.chunks, Embeddings: vectors}, s.embedder)
	if err != nil {
		return err
	}
	svc := NewFirstAidService(FirstAidConfig{
		Index:      idx,
		Translator: NewTranslator(mocks.NewMockTranslationLoader(), TranslatorConfig{}),
		Generator:  s.gen,
	})
	s.answer, s.err = svc.Ask(context.Background(), domain.Question{Text: question, Language: language})
	return s.err
}

func (s *featureState) answerIsSafetyMessage() error {
	if !s.answer.Blocked || s.answer.Text != domain.BlockedQueryMessage {
		return fmt.Errorf("expected blocked answer, got %+v", s.answer)
	}
	return nil
}

func (s *featureState) answerIs(text string) error {
	if want := unescape(text); s.answer.Text != want {
		return fmt.Errorf("expected answer %q, got %q", want, s.answer.Text)
	}
	return nil
}

func (s *featureState) checklistEmpty() error {
	if s.answer.Checklist == nil || len(s.answer.Checklist) != 0 {
		return fmt.Errorf("expected empty checklist, got %v", s.answer.Checklist)
	}
	return nil
}

func (s *featureState) checklistContains(action string) error {
	for _, row := range s.answer.Checklist {
		if row.Action == action {
			return nil
		}
	}
	return fmt.Errorf("checklist %v has no %q row", s.answer.Checklist, action)
}

func (s *featureState) modelNotCalled() error {
	if n := s.gen.Calls(); n != 0 {
		return fmt.Errorf("expected no model calls, got %d", n)
	}
	return nil
}

func (s *featureState) allocateWater(liters, people, days int) error {
	s.results, s.err = Allocate(domain.Resources{WaterLiters: domain.Float64(float64(liters))}, people, days)
	return nil
}

func (s *featureState) allocateMedicine(units, people, days int) error {
	s.results, s.err = Allocate(domain.Resources{MedicineUnits: domain.Int(units)}, people, days)
	return nil
}

func (s *featureState) find(resource string) (*domain.RationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.results {
		if s.results[i].Resource == resource {
			return &s.results[i], nil
		}
	}
	return nil, fmt.Errorf("no allocation for %q", resource)
}

func (s *featureState) allocationIs(resource string, value float64) error {
	r, err := s.find(resource)
	if err != nil {
		return err
	}
	if r.PerPersonPerDay == nil || *r.PerPersonPerDay != value {
		return fmt.Errorf("expected %v per person per day, got %v", value, r.PerPersonPerDay)
	}
	return nil
}

func (s *featureState) statusIs(resource, status string) error {
	r, err := s.find(resource)
	if err != nil {
		return err
	}
	if string(r.Status) != status {
		return fmt.Errorf("expected status %s, got %s", status, r.Status)
	}
	return nil
}

func (s *featureState) rejected() error {
	if !errors.Is(s.err, domain.ErrInvalidInput) {
		return fmt.Errorf("expected invalid input, got %v", s.err)
	}
	return nil
}
