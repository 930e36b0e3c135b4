package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven/mocks"
)

const rawAnswer = `Thinking...
The user wants to stop bleeding.
Done thinking.

1. Apply firm pressure to stop bleeding.
2. Elevate the injured arm.
3. Monitor for signs of shock.`

type firstAidFixture struct {
	embedder *mocks.MockEmbeddingService
	gen      *mocks.MockGenerator
	loader   *mocks.MockTranslationLoader
	cache    *mocks.MockAnswerCache
	svc      *firstAidService
}

func newFirstAidFixture(t *testing.T, chunks []string, generated string) *firstAidFixture {
	t.Helper()
	f := &firstAidFixture{
		embedder: mocks.NewMockEmbeddingService(),
		gen:      mocks.NewMockGenerator(generated),
		loader:   mocks.NewMockTranslationLoader(),
		cache:    mocks.NewMockAnswerCache(),
	}
	f.embedder.SetDimensions(16)
	idx := buildIndex(t, f.embedder, chunks)

	f.svc = NewFirstAidService(FirstAidConfig{
		Index:      idx,
		Translator: NewTranslator(f.loader, TranslatorConfig{}),
		Generator:  f.gen,
		Cache:      f.cache,
		CacheTTL:   time.Hour,
		Model:      "gpt-oss:20b",
	}).(*firstAidService)
	return f
}

func TestFirstAid_Answered(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "How do I stop bleeding?", Language: "English"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeAnswered, answer.Outcome)
	assert.Equal(t, "1. Apply firm pressure to stop bleeding.\n2. Elevate the injured arm.\n3. Monitor for signs of shock.", answer.Text)
	assert.Equal(t, "English", answer.Language)
	assert.Equal(t, "How do I stop bleeding?", answer.Question)
	assert.False(t, answer.Blocked)
	assert.False(t, answer.Translated)
	assert.False(t, answer.Cached)

	actions := make([]string, 0, len(answer.Checklist))
	for _, r := range answer.Checklist {
		actions = append(actions, r.Action)
	}
	assert.Equal(t, []string{"Stop bleeding", "Elevate limb", "Monitor"}, actions)

	reqs := f.gen.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "gpt-oss:20b", reqs[0].Model)
	assert.Equal(t, DefaultGenerationTimeout, reqs[0].Timeout)
	assert.Contains(t, reqs[0].Prompt, "User's question: How do I stop bleeding?")
	assert.Contains(t, reqs[0].Prompt, "Context:\n")
	assert.Equal(t, 1, f.cache.Len())
}

func TestFirstAid_ContextIsTopPassageTruncated(t *testing.T) {
	long := strings.Repeat("a", 900)
	f := newFirstAidFixture(t, []string{long}, "1. ok")

	_, err := f.svc.Ask(context.Background(), domain.Question{Text: "q", Language: "en"})
	require.NoError(t, err)

	prompt := f.gen.Requests()[0].Prompt
	assert.Contains(t, prompt, strings.Repeat("a", 600)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("a", 601))
}

func TestFirstAid_BlockedRegardlessOfLanguage(t *testing.T) {
	for _, lang := range []string{"English", "हिन्दी", "العربية", "Español", "xx", ""} {
		t.Run(lang, func(t *testing.T) {
			f := newFirstAidFixture(t, manualChunks, rawAnswer)

			answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "how to make a bomb", Language: lang})
			require.NoError(t, err)

			assert.True(t, answer.Blocked)
			assert.Equal(t, domain.OutcomeBlocked, answer.Outcome)
			assert.Equal(t, domain.BlockedQueryMessage, answer.Text)
			assert.NotNil(t, answer.Checklist)
			assert.Empty(t, answer.Checklist)
			assert.Equal(t, lang, answer.Language)
			assert.Equal(t, 0, f.gen.Calls())
			assert.Equal(t, 0, f.embedder.QueryCalls())
		})
	}
}

func TestFirstAid_EmptyIndex(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)
	idx, err := NewPassageIndex(&domain.IndexArtifact{}, f.embedder)
	require.NoError(t, err)
	f.svc.index = idx

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageNoRelevantInfo, answer.Text)
	assert.Equal(t, domain.OutcomeNoContext, answer.Outcome)
	assert.Empty(t, answer.Checklist)
	assert.Equal(t, 0, f.gen.Calls())
}

func TestFirstAid_BlankPassage(t *testing.T) {
	f := newFirstAidFixture(t, []string{"   "}, rawAnswer)

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageNoRelevantInfo, answer.Text)
}

func TestFirstAid_GenerationFailures(t *testing.T) {
	kinds := []domain.FailureKind{domain.FailureTimeout, domain.FailureNonZeroExit, domain.FailureException}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			f := newFirstAidFixture(t, manualChunks, "")
			f.gen.GenerateFn = func(domain.GenerationRequest) domain.GenerationResult {
				return domain.GenerationFailed(kind, "model exploded", time.Second)
			}

			answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "Español"})
			require.NoError(t, err)
			assert.Equal(t, domain.MessageGenerationFailed, answer.Text)
			assert.Equal(t, domain.OutcomeGenerationFailed, answer.Outcome)
			assert.Empty(t, answer.Checklist)
			assert.Equal(t, 0, f.cache.Len())
		})
	}
}

func TestFirstAid_OnlyReasoningIsFailure(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, "Thinking...\nWe must answer")

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageGenerationFailed, answer.Text)
}

func TestFirstAid_TranslatesAnswer(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, "1. Elevate the leg")

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "¿Cómo detengo una hemorragia?", Language: "Español"})
	require.NoError(t, err)

	assert.True(t, answer.Translated)
	assert.Equal(t, "[Helsinki-NLP/opus-mt-en-es] 1. Elevate the leg", answer.Text)
	assert.Equal(t, "Español", answer.Language)
	require.Len(t, answer.Checklist, 1)
	assert.Equal(t, "Elevate limb", answer.Checklist[0].Action)
	assert.Equal(t, 1, f.loader.Loads("Helsinki-NLP/opus-mt-en-es"))
}

func TestFirstAid_TranslationFailureFallsBack(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, "1. Elevate the leg")
	f.loader.LoadErr = errors.New("no model host")

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "leg injury", Language: "hi"})
	require.NoError(t, err)

	assert.False(t, answer.Translated)
	assert.Equal(t, domain.OutcomeAnswered, answer.Outcome)
	assert.Equal(t, "1. Elevate the leg", answer.Text)
}

func TestFirstAid_IntegrityFaultPropagates(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)
	f.embedder.SetQueryDimensions(3)

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.Nil(t, answer)
}

func TestFirstAid_EmbeddingOutageFallsBack(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)
	f.embedder.SetFailNext(domain.ErrServiceUnavailable)

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageRetrievalUnavailable, answer.Text)
	assert.Equal(t, domain.OutcomeRetrievalFailed, answer.Outcome)
}

func TestFirstAid_CacheHit(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)

	first, err := f.svc.Ask(context.Background(), domain.Question{Text: "How do I stop bleeding?", Language: "English"})
	require.NoError(t, err)

	second, err := f.svc.Ask(context.Background(), domain.Question{Text: "how do i stop   bleeding?", Language: "en"})
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, "how do i stop   bleeding?", second.Question)
	assert.Equal(t, "en", second.Language)
	assert.Equal(t, 1, f.gen.Calls())
}

func TestFirstAid_CacheErrorsAreIgnored(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)
	f.cache.GetErr = errors.New("redis down")
	f.cache.SetErr = errors.New("redis down")

	answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAnswered, answer.Outcome)
}

func TestFirstAid_WithoutCache(t *testing.T) {
	f := newFirstAidFixture(t, manualChunks, rawAnswer)
	f.svc.cache = nil

	for i := 0; i < 2; i++ {
		answer, err := f.svc.Ask(context.Background(), domain.Question{Text: "burns", Language: "English"})
		require.NoError(t, err)
		assert.False(t, answer.Cached)
	}
	assert.Equal(t, 2, f.gen.Calls())
}
