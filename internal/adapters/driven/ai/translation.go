package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driven"
)

var (
	_ driven.TranslationModelLoader = (*TranslationLoader)(nil)
	_ driven.TranslationModel       = (*chatTranslationModel)(nil)
)

// TranslationLoader resolves translation models on an OpenAI-compatible
// server. Loading checks the model is served; translating is a chat
// completion against it.
type TranslationLoader struct {
	client *openai.Client
}

// NewTranslationLoader creates a loader for the server at baseURL
func NewTranslationLoader(apiKey, baseURL string) (*TranslationLoader, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" && baseURL == DefaultBaseURL {
		return nil, fmt.Errorf("API key is required for %s", DefaultBaseURL)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &TranslationLoader{client: openai.NewClientWithConfig(cfg)}, nil
}

// Load verifies the model exists on the server
func (l *TranslationLoader) Load(ctx context.Context, model string) (driven.TranslationModel, error) {
	if model == "" {
		return nil, fmt.Errorf("%w: empty model name", domain.ErrTranslationFailed)
	}
	if _, err := l.client.GetModel(ctx, model); err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", domain.ErrTranslationFailed, model, err)
	}
	return &chatTranslationModel{
		client: l.client,
		name:   model,
		target: targetLanguage(model),
	}, nil
}

type chatTranslationModel struct {
	client *openai.Client
	name   string
	target string
}

func (m *chatTranslationModel) Translate(ctx context.Context, text string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.name,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: m.instruction()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTranslationFailed, m.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s returned no choices", domain.ErrTranslationFailed, m.name)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (m *chatTranslationModel) Name() string {
	return m.name
}

func (m *chatTranslationModel) instruction() string {
	if m.target == "" {
		return "Translate the user's English text. Reply with the translation only."
	}
	return fmt.Sprintf("Translate the user's English text into %s. Reply with the translation only.",
		domain.LanguageDisplayName(m.target))
}

// targetLanguage reads the destination code from opus-mt style names
// ("Helsinki-NLP/opus-mt-en-hi" -> "hi").
func targetLanguage(model string) string {
	i := strings.LastIndex(model, "-")
	if i < 0 || i == len(model)-1 {
		return ""
	}
	return model[i+1:]
}
