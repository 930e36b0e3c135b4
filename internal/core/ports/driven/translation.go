package driven

import "context"

// TranslationModel translates English text into the language it was loaded for
type TranslationModel interface {
	Translate(ctx context.Context, text string) (string, error)

	// Name returns the model identifier, e.g. Helsinki-NLP/opus-mt-en-hi
	Name() string
}

// TranslationModelLoader loads translation models by name.
// Loading may be slow; callers cache the result.
type TranslationModelLoader interface {
	Load(ctx context.Context, model string) (TranslationModel, error)
}
