package driven

// AIServiceFactory creates the model-backed services from configuration
type AIServiceFactory interface {
	// CreateEmbeddingService creates the query embedding client
	CreateEmbeddingService() (EmbeddingService, error)

	// CreateTranslationLoader creates the translation model loader
	CreateTranslationLoader() (TranslationModelLoader, error)
}
