package driven

// LineProcessor applies one cleanup stage to the lines of generated text.
// Processors form a pipeline: Trimmer -> MarkerFilter -> StepAnchor -> LineCap.
type LineProcessor interface {
	// Process transforms the lines produced by the previous stage.
	Process(lines []string) []string

	// Name returns the processor name for logging/debugging.
	Name() string

	// Order returns the processor order in the pipeline (lower = earlier).
	Order() int
}

// LineProcessorPipeline chains line processors in order.
type LineProcessorPipeline interface {
	// Process splits text into lines, applies all processors in order and
	// joins the result with newlines.
	Process(text string) string

	// Add adds a processor to the pipeline.
	// Processors are sorted by Order() before processing.
	Add(processor LineProcessor)

	// List returns processor names in order.
	List() []string
}
