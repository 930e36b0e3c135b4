package domain

import "time"

// FailureKind classifies why a generation did not produce text
type FailureKind string

const (
	FailureNone        FailureKind = ""             // Generation succeeded
	FailureTimeout     FailureKind = "timeout"      // Wall-clock budget exceeded, process torn down
	FailureNonZeroExit FailureKind = "nonzero_exit" // Process exited with a nonzero status
	FailureException   FailureKind = "exception"    // Process could not be started or waited on
)

// GenerationRequest is a single prompt for the language model
type GenerationRequest struct {
	Prompt  string
	Model   string
	Timeout time.Duration
}

// GenerationResult is either success (Failure == FailureNone) with Text,
// or a failure with a display-safe Detail.
type GenerationResult struct {
	Text     string
	Failure  FailureKind
	Detail   string
	Duration time.Duration
}

// OK reports whether the generation succeeded
func (r GenerationResult) OK() bool {
	return r.Failure == FailureNone
}

// GenerationSucceeded builds a success result
func GenerationSucceeded(text string, took time.Duration) GenerationResult {
	return GenerationResult{Text: text, Duration: took}
}

// GenerationFailed builds a failure result
func GenerationFailed(kind FailureKind, detail string, took time.Duration) GenerationResult {
	return GenerationResult{Failure: kind, Detail: detail, Duration: took}
}
