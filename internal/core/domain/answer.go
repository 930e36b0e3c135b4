package domain

// User-facing fallback texts of the question pipeline
const (
	MessageNoRelevantInfo       = "⚠ No relevant info found in manuals. Please consult emergency guides."
	MessageGenerationFailed     = "⚠ The AI could not generate an answer. Please consult Red Cross first aid basics."
	MessageRetrievalUnavailable = "⚠ The manuals could not be searched right now. Please consult Red Cross first aid basics."
)

// Question is an ephemeral first-aid query. It is never persisted.
type Question struct {
	Text     string `json:"question"`
	Language string `json:"language"` // display name or code, as sent by the client
}

// ChecklistRow is one structured step derived from an answer
type ChecklistRow struct {
	Action string `json:"Action"`
	HowTo  string `json:"How to do it"`
	Avoid  string `json:"What to avoid"`
}

// AnswerOutcome records which path of the question pipeline produced an answer
type AnswerOutcome string

const (
	OutcomeAnswered         AnswerOutcome = "answered"
	OutcomeBlocked          AnswerOutcome = "blocked"
	OutcomeNoContext        AnswerOutcome = "no_context"
	OutcomeGenerationFailed AnswerOutcome = "generation_failed"
	OutcomeRetrievalFailed  AnswerOutcome = "retrieval_failed"
)

// Answer is the response of the question pipeline.
// Checklist is never nil; an empty checklist means no structured extraction.
type Answer struct {
	Question   string         `json:"question"`
	Text       string         `json:"answer"`
	Checklist  []ChecklistRow `json:"checklist"`
	Language   string         `json:"language"`
	Blocked    bool           `json:"blocked"`
	Translated bool           `json:"translated"`
	Cached     bool           `json:"cached"`
	Outcome    AnswerOutcome  `json:"outcome"`
}

// Cacheable reports whether the answer came from a successful generation
func (a *Answer) Cacheable() bool {
	return a != nil && a.Outcome == OutcomeAnswered
}
