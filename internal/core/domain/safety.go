package domain

// BlockedQueryMessage is returned for every query rejected by the safety gate
const BlockedQueryMessage = "⚠️ This query is blocked for safety reasons. Please ask only survival, health, or aid-related questions."

// SafetyVerdict is the outcome of the keyword safety gate
type SafetyVerdict struct {
	Safe    bool   `json:"safe"`
	Message string `json:"message,omitempty"`
	Term    string `json:"-"` // matched block-list term, for logging only
}

// SafeVerdict returns the verdict for a permitted query
func SafeVerdict() SafetyVerdict {
	return SafetyVerdict{Safe: true}
}

// BlockedVerdict returns the verdict for a query that matched term
func BlockedVerdict(term string) SafetyVerdict {
	return SafetyVerdict{Safe: false, Message: BlockedQueryMessage, Term: term}
}
