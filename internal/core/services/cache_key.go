package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gowebpki/jcs"
)

// CacheKey derives the answer cache key from the canonical JSON (RFC 8785)
// form of the normalised question, resolved language and model.
func CacheKey(question, lang, model string) (string, error) {
	raw, err := json.Marshal(map[string]string{
		"question": normaliseQuestion(question),
		"language": lang,
		"model":    model,
	})
	if err != nil {
		return "", fmt.Errorf("marshal cache key: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize cache key: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return "answer:" + hex.EncodeToString(sum[:]), nil
}

func normaliseQuestion(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
