package domain

import "strings"

// WorkingLanguage is the pipeline-internal language for retrieval and generation
const WorkingLanguage = "en"

// languageNames maps the display names offered by the client to language codes
var languageNames = map[string]string{
	"english": "en",
	"हिन्दी":   "hi",
	"العربية": "ar",
	"español": "es",
}

// ResolveLanguage turns a display name ("Español") or a code ("es") into a
// language code. Anything unrecognised resolves to the working language.
func ResolveLanguage(lang string) string {
	key := strings.ToLower(strings.TrimSpace(lang))
	if key == "" {
		return WorkingLanguage
	}
	if code, ok := languageNames[key]; ok {
		return code
	}
	for _, code := range languageNames {
		if code == key {
			return code
		}
	}
	return WorkingLanguage
}

var displayNames = map[string]string{
	"en": "English",
	"hi": "हिन्दी",
	"ar": "العربية",
	"es": "Español",
}

// LanguageDisplayName returns the display name for a code, or the code itself
func LanguageDisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}
