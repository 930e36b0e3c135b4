package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// DefaultContextChars bounds the manual excerpt placed in a prompt
const DefaultContextChars = 600

const answerPromptTemplate = `
You are a humanitarian survival assistant.
Use ONLY the following context from WHO/Red Cross manuals to answer.

⚠️ IMPORTANT:
- Do NOT include your reasoning or thinking steps in the response.
- Write only the final, user-friendly first aid instructions.
- Use simple, clear steps that a stressed person in the field can follow.

Context:
%s

User's question: %s

Answer in %s, in simple numbered steps:
`

const rationPromptTemplate = `
You are a humanitarian survival assistant.
The following resources are available for %d people over %d days:

%s

⚠️ IMPORTANT:
- If only food items are listed, estimate approximate calories yourself (e.g., rice, rotis, lentils).
- Always calculate and suggest **per-person-per-day portions**.
- Keep the output in ≤6 short numbered steps, clear and friendly.
- Use simple, practical words (for stressed civilians).
- If resources are not enough, clearly say so and advise prioritizing children, elderly, and injured.

Answer in %s.
`

// BuildAnswerPrompt grounds a question in a manual excerpt. Generation
// always happens in the working language; the answer is translated afterwards.
func BuildAnswerPrompt(context, question string) string {
	return fmt.Sprintf(answerPromptTemplate, context, question, domain.LanguageDisplayName(domain.WorkingLanguage))
}

// BuildContext joins retrieved passages and truncates to maxChars characters
func BuildContext(chunks []domain.Chunk, maxChars int) string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if t := strings.TrimSpace(c.Text); t != "" {
			texts = append(texts, c.Text)
		}
	}
	return truncateChars(strings.Join(texts, "\n\n"), maxChars)
}

// RationSummary lists the present resources, one per line, in the order
// water, food items, food kcal, medicine
func RationSummary(res domain.Resources) string {
	var lines []string
	if res.WaterLiters != nil {
		lines = append(lines, fmt.Sprintf("Water: %s liters total", formatQuantity(*res.WaterLiters)))
	}
	if res.FoodItems != nil {
		lines = append(lines, "Food items: "+*res.FoodItems)
	}
	if res.FoodKcal != nil {
		lines = append(lines, fmt.Sprintf("Food (calories): %s kcal total", formatQuantity(*res.FoodKcal)))
	}
	if res.MedicineUnits != nil {
		lines = append(lines, fmt.Sprintf("Medicine: %d units", *res.MedicineUnits))
	}
	return strings.Join(lines, "\n")
}

// BuildRationPrompt asks for a per-person-per-day explanation in language
func BuildRationPrompt(res domain.Resources, people, days int, language string) string {
	return fmt.Sprintf(rationPromptTemplate, people, days, RationSummary(res), language)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncateChars(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
