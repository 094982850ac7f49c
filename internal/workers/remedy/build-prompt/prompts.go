// internal/workers/remedy/build-prompt/prompts.go
package buildprompt

import (
	"fmt"
	"strings"

	"remedypedia/internal/models"
)

// QuestionCount is the number of clarification questions the model must return.
const QuestionCount = 6

// QuestionTopics lists the clarification topics in the order they must appear.
var QuestionTopics = []string{
	"known allergies",
	"age group",
	"how long the symptoms have lasted",
	"accompanying symptoms",
	"treatments already tried",
	"a question specific to the condition",
}

// Questions builds the prompt asking for clarification questions about query.
func Questions(query string) string {
	var parts []string

	parts = append(parts, "You are a careful natural-remedy assistant helping a user describe a health concern.")
	parts = append(parts, fmt.Sprintf("\nUser concern: %s", strings.TrimSpace(query)))

	parts = append(parts, fmt.Sprintf("\nWrite exactly %d follow-up questions, in this order:", QuestionCount))
	for i, topic := range QuestionTopics {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, topic))
	}

	parts = append(parts, "\nRules:")
	parts = append(parts, `- Each question has a "title", a "type" of "checkbox" (several answers allowed) or "radio" (one answer), and 4 to 6 "options"`)
	parts = append(parts, `- The allergies question is a checkbox question and includes a "None" option`)
	parts = append(parts, "- Keep titles short and in plain language")
	parts = append(parts, "- Do not give medical advice in the questions")

	parts = append(parts, "\nReturn ONLY a JSON array with no text before or after it:")
	parts = append(parts, `[{"title": "...", "type": "checkbox", "options": ["...", "..."]}]`)

	return strings.Join(parts, "\n")
}

// Remedies builds the prompt asking for remedy suggestions for the interpreted
// condition and the extracted profile.
func Remedies(condition string, info models.ExtractedInfo) string {
	var parts []string

	parts = append(parts, "You are a careful natural-remedy assistant. Suggest safe, evidence-informed natural remedies.")
	parts = append(parts, fmt.Sprintf("\nCondition: %s", condition))

	parts = append(parts, "\nUser profile:")
	parts = append(parts, fmt.Sprintf("- Allergies: %s", listOrNone(info.Allergies)))
	parts = append(parts, fmt.Sprintf("- Age group: %s", valueOrUnknown(info.AgeGroup)))
	parts = append(parts, fmt.Sprintf("- Duration: %s", valueOrUnknown(info.Duration)))
	parts = append(parts, fmt.Sprintf("- Accompanying symptoms: %s", listOrNone(info.Symptoms)))
	parts = append(parts, fmt.Sprintf("- Treatments already tried: %s", listOrNone(info.Treatments)))
	parts = append(parts, fmt.Sprintf("- Condition details: %s", valueOrUnknown(info.ConditionSpecific)))
	parts = append(parts, fmt.Sprintf("- Additional comments: %s", valueOrUnknown(info.AdditionalDetails)))

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- Do not repeat the user's words verbatim; describe the condition in your own clinical terms")
	parts = append(parts, "- Exclude any remedy containing or derived from the listed allergens")
	parts = append(parts, "- Give dosing and usage appropriate for the age group")
	parts = append(parts, "- Do not suggest treatments the user has already tried")
	parts = append(parts, "- Include a warnings field for interactions, contraindications and when to see a doctor")
	parts = append(parts, "- Add 1 to 2 ancient remedies using only herbal or natural ingredients (teas, poultices, decoctions, oils, infusions)")

	parts = append(parts, "\nReturn ONLY a JSON object with no text before or after it, in this shape:")
	parts = append(parts, `{
  "summary": "...",
  "remedies": [{"name": "...", "description": "...", "usage": "...", "warnings": "...", "sources": ["..."]}],
  "ancientRemedies": [{"name": "...", "culture": "...", "traditionalUse": "...", "modernFindings": "..."}]
}`)

	return strings.Join(parts, "\n")
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none reported"
	}
	return strings.Join(values, ", ")
}

func valueOrUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not specified"
	}
	return v
}
