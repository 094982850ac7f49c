// internal/workers/remedy/interpret-query/interpreter.go
package interpretquery

import "strings"

// DefaultCondition is returned when no keyword matches.
const DefaultCondition = "general wellness concerns"

// Rule maps a lower-case keyword to the clinical phrase used in prompts and summaries.
type Rule struct {
	Keyword string
	Phrase  string
}

// rules are evaluated in order; the first keyword contained in the query wins.
var rules = []Rule{
	{"insomnia", "sleep difficulties and insomnia"},
	{"sleep", "sleep difficulties and insomnia"},
	{"migraine", "migraines and recurring head pain"},
	{"headache", "headaches and head pain"},
	{"stress", "stress and nervous tension"},
	{"anxiety", "anxiety and restlessness"},
	{"sore throat", "sore throat and throat irritation"},
	{"throat", "sore throat and throat irritation"},
	{"cough", "coughing and respiratory irritation"},
	{"congestion", "nasal and sinus congestion"},
	{"cold", "common cold symptoms"},
	{"flu", "flu-like symptoms"},
	{"stomach", "stomach discomfort and indigestion"},
	{"digestion", "digestive issues"},
	{"bloating", "bloating and gas"},
	{"nausea", "nausea and queasiness"},
	{"acne", "acne and skin breakouts"},
	{"skin", "skin irritation and dryness"},
	{"joint", "joint pain and stiffness"},
	{"back", "back pain and muscle tension"},
	{"muscle", "muscle aches and soreness"},
	{"fatigue", "fatigue and low energy"},
	{"tired", "fatigue and low energy"},
	{"allerg", "seasonal allergies and sensitivities"},
}

// Interpret maps a free-text query to a clinical condition phrase.
func Interpret(query string) string {
	q := strings.ToLower(query)
	for _, r := range rules {
		if strings.Contains(q, r.Keyword) {
			return r.Phrase
		}
	}
	return DefaultCondition
}

// Table returns a copy of the keyword table in evaluation order.
func Table() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
