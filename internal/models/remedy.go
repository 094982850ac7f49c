// internal/models/remedy.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Question types accepted from the model and the fallback set.
const (
	QuestionTypeCheckbox = "checkbox"
	QuestionTypeRadio    = "radio"
)

// Reserved clarification answer keys set by the search form.
const (
	AnswerKeyOriginalQuery      = "originalQuery"
	AnswerKeyAllergyDetails     = "allergyDetails"
	AnswerKeyAdditionalComments = "additionalComments"
)

// ClarificationQuestion is one follow-up question shown before remedy generation.
type ClarificationQuestion struct {
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// Remedy is a single suggested natural remedy.
type Remedy struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Warnings    string   `json:"warnings,omitempty"`
	Sources     []string `json:"sources,omitempty"`
}

// AncientRemedy is a historical herbal remedy entry.
type AncientRemedy struct {
	Name           string `json:"name"`
	Culture        string `json:"culture"`
	TraditionalUse string `json:"traditionalUse"`
	ModernFindings string `json:"modernFindings"`
}

// RemedyResponse is the payload returned by remedy generation.
type RemedyResponse struct {
	Summary         string          `json:"summary"`
	Remedies        []Remedy        `json:"remedies"`
	AncientRemedies []AncientRemedy `json:"ancientRemedies"`
}

// ExtractedInfo is the structured profile derived from clarification answers.
type ExtractedInfo struct {
	Allergies         []string `json:"allergies"`
	AgeGroup          string   `json:"ageGroup"`
	Duration          string   `json:"duration"`
	Symptoms          []string `json:"symptoms"`
	Treatments        []string `json:"treatments"`
	AdditionalDetails string   `json:"additionalDetails"`
	ConditionSpecific string   `json:"conditionSpecific"`
}

// NewExtractedInfo returns an ExtractedInfo with empty, non-nil lists.
func NewExtractedInfo() ExtractedInfo {
	return ExtractedInfo{
		Allergies:  []string{},
		Symptoms:   []string{},
		Treatments: []string{},
	}
}

// AnswerValue holds either a single answer or a list of checkbox answers.
type AnswerValue struct {
	Values []string
	List   bool
}

// Text returns the value as one string, list entries joined with ", ".
func (v AnswerValue) Text() string {
	return strings.Join(v.Values, ", ")
}

// IsBlank reports whether the value carries no non-whitespace text.
func (v AnswerValue) IsBlank() bool {
	return strings.TrimSpace(v.Text()) == ""
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.List {
		if v.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Values)
	}
	return json.Marshal(v.Text())
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = AnswerValue{}
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var raw []interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			if item == nil {
				continue
			}
			values = append(values, scalarText(item))
		}
		*v = AnswerValue{Values: values, List: true}
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := raw.(map[string]interface{}); ok {
		return fmt.Errorf("answer value must be a string or a list of strings")
	}
	*v = AnswerValue{Values: []string{scalarText(raw)}}
	return nil
}

func scalarText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// AnswerEntry is one key/value pair of ClarificationAnswers.
type AnswerEntry struct {
	Key   string
	Value AnswerValue
}

// ClarificationAnswers keeps answers in the order the client sent them.
type ClarificationAnswers []AnswerEntry

// NewAnswers builds ClarificationAnswers from alternating key/value pairs where
// each value is a string or []string.
func NewAnswers(pairs ...interface{}) ClarificationAnswers {
	answers := make(ClarificationAnswers, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		switch val := pairs[i+1].(type) {
		case []string:
			answers = append(answers, AnswerEntry{Key: key, Value: AnswerValue{Values: val, List: true}})
		case string:
			answers = append(answers, AnswerEntry{Key: key, Value: AnswerValue{Values: []string{val}}})
		default:
			answers = append(answers, AnswerEntry{Key: key, Value: AnswerValue{Values: []string{fmt.Sprint(val)}}})
		}
	}
	return answers
}

// Get returns the last value stored under key.
func (a ClarificationAnswers) Get(key string) (AnswerValue, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Key == key {
			return a[i].Value, true
		}
	}
	return AnswerValue{}, false
}

func (a ClarificationAnswers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token by token so key order survives.
func (a *ClarificationAnswers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("clarification answers must be a JSON object")
	}

	answers := ClarificationAnswers{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected answer key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("answer %q: %w", key, err)
		}
		var value AnswerValue
		if err := value.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("answer %q: %w", key, err)
		}
		answers = append(answers, AnswerEntry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = answers
	return nil
}
