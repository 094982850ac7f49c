// internal/workers/remedy/parse-response/parser.go
package parseresponse

import (
	"encoding/json"
	"fmt"
	"strings"

	"remedypedia/internal/common/validation"
	"remedypedia/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// Payload kinds.
const (
	KindQuestions = "questions"
	KindRemedies  = "remedies"
)

// Failure stages.
const (
	StageLocate = "locate"
	StageDecode = "decode"
	StageSchema = "schema"
)

// ParseFailure describes why a model completion could not be used.
type ParseFailure struct {
	Kind  string
	Stage string
	Err   error
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("parse %s: %s: %v", f.Kind, f.Stage, f.Err)
}

func (f *ParseFailure) Unwrap() error {
	return f.Err
}

// Result holds either a parsed value or the reason parsing failed.
type Result[T any] struct {
	Value   T
	Failure *ParseFailure
}

// OK reports whether Value is usable.
func (r Result[T]) OK() bool {
	return r.Failure == nil
}

// StripCodeFences removes a surrounding ``` or ```json fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractSpan returns the text from the first opening to the last closing byte.
func extractSpan(s string, opening, closing byte) (string, bool) {
	l := strings.IndexByte(s, opening)
	r := strings.LastIndexByte(s, closing)
	if l < 0 || r <= l {
		return "", false
	}
	return s[l : r+1], true
}

func parse[T any](raw, kind string, opening, closing byte, schema *gojsonschema.Schema) Result[T] {
	var zero T
	fail := func(stage string, err error) Result[T] {
		return Result[T]{Value: zero, Failure: &ParseFailure{Kind: kind, Stage: stage, Err: err}}
	}

	text := StripCodeFences(raw)
	span, ok := extractSpan(text, opening, closing)
	if !ok {
		return fail(StageLocate, fmt.Errorf("no %c...%c block in model output", opening, closing))
	}

	res, err := validation.ValidateBytes(schema, []byte(span))
	if err != nil {
		return fail(StageDecode, err)
	}
	if !res.Valid {
		return fail(StageSchema, res.Err())
	}

	var value T
	if err := json.Unmarshal([]byte(span), &value); err != nil {
		return fail(StageDecode, err)
	}
	return Result[T]{Value: value}
}

// ParseQuestions parses a completion into exactly six clarification questions.
func ParseQuestions(raw string) Result[[]models.ClarificationQuestion] {
	return parse[[]models.ClarificationQuestion](raw, KindQuestions, '[', ']', questionsSchema)
}

// ParseRemedies parses a completion into a remedy response.
func ParseRemedies(raw string) Result[models.RemedyResponse] {
	return parse[models.RemedyResponse](raw, KindRemedies, '{', '}', remediesSchema)
}

// QuestionsOrFallback returns the parsed questions, or the fixed fallback set
// together with the failure that caused it.
func QuestionsOrFallback(raw string) ([]models.ClarificationQuestion, *ParseFailure) {
	result := ParseQuestions(raw)
	if !result.OK() {
		return FallbackQuestions(), result.Failure
	}
	return result.Value, nil
}

// RemediesOrFallback returns the parsed remedies, or the deterministic fallback
// built from condition and info together with the failure that caused it.
func RemediesOrFallback(raw, condition string, info models.ExtractedInfo) (models.RemedyResponse, *ParseFailure) {
	result := ParseRemedies(raw)
	if !result.OK() {
		return FallbackRemedies(condition, info), result.Failure
	}
	resp := result.Value
	if resp.Remedies == nil {
		resp.Remedies = []models.Remedy{}
	}
	if resp.AncientRemedies == nil {
		resp.AncientRemedies = []models.AncientRemedy{}
	}
	return resp, nil
}
