// internal/transport/rest/remedy.go
package rest

import (
	"context"
	"net/http"
	"time"

	"remedypedia/internal/common/config"
	"remedypedia/internal/common/errors"
	generatequestions "remedypedia/internal/workers/remedy/generate-clarification-questions"
	generateremedies "remedypedia/internal/workers/remedy/generate-remedies"

	"go.opentelemetry.io/otel/attribute"
)

// POST /generate-clarification-questions
func (s *server) generateQuestions(w http.ResponseWriter, r *http.Request) {
	if s.questions == nil || !config.IsOperationEnabled(s.cfg, config.OperationGenerateQuestions) {
		s.errors.WriteError(w, r, errors.NewServiceUnavailableError("Question generation"))
		return
	}

	var input generatequestions.Input
	if err := s.decodeBody(r, config.OperationGenerateQuestions, &input); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}

	ctx, done := s.trace(r, config.OperationGenerateQuestions)
	output, err := s.questions.Execute(ctx, &input)
	done(err)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// POST /generate-remedies. The response body is the RemedyResponse itself.
func (s *server) generateRemedies(w http.ResponseWriter, r *http.Request) {
	if s.remedies == nil || !config.IsOperationEnabled(s.cfg, config.OperationGenerateRemedies) {
		s.errors.WriteError(w, r, errors.NewServiceUnavailableError("Remedy generation"))
		return
	}

	var input generateremedies.Input
	if err := s.decodeBody(r, config.OperationGenerateRemedies, &input); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}

	ctx, done := s.trace(r, config.OperationGenerateRemedies)
	output, err := s.remedies.Execute(ctx, &input)
	done(err)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// trace detaches the generation call from client cancellation and wraps it in a span.
// The returned func ends the span and records the outcome.
func (s *server) trace(r *http.Request, operation string) (context.Context, func(error)) {
	ctx := context.WithoutCancel(r.Context())
	if s.obs == nil {
		return ctx, func(error) {}
	}

	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, "http."+operation,
		attribute.String("http.method", r.Method),
		attribute.String("http.route", r.URL.Path),
	)
	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = string(errors.Normalize(err).Code)
			span.RecordError(err)
		}
		s.obs.RecordRequest(ctx, operation, status)
		s.obs.RecordDuration(ctx, operation, time.Since(start))
		span.End()
	}
}
