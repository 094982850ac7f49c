// internal/workers/remedy/generate-remedies/handler.go
package generateremedies

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"remedypedia/internal/common/config"
	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/genai"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/common/metrics"
	buildprompt "remedypedia/internal/workers/remedy/build-prompt"
	extractanswers "remedypedia/internal/workers/remedy/extract-answers"
	interpretquery "remedypedia/internal/workers/remedy/interpret-query"
	parseresponse "remedypedia/internal/workers/remedy/parse-response"
)

const (
	TaskType = config.OperationGenerateRemedies
)

type HandlerOptions struct {
	AppConfig *config.Config
	Client    genai.Completer
	Logger    logger.Logger
}

type Handler struct {
	config *Config
	client genai.Completer
	logger logger.Logger
}

func NewHandler(opts HandlerOptions) *Handler {
	return &Handler{
		config: LoadConfig(opts.AppConfig),
		client: opts.Client,
		logger: opts.Logger.With(map[string]interface{}{
			"operation": TaskType,
		}),
	}
}

// Execute builds a remedy response for the query and its clarification answers.
// An unusable completion is replaced by the deterministic fallback.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	log := h.requestLogger(ctx)

	if !h.config.Enabled {
		metrics.RemedyRequests.WithLabelValues(TaskType, "disabled").Inc()
		return nil, errors.NewServiceUnavailableError("Remedy generation")
	}

	if input == nil || strings.TrimSpace(input.Query) == "" {
		metrics.RemedyRequests.WithLabelValues(TaskType, "invalid").Inc()
		return nil, errors.NewInputValidationError("query required", "")
	}

	info := extractanswers.Extract(input.ClarificationAnswers)
	condition := interpretquery.Interpret(input.Query)

	log.Info("generating remedies", map[string]interface{}{
		"condition":   condition,
		"answerCount": len(input.ClarificationAnswers),
		"allergies":   len(info.Allergies),
		"hasAgeGroup": info.AgeGroup != "",
	})

	raw, err := h.client.Complete(ctx, buildprompt.Remedies(condition, info), genai.Options{
		Operation:   TaskType,
		Model:       h.config.Model,
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
	})
	if err != nil {
		metrics.RemedyRequests.WithLabelValues(TaskType, "error").Inc()
		return nil, h.upstreamError(log, err)
	}

	resp, failure := parseresponse.RemediesOrFallback(raw, condition, info)
	status := "success"
	if failure != nil {
		status = "fallback"
		metrics.RemedyFallbacks.WithLabelValues(metrics.FallbackRemedies).Inc()
		log.Warn("model output unusable, serving fallback remedies", map[string]interface{}{
			"stage": failure.Stage,
			"error": errors.NewResponseParseError("remedies", failure.Err),
		})
	}
	metrics.RemedyRequests.WithLabelValues(TaskType, status).Inc()

	log.Info("remedies generated", map[string]interface{}{
		"remedies":        len(resp.Remedies),
		"ancientRemedies": len(resp.AncientRemedies),
		"fallback":        failure != nil,
		"duration":        time.Since(start).String(),
	})

	return &resp, nil
}

func (h *Handler) upstreamError(log logger.Logger, err error) error {
	log.Error("remedy generation failed", map[string]interface{}{
		"error": err,
	})
	switch {
	case stderrors.Is(err, genai.ErrMissingAPIKey):
		return errors.NewConfigurationError("AI service is not configured", err)
	case stderrors.Is(err, genai.ErrNoResponse):
		return errors.NewUpstreamNoResponseError("No response from AI", err)
	default:
		return errors.NewUpstreamError("Failed to generate remedies", err)
	}
}

// requestLogger prefers the request-scoped logger set by the transport.
func (h *Handler) requestLogger(ctx context.Context) logger.Logger {
	if l := logger.FromContext(ctx, nil); l != nil {
		return l.With(map[string]interface{}{"operation": TaskType})
	}
	return h.logger
}
