// internal/workers/remedy/generate-clarification-questions/handler.go
package generatequestions

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
	parseresponse "remedypedia/internal/workers/remedy/parse-response"
)

const (
	TaskType = config.OperationGenerateQuestions
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

// Execute validates the query, asks the model for six clarification questions and
// falls back to the fixed set when the completion cannot be used.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	log := h.requestLogger(ctx)

	if !h.config.Enabled {
		metrics.RemedyRequests.WithLabelValues(TaskType, "disabled").Inc()
		return nil, errors.NewServiceUnavailableError("Question generation")
	}

	if input == nil || strings.TrimSpace(input.Query) == "" {
		metrics.RemedyRequests.WithLabelValues(TaskType, "invalid").Inc()
		return nil, errors.NewInputValidationError("query required", "")
	}

	log.Info("generating clarification questions", map[string]interface{}{
		"queryLength": len(input.Query),
	})

	raw, err := h.client.Complete(ctx, buildprompt.Questions(input.Query), genai.Options{
		Operation:   TaskType,
		Model:       h.config.Model,
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
	})
	if err != nil {
		metrics.RemedyRequests.WithLabelValues(TaskType, "error").Inc()
		return nil, h.upstreamError(log, err)
	}

	questions, failure := parseresponse.QuestionsOrFallback(raw)
	status := "success"
	if failure != nil {
		status = "fallback"
		metrics.RemedyFallbacks.WithLabelValues(metrics.FallbackQuestions).Inc()
		log.Warn("model output unusable, serving fallback questions", map[string]interface{}{
			"stage": failure.Stage,
			"error": errors.NewResponseParseError("questions", failure.Err),
		})
	}
	metrics.RemedyRequests.WithLabelValues(TaskType, status).Inc()

	log.Info("clarification questions generated", map[string]interface{}{
		"count":    len(questions),
		"fallback": failure != nil,
		"duration": time.Since(start).String(),
	})

	return &Output{Questions: questions}, nil
}

func (h *Handler) upstreamError(log logger.Logger, err error) error {
	log.Error("question generation failed", map[string]interface{}{
		"error": err,
	})
	switch {
	case stderrors.Is(err, genai.ErrMissingAPIKey):
		return errors.NewConfigurationError("AI service is not configured", err)
	case stderrors.Is(err, genai.ErrNoResponse):
		return errors.NewUpstreamNoResponseError("No response from AI", err)
	default:
		return errors.NewUpstreamError("Failed to generate questions", err)
	}
}

// requestLogger prefers the request-scoped logger set by the transport.
func (h *Handler) requestLogger(ctx context.Context) logger.Logger {
	if l := logger.FromContext(ctx, nil); l != nil {
		return l.With(map[string]interface{}{"operation": TaskType})
	}
	return h.logger
}
