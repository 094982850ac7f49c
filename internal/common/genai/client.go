// Package genai calls a chat-completion gateway and returns the raw text completion.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"remedypedia/internal/common/config"
	commonhttp "remedypedia/internal/common/http"
	"remedypedia/internal/common/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrMissingAPIKey    = errors.New("genai: api key is not configured")
	ErrGenerationFailed = errors.New("genai: generation failed")
	ErrNoResponse       = errors.New("genai: no response from model")
)

// Options are the per-call generation settings.
type Options struct {
	Operation   string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Completer turns a prompt into a text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *commonhttp.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewClient(cfg config.GenAIConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		http:     commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// Complete sends one user message and returns the first choice's content.
// There is no retry.
func (c *Client) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	model := opts.Model
	if model == "" {
		model = c.model
	}

	ctx, span := otel.Tracer("remedypedia/genai").Start(ctx, "genai.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("genai.operation", opts.Operation),
		attribute.String("genai.model", model),
		attribute.Int("genai.prompt_length", len(prompt)),
	)

	start := time.Now()
	defer func() {
		metrics.GenAIRequestDuration.WithLabelValues(opts.Operation).Observe(time.Since(start).Seconds())
	}()

	req := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	resp, err := c.http.PostJSON(ctx, c.endpoint, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !resp.OK() {
		span.SetStatus(codes.Error, "non-success status")
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, resp.StatusCode, truncate(string(resp.Body), 512))
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		span.SetStatus(codes.Error, "undecodable body")
		return "", fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", ErrNoResponse
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
