// internal/workers/remedy/generate-clarification-questions/handler_test.go
package generatequestions

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"remedypedia/internal/common/config"
	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/genai"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/models"
	parseresponse "remedypedia/internal/workers/remedy/parse-response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ==========================
// Test Doubles
// ==========================

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string, opts genai.Options) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T, client genai.Completer) *Handler {
	t.Helper()
	appCfg := &config.Config{
		Operations: map[string]config.OperationConfig{
			TaskType: {Enabled: true, Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 1000},
		},
	}
	return NewHandler(HandlerOptions{
		AppConfig: appCfg,
		Client:    client,
		Logger:    logger.NewTestLogger(t),
	})
}

func sixQuestions() string {
	questions := make([]models.ClarificationQuestion, 6)
	for i := range questions {
		questions[i] = models.ClarificationQuestion{
			Title:   fmt.Sprintf("Model question %d", i+1),
			Type:    models.QuestionTypeCheckbox,
			Options: []string{"One", "Two", "Three", "Four"},
		}
	}
	data, _ := json.Marshal(questions)
	return string(data)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	client := new(MockCompleter)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "User concern: headache")
	}), genai.Options{Operation: TaskType, Model: "gpt-4o-mini", Temperature: 0.7, MaxTokens: 1000}).
		Return("```json\n"+sixQuestions()+"\n```", nil).Once()

	output, err := createTestHandler(t, client).Execute(context.Background(), &Input{Query: "headache"})

	require.NoError(t, err)
	require.Len(t, output.Questions, 6)
	assert.Equal(t, "Model question 1", output.Questions[0].Title)
	client.AssertExpectations(t)
}

func TestHandler_Execute_Disabled(t *testing.T) {
	client := new(MockCompleter)
	appCfg := &config.Config{
		Operations: map[string]config.OperationConfig{
			TaskType: {Enabled: false},
		},
	}
	h := NewHandler(HandlerOptions{AppConfig: appCfg, Client: client, Logger: logger.NewTestLogger(t)})

	output, err := h.Execute(context.Background(), &Input{Query: "headache"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
	assert.Contains(t, err.Error(), "Question generation")
	client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Execute_FallbackLogsParseError(t *testing.T) {
	client := new(MockCompleter)
	client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("not json at all", nil).Once()

	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHandler(HandlerOptions{
		AppConfig: &config.Config{},
		Client:    client,
		Logger:    logger.NewZapAdapter(zap.New(core)),
	})

	_, err := h.Execute(context.Background(), &Input{Query: "headache"})
	require.NoError(t, err)

	entries := logs.FilterMessageSnippet("fallback").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Contains(t, fields["error"], string(errors.ErrCodeResponseParseFailed))
	assert.Contains(t, fields["error"], "Model response for questions could not be parsed")
	assert.NotEmpty(t, fields["stage"])
}

func TestHandler_Execute_Fallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "I'm sorry, I can only answer in prose."},
		{name: "five questions", raw: `[{"title":"a","type":"radio","options":["x"]},{"title":"a","type":"radio","options":["x"]},{"title":"a","type":"radio","options":["x"]},{"title":"a","type":"radio","options":["x"]},{"title":"a","type":"radio","options":["x"]}]`},
		{name: "object instead of array", raw: `{"questions": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockCompleter)
			client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(tt.raw, nil).Once()

			output, err := createTestHandler(t, client).Execute(context.Background(), &Input{Query: "cough"})

			require.NoError(t, err)
			assert.Equal(t, parseresponse.FallbackQuestions(), output.Questions)
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_QueryRequired(t *testing.T) {
	for _, input := range []*Input{nil, {Query: ""}, {Query: "   \n\t"}} {
		client := new(MockCompleter)

		output, err := createTestHandler(t, client).Execute(context.Background(), input)

		assert.Nil(t, output)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInputValidationFailed))
		assert.Equal(t, "query required", errors.Normalize(err).Message)
		client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestHandler_Execute_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode errors.ErrorCode
	}{
		{name: "missing key", err: genai.ErrMissingAPIKey, wantCode: errors.ErrCodeConfigurationMissing},
		{name: "generation failed", err: fmt.Errorf("%w: status 500", genai.ErrGenerationFailed), wantCode: errors.ErrCodeUpstreamGenerationFailed},
		{name: "no response", err: genai.ErrNoResponse, wantCode: errors.ErrCodeUpstreamNoResponse},
		{name: "unexpected", err: context.DeadlineExceeded, wantCode: errors.ErrCodeUpstreamGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockCompleter)
			client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", tt.err).Once()

			output, err := createTestHandler(t, client).Execute(context.Background(), &Input{Query: "insomnia"})

			assert.Nil(t, output)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig(nil)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 1000, cfg.MaxTokens)
}
