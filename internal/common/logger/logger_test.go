package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestZapAdapter_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"operation": "generate-remedies"})

	log.WithError(errors.New("boom")).Error("gateway failed", map[string]interface{}{
		"status": 502,
		"cause":  errors.New("bad gateway"),
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "gateway failed", entries[0].Message)
	assert.Equal(t, "generate-remedies", fields["operation"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "bad gateway", fields["cause"])
	assert.EqualValues(t, 502, fields["status"])
}

func TestContextLogger(t *testing.T) {
	fallback := NewNoOpLogger()
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))

	scoped := NewTestLogger(t).With(map[string]interface{}{"requestId": "abc"})
	ctx := IntoContext(context.Background(), scoped)
	assert.Equal(t, scoped, FromContext(ctx, fallback))
}
