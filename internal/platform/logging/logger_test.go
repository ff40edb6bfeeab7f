package logging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FieldsAndTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).Named("game").With("game_started_at", "2026-03-14")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.WarnContext(ctx, "snapshot write failed", "error", errors.New("boom"), "dangling")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "game", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "2026-03-14", fields["game_started_at"])
	assert.Equal(t, "boom", fields["error"])
	assert.Nil(t, fields["dangling"])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	l.Info("no panic")
	assert.NotNil(t, l.With("k", "v"))
	assert.NoError(t, l.Sync())
}
