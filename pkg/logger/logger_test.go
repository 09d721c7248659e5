package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	require.Equal(t, "", TraceIDFromContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "abc-123")
	require.Equal(t, "abc-123", TraceIDFromContext(ctx))

	ctx = context.WithValue(context.Background(), TraceIDKey, 42)
	require.Equal(t, "", TraceIDFromContext(ctx))
}

func TestLoggingBeforeInit(t *testing.T) {
	require.NotPanics(t, func() {
		Info("quiet", "k", "v")
		Warn("quiet")
		Sync()
	})
}
