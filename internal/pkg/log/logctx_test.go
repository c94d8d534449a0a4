package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFrom_DefaultWhenEmpty — без логгера в контексте возвращается slog.Default().
func TestFrom_DefaultWhenEmpty(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), From(context.Background()))
}

// TestWith_AddsAttrs — With наращивает атрибуты логгера из контекста.
func TestWith_AddsAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(Into(context.Background(), base), "job", "fetch")
	From(ctx).Info("tick")

	require.Contains(t, buf.String(), "job=fetch")
	require.Contains(t, buf.String(), "msg=tick")
}
