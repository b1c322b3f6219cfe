package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Component: "storage", Handler: NewHandler(&buf, FormatJSON, slog.LevelDebug)})

	logger.InfoContext(context.Background(), "saved", "id", "x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "storage", entry["component"])
	assert.Equal(t, "saved", entry["msg"])
	assert.Equal(t, "x", entry["id"])
}

func TestLogger_DerivedLoggersKeepSingleComponent(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Component: ComponentApp, Handler: NewHandler(&buf, FormatText, slog.LevelDebug)})

	root.WithComponent(ComponentHTTP).ForGroup("g-1").Info("scoped")

	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, "component="), line)
	assert.Contains(t, line, "component=http")
	assert.Contains(t, line, "group_id=g-1")
	assert.Equal(t, ComponentHTTP, root.WithComponent(ComponentHTTP).With("k", "v").Component())
}

func TestNewHandler_RespectsLevel(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatTint} {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(&buf, format, slog.LevelWarn))
		logger.Info("hidden")
		assert.Empty(t, buf.String(), format)
		logger.Warn("shown")
		assert.Contains(t, buf.String(), "shown", format)
	}
}

func TestWithLogger_RoundTrip(t *testing.T) {
	logger := New(Config{Component: ComponentHTTP, Handler: slog.NewTextHandler(&bytes.Buffer{}, nil)})
	scoped := logger.With(FieldRequestID, "req-1")

	ctx := WithLogger(context.Background(), scoped)

	assert.Same(t, scoped, FromContext(ctx))
	assert.Equal(t, ComponentHTTP, FromContext(ctx).Component())
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}
