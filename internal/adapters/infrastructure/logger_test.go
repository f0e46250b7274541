package infrastructure

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityweather.app/internal/ports"
)

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogLoggerAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	adapter.Debug("debug entry", ports.F("city", "Boston"))
	adapter.Info("info entry")
	adapter.Warn("warn entry", ports.F("slot", "city2"))
	adapter.Error("error entry", ports.F("status", 502))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	levels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, levels[i], entry["level"])
	}

	var last map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &last))
	assert.Equal(t, "error entry", last["msg"])
	assert.Equal(t, float64(502), last["status"])
}

func TestSlogLoggerAdapter_ZeroValueUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	adapter := &SlogLoggerAdapter{}
	adapter.Info("through default", ports.F("city", "Seattle"))

	assert.Contains(t, buf.String(), `"msg":"through default"`)
	assert.Contains(t, buf.String(), `"city":"Seattle"`)
}

func TestMultiLogger(t *testing.T) {
	first := &recordingLogger{}
	second := &recordingLogger{}
	logger := NewMultiLogger(first, second)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e", ports.F("k", "v"))

	expected := []string{"DEBUG d", "INFO i", "WARN w", "ERROR e"}
	assert.Equal(t, expected, first.entries)
	assert.Equal(t, expected, second.entries)
}

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Debug(msg string, fields ...ports.Field) {
	r.entries = append(r.entries, "DEBUG "+msg)
}

func (r *recordingLogger) Info(msg string, fields ...ports.Field) {
	r.entries = append(r.entries, "INFO "+msg)
}

func (r *recordingLogger) Warn(msg string, fields ...ports.Field) {
	r.entries = append(r.entries, "WARN "+msg)
}

func (r *recordingLogger) Error(msg string, fields ...ports.Field) {
	r.entries = append(r.entries, "ERROR "+msg)
}
