package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"flathunter-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPoster struct {
	tags     []string
	messages []map[string]interface{}
}

func (r *recordingPoster) Post(tag string, message interface{}) error {
	r.tags = append(r.tags, tag)
	r.messages = append(r.messages, message.(port.Fields))
	return nil
}

func (r *recordingPoster) Close() error { return nil }

func TestSlogAdapterJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true}).
		WithFields(port.Fields{"run_id": "r-1"})

	logger.Error("store failed", errors.New("disk full"), port.Fields{"expose_id": "123"})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "store failed", record["msg"])
	assert.Equal(t, "r-1", record["run_id"])
	assert.Equal(t, "123", record["expose_id"])
	assert.Equal(t, "disk full", record["err"])
}

func TestFluentAdapterRespectsMinLevel(t *testing.T) {
	poster := &recordingPoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelWarn)
	require.NoError(t, err)

	logger := adapter.WithFields(port.Fields{"service_name": "flathunter-service"})
	logger.Debug("skipped", nil)
	logger.Info("skipped", nil)
	logger.Warn("kept", port.Fields{"page": 2})

	require.Equal(t, []string{"warn"}, poster.tags)
	assert.Equal(t, "kept", poster.messages[0]["message"])
	assert.Equal(t, "flathunter-service", poster.messages[0]["service_name"])
	assert.Equal(t, 2, poster.messages[0]["page"])
}

func TestMultiloggerRequiresLoggers(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)
}

func TestPkgLoggerBridgeSkipsBrokenPairs(t *testing.T) {
	poster := &recordingPoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelDebug)
	require.NoError(t, err)

	NewPkgLoggerBridge(adapter).Info("declared", "name", "flathunter.exposes", 42, "x", "dangling")

	require.Len(t, poster.messages, 1)
	assert.Equal(t, "flathunter.exposes", poster.messages[0]["name"])
	assert.NotContains(t, poster.messages[0], "dangling")
}
