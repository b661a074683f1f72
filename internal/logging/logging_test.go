package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/pledge-engine/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("payment applied", "pledge_id", "p-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "payment applied", entry["msg"])
	assert.Equal(t, "p-1", entry["pledge_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("sweep finished", "closed", 2)
	assert.Contains(t, buf.String(), "msg=\"sweep finished\"")
	assert.Contains(t, buf.String(), "closed=2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestForProcess_DevelopmentAddsSource(t *testing.T) {
	tests := []struct {
		env        string
		wantSource bool
	}{
		{"development", true},
		{"production", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{
				Server:  config.ServerConfig{Env: tt.env},
				Logging: config.LoggingConfig{Level: "info", Format: "json"},
			}

			ForProcess(cfg, &buf).Info("pledge created")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			_, hasSource := entry[slog.SourceKey]
			assert.Equal(t, tt.wantSource, hasSource)
		})
	}
}
