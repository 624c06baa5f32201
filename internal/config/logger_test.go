package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LoggerConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("dropped")
	assert.Zero(t, buf.Len(), "info must be filtered at warn level")

	logger.Warn().Str("order_id", "o-1").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "coffee-kart", entry["app"])
	assert.Equal(t, "o-1", entry["order_id"])
}

func TestNewLoggerWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(LoggerConfig{Level: "debug", Format: "console"}, &buf)

	logger.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNewLoggerWithWriter_UnknownLevel(t *testing.T) {
	logger := NewLoggerWithWriter(LoggerConfig{Level: "loud", Format: "json"}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
