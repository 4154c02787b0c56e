package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbearia/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("JSONWithBaseFields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LoggingConfig{Level: "info"}, "test", &buf)
		logger.Info().Str("barbeiro", "ana").Msg("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "barbearia", entry["app"])
		assert.Equal(t, "test", entry["env"])
		assert.Equal(t, "ana", entry["barbeiro"])
		assert.Equal(t, "hello", entry["message"])
	})

	t.Run("LevelFiltersDebug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LoggingConfig{Level: "warn"}, "test", &buf)
		logger.Info().Msg("dropped")
		assert.Empty(t, buf.String())
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		logger := NewWithWriter(config.LoggingConfig{Level: "loud"}, "test", &bytes.Buffer{})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("Console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "console"}, "test", &buf)
		logger.Debug().Msg("readable")
		assert.Contains(t, buf.String(), "readable")
	})
}
