package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash-2200030856/Sanchari-escapes/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("defaults to info", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{})
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("console debug", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{Level: "DEBUG", Format: "console"})
		require.NoError(t, err)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("invalid level falls back", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "loud"})
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("logstash closer", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{LogstashTCPAddr: "127.0.0.1:1"})
		require.NoError(t, err)
		require.NotNil(t, closer)
		logger.Info().Msg("dropped without blocking")
		assert.NoError(t, closer.Close())
	})
}
