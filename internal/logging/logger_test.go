package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Randidu/event-management-system/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	appCfg := config.AppConfig{
		Name:        "ems-console",
		Environment: "test",
		Version:     "1.0.0",
	}

	t.Run("DefaultStdout", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{}, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("Stderr", func(t *testing.T) {
		logger, closer, err := New(config.LoggingConfig{Level: "debug", Output: "stderr"}, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
		assert.Nil(t, closer)
	})

	t.Run("Console", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "warn", Format: "console"}, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("File", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "console.log")
		logger, closer, err := New(config.LoggingConfig{Level: "info", Output: "file", FilePath: logPath}, appCfg)
		require.NoError(t, err)
		require.NotNil(t, closer)

		logger.Info().Msg("booking deleted")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"app":"ems-console"`)
		assert.Contains(t, string(data), "booking deleted")
	})

	t.Run("BothNeedsPath", func(t *testing.T) {
		_, _, err := New(config.LoggingConfig{Output: "both"}, appCfg)
		assert.Error(t, err)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		logger, _, err := New(config.LoggingConfig{Level: "loud"}, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	l := Component(&base, "tickets")
	l.Info().Msg("loaded")
	assert.Contains(t, buf.String(), `"component":"tickets"`)

	nop := Component(nil, "x")
	assert.Equal(t, zerolog.Disabled, nop.GetLevel())
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	reqLogger := base.With().Str("request_id", "abc").Logger()

	ctx := reqLogger.WithContext(context.Background())
	Ctx(ctx, &base).Info().Msg("hit")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	assert.Same(t, &base, Ctx(context.Background(), &base))
	assert.NotNil(t, Ctx(context.Background(), nil))
}
