package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutsideDev(t *testing.T) {
	cfg, err := config.NewFromEnvironment(map[string]string{"ENV": "PROD", "APP_NAME": "svc", "LOG_LEVEL": "warn"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logging.NewWithWriter(cfg, &buf)
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "svc", entry["app"])
}

func TestNewWithWriter_BadLevelDefaultsToInfo(t *testing.T) {
	cfg, err := config.NewFromEnvironment(map[string]string{"ENV": "PROD", "LOG_LEVEL": "chatty"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logging.NewWithWriter(cfg, &buf)
	logger.Debug().Msg("dropped")
	require.Zero(t, buf.Len())
	logger.Info().Msg("kept")
	require.NotZero(t, buf.Len())
}
