package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.False(t, cfg.Quiet)
}

func TestValidate_InvalidLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"

	require.Error(t, cfg.Validate())
}

func TestValidate_InvalidFormat(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"

	require.Error(t, cfg.Validate())
}

func TestEffectiveLogLevel_Quiet(t *testing.T) {
	cfg := Default()
	cfg.Quiet = true

	assert.Equal(t, LogLevelError, cfg.EffectiveLogLevel())
}

func TestLoad_Defaults(t *testing.T) {
	cmd := &cobra.Command{}

	cfg, err := Load(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.LogLevel)
}

func TestLoad_FlagOverridesDefault(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.PersistentFlags().String("log-level", "info", "")
	require.NoError(t, cmd.PersistentFlags().Set("log-level", "debug"))

	cfg, err := Load(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-level: warn\nlog-format: json\n"), 0o644))

	cfg, err := Load(&cobra.Command{}, path)
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, cfg.LogLevel)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(&cobra.Command{}, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestFromContext_Fallback(t *testing.T) {
	cfg := FromContext(context.Background())
	assert.Equal(t, Default(), cfg)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = LogLevelDebug

	ctx := NewContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))
}
