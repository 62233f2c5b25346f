package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"posrelay/cmd"
	"posrelay/internal/pkg/errs"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"KAFKA_HOST", "KAFKA_ORDER_CHANGED_TOPIC", "AMQP_URL", "AMQP_EXCHANGE",
	"KEEPALIVE_INTERVAL", "STATIC_DIR", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.False(t, cfg.UsePostgres())
	assert.Equal(t, 25*time.Second, cfg.KeepAliveInterval)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, log.INFO, cfg.EchoLogLevel())
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range configKeys {
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"HTTP_PORT=8080\nDB_HOST=db\nDB_NAME=pos\nKEEPALIVE_INTERVAL=10\nLOG_LEVEL=debug\n",
	), 0o600))
	t.Cleanup(func() {
		for _, key := range configKeys {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := cmd.LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.True(t, cfg.UsePostgres())
	assert.Equal(t, "pos", cfg.DBName)
	assert.Equal(t, 10*time.Second, cfg.KeepAliveInterval)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, log.DEBUG, cfg.EchoLogLevel())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HTTP_PORT=8080\n"), 0o600))

	cfg, err := cmd.LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
}

func TestLoadConfig_KeepAliveInterval(t *testing.T) {
	testCases := []struct {
		value    string
		expected time.Duration
		err      error
	}{
		{value: "30s", expected: 30 * time.Second},
		{value: "1m", expected: time.Minute},
		{value: "5", expected: 5 * time.Second},
		{value: "soon", err: errs.ErrValueIsInvalid},
		{value: "100ms", err: errs.ErrValueIsOutOfRange},
		{value: "0", err: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("KEEPALIVE_INTERVAL", tc.value)

			cfg, err := cmd.LoadConfig("")
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.KeepAliveInterval)
		})
	}
}
