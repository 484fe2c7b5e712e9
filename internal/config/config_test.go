package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Uint16("slippage-bps", 100, "")
	flags.Uint64("current-time", 0, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "info", SlippageBps: 100}, cfg)
}

func TestLoadSources(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv("CPAMM_SLIPPAGE_BPS", "250")
		t.Setenv("CPAMM_CURRENT_EPOCH", "612")
		cfg, err := Load("", testFlags(t))
		require.NoError(t, err)
		assert.Equal(t, uint16(250), cfg.SlippageBps)
		assert.Equal(t, uint64(612), cfg.CurrentEpoch)
	})

	t.Run("flags win over env", func(t *testing.T) {
		t.Setenv("CPAMM_SLIPPAGE_BPS", "250")
		cfg, err := Load("", testFlags(t, "--slippage-bps=30", "--current-time=1700000000", "--log-level=debug"))
		require.NoError(t, err)
		assert.Equal(t, uint16(30), cfg.SlippageBps)
		assert.Equal(t, uint64(1_700_000_000), cfg.CurrentTime)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cpamm.yaml")
		require.NoError(t, os.WriteFile(path, []byte("slippage-bps: 75\ncurrent-slot: 250000000\n"), 0o600))
		cfg, err := Load(path, testFlags(t))
		require.NoError(t, err)
		assert.Equal(t, uint16(75), cfg.SlippageBps)
		assert.Equal(t, uint64(250_000_000), cfg.CurrentSlot)
	})
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("", testFlags(t, "--slippage-bps=10001"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
