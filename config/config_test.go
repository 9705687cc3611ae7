package config_test

import (
	"path/filepath"
	"testing"

	"github.com/lookbusy1344/lc3-toolchain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, uint64(10_000_000), cfg.Execution.MaxCycles)
	assert.False(t, cfg.Assembler.WarningsAsErrors)
	assert.Equal(t, "hex", cfg.Display.NumberFormat)
	assert.Empty(t, cfg.Execution.TraceFile)
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := config.DefaultConfig()
	cfg.Execution.MaxCycles = 42
	cfg.Assembler.WarningsAsErrors = true
	cfg.Execution.TraceFile = "trace.log"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), loaded.Execution.MaxCycles)
	assert.True(t, loaded.Assembler.WarningsAsErrors)
	assert.Equal(t, "trace.log", loaded.Execution.TraceFile)
}
