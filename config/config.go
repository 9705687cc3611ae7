// Package config loads and saves lc3-toolchain's TOML configuration
// file: VM execution limits and I/O preferences, and assembler
// warning behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings shared by the lc3as and lc3vm commands.
type Config struct {
	Execution struct {
		MaxCycles   uint64 `toml:"max_cycles"`
		EnableStats bool   `toml:"enable_stats"`
		TraceFile   string `toml:"trace_file"` // empty disables tracing
	} `toml:"execution"`

	Assembler struct {
		WarningsAsErrors bool `toml:"warnings_as_errors"`
		EmitListing      bool `toml:"emit_listing"`
	} `toml:"assembler"`

	Display struct {
		ColorOutput  bool   `toml:"color_output"`
		NumberFormat string `toml:"number_format"` // hex, dec
	} `toml:"display"`
}

// DefaultConfig returns the built-in defaults, used whenever no config
// file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxCycles = 10_000_000
	cfg.Execution.EnableStats = false
	cfg.Execution.TraceFile = ""
	cfg.Assembler.WarningsAsErrors = false
	cfg.Assembler.EmitListing = false
	cfg.Display.ColorOutput = true
	cfg.Display.NumberFormat = "hex"
	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "lc3-toolchain")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "lc3-toolchain")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to defaults
// when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dir, err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}

	return nil
}
