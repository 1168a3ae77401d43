package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultRuntimePath = ""
	DefaultVerbose     = false
	DefaultNoCache     = false
)

// Holds the configuration options for plhub
type Config struct {
	// Path to the PohLang runtime binary. Empty means discover it from the
	// install locations and PATH.
	RuntimePath string

	// Ignore patterns (doublestar globs, relative to the project root)
	// excluded from source discovery
	Ignore []string

	// Disable the incremental build cache
	NoCache bool

	// Enable verbose output
	Verbose bool

	// Enable debug tracing in the runtime
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		RuntimePath: viper.GetString("runtime_path"),
		Ignore:      viper.GetStringSlice("ignore"),
		NoCache:     viper.GetBool("no-cache"),
		Verbose:     viper.GetBool("verbose"),
		Debug:       viper.GetBool("debug"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RuntimePath != "" {
		abs, err := filepath.Abs(c.RuntimePath)
		if err != nil {
			return fmt.Errorf("invalid runtime path: %v", err)
		}

		c.RuntimePath = abs
	}

	return nil
}
