package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForCommand loads configuration for a command invocation: defaults,
// then the global config file, then a local dotfile found by walking up
// from dir, then the command's flags over the top.
func (l *Loader) LoadForCommand(cmd *cobra.Command, dir string) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig(dir)
	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("runtime_path", DefaultRuntimePath)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("no-cache", DefaultNoCache)
	viper.SetDefault("ignore", []string{})
}

// loadGlobalConfig loads global configuration from the user config dir
// (APPDATA\plhub on Windows, $XDG_CONFIG_HOME/plhub elsewhere)
func (l *Loader) loadGlobalConfig() {
	base, err := os.UserConfigDir()
	if err != nil {
		return
	}

	globalDir := filepath.Join(base, "plhub")

	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig loads local configuration from the project directory
func (l *Loader) loadLocalConfig(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return // silently ignore, Load() will handle validation
	}

	localPath := FindLocalConfig(abs)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.ReadInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("no-cache", cmd.Flags().Lookup("no-cache"))
	_ = viper.BindPFlag("debug", cmd.Flags().Lookup("debug"))
}
