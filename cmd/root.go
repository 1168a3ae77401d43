package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/pohlang/plhub/internal/codes"
	"github.com/pohlang/plhub/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Sentinel errors mapped to process exit codes by Execute
var (
	errNoCommand = errors.New("no command given")
	errUsage     = errors.New("invalid usage")
)

var rootCmd = &cobra.Command{
	Use:          "plhub",
	Short:        "PohLang development environment",
	Long:         `plhub is the development environment for PohLang: project scaffolding, incremental builds, watch mode and release automation around the PohLang runtime.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return errNoCommand
	},
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return codes.OK
	}

	switch {
	case errors.Is(err, errNoCommand):
		return codes.NoCommand
	case errors.Is(err, errUsage):
		return codes.Usage
	case errors.Is(err, context.Canceled):
		return codes.Interrupt
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return codes.Runtime
	}

	return codes.Failure
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(versionCmd)

	viper.SetDefault("runtime_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("no-cache", false)
}

// workingDir returns the current working directory or an error wrapped for
// the caller's RunE
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return cwd, nil
}
