package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pohlang/plhub/internal/cache"
	"github.com/pohlang/plhub/internal/project"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:          "clean",
	Short:        "Remove the build cache and cached artifacts",
	SilenceUsage: true,
	RunE:         runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	root, err := project.FindRoot(cwd)
	if err != nil {
		return err
	}

	cacheDir := filepath.Join(root, filepath.FromSlash(cache.DirName))
	if err := os.RemoveAll(cacheDir); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}

	fmt.Println("Build cache cleared.")

	return nil
}
