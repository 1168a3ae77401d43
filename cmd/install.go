package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pohlang/plhub/internal/project"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install <package>",
	Short:        "Install a PohLang package",
	Long:         `Record a package dependency in the project manifest.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	pkg := args[0]

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	root, err := project.FindRoot(cwd)
	if err != nil {
		return fmt.Errorf("%w\nRun 'plhub create <name>' to create a new project", err)
	}

	manifestPath := filepath.Join(root, project.ManifestName)
	m, err := project.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	fmt.Printf("Installing package %q...\n", pkg)

	m.Install(pkg)

	if err := m.Save(manifestPath); err != nil {
		return err
	}

	fmt.Printf("Package %q installed successfully.\n", pkg)

	return nil
}
