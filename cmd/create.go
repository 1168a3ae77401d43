package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pohlang/plhub/internal/project"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:          "create <name>",
	Short:        "Create a new PohLang project",
	Long:         `Create a new PohLang project directory with a manifest, a templated entry file and the standard layout.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCreate,
}

func init() {
	createCmd.Flags().String("template", "basic", "Project template (basic, console, web)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	template, _ := cmd.Flags().GetString("template")

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	dir := filepath.Join(cwd, name)

	fmt.Printf("Creating PohLang project %q with template %q...\n", name, template)

	if err := project.Scaffold(dir, name, template); err != nil {
		return err
	}

	fmt.Printf("Project %q created successfully.\n", name)
	fmt.Printf("Location: %s\n", dir)
	fmt.Printf("To run: cd %s && plhub run src/main.poh\n", name)

	return nil
}
