package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pohlang/plhub/internal/project"
	"github.com/pohlang/plhub/internal/runtime"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:          "list <examples|templates|packages>",
	Short:        "List available items",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runList,
}

func runList(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "examples":
		return listExamples()
	case "templates":
		return listTemplates()
	case "packages":
		return listPackages()
	}

	return fmt.Errorf("%w: unknown list type %q (expected examples, templates or packages)", errUsage, args[0])
}

func listExamples() error {
	examplesDir := filepath.Join(runtime.DefaultRoot(), "Examples")

	matches, err := filepath.Glob(filepath.Join(examplesDir, "*.poh"))
	if err != nil || len(matches) == 0 {
		fmt.Println("No examples found.")
		return nil
	}

	sort.Strings(matches)

	fmt.Println("Available example programs:")
	for _, example := range matches {
		fmt.Printf("  - %s\n", filepath.Base(example))
	}

	return nil
}

func listTemplates() error {
	fmt.Println("Available project templates:")
	for _, name := range project.TemplateNames() {
		fmt.Printf("  - %s: %s\n", name, project.TemplateDescription(name))
	}

	return nil
}

func listPackages() error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	root, err := project.FindRoot(cwd)
	if err != nil {
		fmt.Println("Not in a PohLang project directory.")
		return nil
	}

	m, err := project.LoadManifest(filepath.Join(root, project.ManifestName))
	if err != nil {
		return err
	}

	fmt.Println("Installed packages:")
	if len(m.Dependencies) == 0 {
		fmt.Println("  No packages installed.")
		return nil
	}

	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  - %s: %s\n", name, m.Dependencies[name])
	}

	return nil
}
