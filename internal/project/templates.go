package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// templates maps template names to main.poh content
var templates = map[string]string{
	"basic": `# Basic PohLang Program
Write "Hello from PohLang!"
Write "This is a basic project template."
`,
	"console": `# Console Application Template
Write "Welcome to your PohLang console application!"
Write ""

Ask for name
Write "Hello " plus name plus "!"

Set count to 0
Repeat 3
    Set count to count plus 1
    Write "Loop iteration: " plus count
End
`,
	"web": `# Web Application Template (experimental)
Write "PohLang web support is experimental."
Write "This template is a placeholder for the web target."
`,
}

// templateDescriptions is shown by "plhub list templates"
var templateDescriptions = map[string]string{
	"basic":   "Simple console application",
	"console": "Advanced console application with input/output",
	"web":     "Web application template (experimental)",
}

// TemplateNames returns the available template names, sorted
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// TemplateDescription returns the description for a template name
func TemplateDescription(name string) string {
	return templateDescriptions[name]
}

// Scaffold creates a new project directory with the standard layout, a
// manifest, a templated entry file and a README. The directory must not
// already exist.
func Scaffold(dir, name, template string) error {
	content, ok := templates[template]
	if !ok {
		return fmt.Errorf("unknown template: %s", template)
	}

	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", name)
	}

	for _, sub := range []string{"src", "examples", "tests"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	m := &Manifest{
		Name:            name,
		Version:         "1.0.0",
		Description:     fmt.Sprintf("A PohLang project: %s", name),
		Main:            DefaultMain,
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}

	if err := m.Save(filepath.Join(dir, ManifestName)); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(DefaultMain)), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write main file: %w", err)
	}

	readme := fmt.Sprintf(`# %s

A PohLang project created with plhub.

## Running

`+"```bash"+`
cd %s
plhub run src/main.poh
`+"```"+`

## Building

`+"```bash"+`
plhub build
`+"```"+`
`, name, name)

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}

	return nil
}
