// Package graph builds the source dependency graph and computes rebuild sets.
//
// Imports in PohLang are line-oriented: a line whose trimmed text begins with
// "Import" or "import" declares a dependency, and the first double-quoted
// substring on that line is the import path as written. Import strings are
// resolved relative to the importing file first, then the project root.
package graph

import (
	"bufio"
	"os"
	"strings"
)

// ExtractImports scans a source file for import declarations and returns the
// import strings in source order. Duplicates are kept. Only the first letter
// of the keyword is case-permissive: "Import" and "import" match, "IMPORT"
// does not.
func ExtractImports(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var imports []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "Import") && !strings.HasPrefix(line, "import") {
			continue
		}

		// Take the first quoted substring, verbatim
		parts := strings.Split(line, `"`)
		if len(parts) >= 2 {
			imports = append(imports, parts[1])
		}
	}

	if err := scanner.Err(); err != nil {
		return imports, err
	}

	return imports, nil
}
