package migrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// expectedFiles are checked after migration. Missing entries produce
// warnings, not failures; a restructured project may legitimately lack
// them.
var expectedFiles = []string{
	"package.json",
	"src/main.js",
}

// Validate performs cheap post-migration checks: package.json must still
// parse as JSON if present, and a fixed list of expected files produces
// warnings when missing. This is deliberately shallow; it does not run
// the build or the test suite.
func (m *Migrator) Validate() ([]string, error) {
	var warnings []string

	pkgPath := filepath.Join(m.projectPath, "package.json")
	data, err := os.ReadFile(pkgPath)
	if err == nil {
		var parsed map[string]any
		if jsonErr := json.Unmarshal(data, &parsed); jsonErr != nil {
			return warnings, fmt.Errorf("package.json is no longer valid JSON: %w", jsonErr)
		}
	}

	for _, name := range expectedFiles {
		if _, err := os.Stat(filepath.Join(m.projectPath, filepath.FromSlash(name))); os.IsNotExist(err) {
			warnings = append(warnings, fmt.Sprintf("expected file missing: %s", name))
		}
	}

	return warnings, nil
}
