// Package analyzer inspects a web project directory and produces a
// structured Result describing its stack, migration complexity, and a
// suggested migration strategy.
//
// Detection is dependency- and filename-based: the analyzer reads
// package.json and well-known config files, and does a substring scan of
// the entrypoint. It never parses source code and never writes to the
// project. Problems with project content become PotentialIssues entries
// rather than errors; Analyze only fails when the directory itself is
// unreadable.
package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Analyzer inspects project directories.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// packageJSON is the subset of package.json the analyzer cares about.
type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// Analyze inspects the project at projectPath and returns a best-effort
// Result. A project without package.json still analyzes, with
// ProjectType "unknown".
func (a *Analyzer) Analyze(projectPath string) (*Result, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read project directory %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", projectPath)
	}

	result := &Result{
		ProjectPath:     projectPath,
		ProjectName:     filepath.Base(projectPath),
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		Scripts:         map[string]string{},
		SourceStructure: map[string]DirectoryInfo{},
	}

	pkg, pkgErr := readPackageJSON(projectPath)
	if pkgErr != nil {
		result.PotentialIssues = append(result.PotentialIssues,
			fmt.Sprintf("package.json could not be read: %v", pkgErr))
	}
	if pkg != nil {
		if pkg.Name != "" {
			result.ProjectName = pkg.Name
		}
		result.Version = pkg.Version
		if pkg.Dependencies != nil {
			result.Dependencies = pkg.Dependencies
		}
		if pkg.DevDependencies != nil {
			result.DevDependencies = pkg.DevDependencies
		}
		if pkg.Scripts != nil {
			result.Scripts = pkg.Scripts
		}
	}

	result.PackageManager = detectPackageManager(projectPath)

	classifyStack(result)
	scanStructure(projectPath, result)
	inspectEntrypoint(projectPath, result)

	result.ProjectType = composeProjectType(result)
	scoreComplexity(result)
	buildRecommendations(result)
	result.MigrationStrategy = buildStrategy(result)

	return result, nil
}

// readPackageJSON returns (nil, nil) when the file is absent, and
// (nil, err) when it exists but cannot be read or parsed.
func readPackageJSON(projectPath string) (*packageJSON, error) {
	path := filepath.Join(projectPath, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &pkg, nil
}

// detectPackageManager picks the package manager from lockfile presence.
// Priority: yarn.lock, pnpm-lock.yaml, package-lock.json, then npm as the
// default.
func detectPackageManager(projectPath string) string {
	lockfiles := []struct {
		file    string
		manager string
	}{
		{"yarn.lock", "yarn"},
		{"pnpm-lock.yaml", "pnpm"},
		{"package-lock.json", "npm"},
	}

	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(projectPath, lf.file)); err == nil {
			return lf.manager
		}
	}
	return "npm"
}

// composeProjectType builds the registry key for transformer lookup,
// e.g. "vue-vuetify-supabase".
func composeProjectType(r *Result) string {
	if r.Framework == "" {
		return "unknown"
	}

	parts := []string{r.Framework}
	if r.UILibrary != "" {
		parts = append(parts, r.UILibrary)
	}
	if r.Backend != "" {
		parts = append(parts, r.Backend)
	}

	projectType := parts[0]
	for _, p := range parts[1:] {
		projectType += "-" + p
	}
	return projectType
}
