package analyzer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// conventionalDirs are the directories worth summarizing, checked at the
// project root and under src/.
var conventionalDirs = []string{
	"src", "components", "pages", "views", "lib", "utils", "assets", "styles",
}

// knownConfigFiles are the root-level config filenames the analyzer
// inventories.
var knownConfigFiles = []string{
	"package.json",
	"vite.config.js",
	"vite.config.ts",
	"vue.config.js",
	"webpack.config.js",
	"rollup.config.js",
	"tsconfig.json",
	"jsconfig.json",
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.json",
	"eslint.config.js",
	".prettierrc",
	".prettierrc.json",
	"babel.config.js",
	".babelrc",
	"tailwind.config.js",
	"postcss.config.js",
	"jest.config.js",
	"vitest.config.js",
	"vitest.config.ts",
	"cypress.config.js",
	"playwright.config.ts",
	"netlify.toml",
	"vercel.json",
	"firebase.json",
}

// scanStructure records which conventional directories exist (one level
// deep) and which well-known config files are present at the root.
func scanStructure(projectPath string, r *Result) {
	for _, name := range knownConfigFiles {
		if _, err := os.Stat(filepath.Join(projectPath, name)); err == nil {
			r.ConfigFiles = append(r.ConfigFiles, name)
		}
	}

	r.UsesTypeScript = containsString(r.ConfigFiles, "tsconfig.json")

	for _, dir := range conventionalDirs {
		path := filepath.Join(projectPath, dir)
		if dir != "src" {
			// Conventional subdirectories usually live under src/.
			if _, err := os.Stat(path); err != nil {
				path = filepath.Join(projectPath, "src", dir)
			}
		}
		info, ok := summarizeDir(path)
		if ok {
			r.SourceStructure[dir] = info
		}
	}
}

// summarizeDir reads a directory one level deep.
func summarizeDir(path string) (DirectoryInfo, bool) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return DirectoryInfo{}, false
	}

	info := DirectoryInfo{}
	extSet := map[string]bool{}

	for _, entry := range entries {
		if entry.IsDir() {
			info.Subdirectories = append(info.Subdirectories, entry.Name())
			continue
		}
		info.FileCount++

		name := entry.Name()
		if ext := filepath.Ext(name); ext != "" {
			extSet[ext] = true
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == "index" {
			info.HasIndexFile = true
		}
	}

	// Sorted for deterministic re-analysis.
	sort.Strings(info.Subdirectories)
	for ext := range extSet {
		info.Extensions = append(info.Extensions, ext)
	}
	sort.Strings(info.Extensions)

	return info, true
}

// inspectEntrypoint does a substring scan of src/main.js or src/main.ts
// for Vue app bootstrapping patterns. This is deliberately not an AST
// analysis.
func inspectEntrypoint(projectPath string, r *Result) {
	var content string
	for _, name := range []string{"main.js", "main.ts"} {
		data, err := os.ReadFile(filepath.Join(projectPath, "src", name))
		if err == nil {
			content = string(data)
			break
		}
	}
	if content == "" {
		return
	}

	if strings.Contains(content, "createApp") {
		r.VueAppPattern = "createApp"
	} else if strings.Contains(content, "new Vue") {
		r.VueAppPattern = "new Vue"
	}

	r.UsesPinia = strings.Contains(content, "createPinia")
	r.UsesVuetify = strings.Contains(content, "createVuetify")
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
