// Package vue transforms Vue projects onto the target stack: Vite for
// builds and Pinia for state. It implements the dependency, configuration
// and source-code phases; file structure and the pre/post phases are not
// needed for same-framework Vue migrations and are skipped by the
// migrator.
package vue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jezweb/flow-state-dev/internal/migrator"
)

const (
	viteVersion   = "^5.0.0"
	vitePluginVue = "^5.0.0"
	piniaVersion  = "^2.1.0"
)

// viteConfigStarter is written when the project has no vite config yet.
const viteConfigStarter = `import { defineConfig } from 'vite'
import vue from '@vitejs/plugin-vue'

export default defineConfig({
  plugins: [vue()],
})
`

// legacyConfigFiles are superseded by vite.config.js and removed.
var legacyConfigFiles = []string{
	"vue.config.js",
	"webpack.config.js",
}

// Transformer migrates Vue projects to Vite + Pinia.
type Transformer struct{}

// New creates the Vue transformer.
func New() *Transformer {
	return &Transformer{}
}

// Name identifies this transformer in logs.
func (t *Transformer) Name() string { return "vue" }

// MigrateDependencies rewrites package.json: Vuex becomes Pinia, the
// legacy build tool becomes Vite, and scripts are pointed at vite.
func (t *Transformer) MigrateDependencies(ctx context.Context, pc *migrator.PhaseContext) error {
	pkgPath := filepath.Join(pc.ProjectPath, "package.json")
	data, err := os.ReadFile(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			pc.Logger.Warn().Msg("no package.json; skipping dependency migration")
			return nil
		}
		return fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("package.json is not valid JSON: %w", err)
	}

	deps := section(pkg, "dependencies")
	devDeps := section(pkg, "devDependencies")
	scripts := section(pkg, "scripts")

	if _, ok := deps["vuex"]; ok {
		delete(deps, "vuex")
		deps["pinia"] = piniaVersion
		pc.Logger.Info().Msg("replaced vuex with pinia")
	}

	for _, legacy := range []string{"@vue/cli-service", "webpack", "webpack-cli", "webpack-dev-server"} {
		delete(deps, legacy)
		delete(devDeps, legacy)
	}
	if _, ok := devDeps["vite"]; !ok {
		devDeps["vite"] = viteVersion
		devDeps["@vitejs/plugin-vue"] = vitePluginVue
		pc.Logger.Info().Msg("added vite build tooling")
	}

	scripts["dev"] = "vite"
	scripts["build"] = "vite build"
	scripts["preview"] = "vite preview"
	delete(scripts, "serve")

	pkg["dependencies"] = deps
	pkg["devDependencies"] = devDeps
	pkg["scripts"] = scripts

	if pc.DryRun {
		pc.Logger.Info().Msg("dry run: package.json left unchanged")
		return nil
	}

	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode package.json: %w", err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(pkgPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write package.json: %w", err)
	}

	return nil
}

// MigrateConfiguration writes a starter vite.config.js when none exists
// and removes build configs that Vite supersedes.
func (t *Transformer) MigrateConfiguration(ctx context.Context, pc *migrator.PhaseContext) error {
	hasViteConfig := false
	for _, name := range []string{"vite.config.js", "vite.config.ts"} {
		if _, err := os.Stat(filepath.Join(pc.ProjectPath, name)); err == nil {
			hasViteConfig = true
			break
		}
	}

	if !hasViteConfig {
		if pc.DryRun {
			pc.Logger.Info().Msg("dry run: would write vite.config.js")
		} else {
			path := filepath.Join(pc.ProjectPath, "vite.config.js")
			if err := os.WriteFile(path, []byte(viteConfigStarter), 0644); err != nil {
				return fmt.Errorf("failed to write vite.config.js: %w", err)
			}
			pc.Logger.Info().Msg("wrote starter vite.config.js")
		}
	}

	for _, name := range legacyConfigFiles {
		path := filepath.Join(pc.ProjectPath, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if pc.DryRun {
			pc.Logger.Info().Str("file", name).Msg("dry run: would remove legacy config")
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
		pc.Logger.Info().Str("file", name).Msg("removed legacy config")
	}

	return nil
}

// MigrateSourceCode flags entrypoint patterns that need manual work.
// Detection is substring-based; rewriting application code automatically
// is out of scope.
func (t *Transformer) MigrateSourceCode(ctx context.Context, pc *migrator.PhaseContext) error {
	for _, name := range []string{"main.js", "main.ts"} {
		path := filepath.Join(pc.ProjectPath, "src", name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		content := string(data)
		if strings.Contains(content, "new Vue") {
			pc.Logger.Warn().
				Str("file", "src/"+name).
				Msg("Vue 2 'new Vue' entrypoint needs manual conversion to createApp")
		}
		if strings.Contains(content, "vuex") {
			pc.Logger.Warn().
				Str("file", "src/"+name).
				Msg("vuex import should be replaced with pinia")
		}
		break
	}

	return nil
}

// section returns a mutable string-keyed map for a package.json section,
// creating it when absent.
func section(pkg map[string]any, key string) map[string]any {
	if raw, ok := pkg[key]; ok {
		if m, ok := raw.(map[string]any); ok {
			return m
		}
	}
	return map[string]any{}
}
