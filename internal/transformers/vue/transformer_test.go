package vue

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jezweb/flow-state-dev/internal/migrator"
)

func phaseContext(t *testing.T, dryRun bool, files map[string]string) *migratorContext {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return &migratorContext{dir: dir, dryRun: dryRun}
}

func readPackage(t *testing.T, dir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)

	var pkg map[string]any
	require.NoError(t, json.Unmarshal(data, &pkg))
	return pkg
}

const legacyPackageJSON = `{
  "name": "legacy",
  "dependencies": {"vue": "^2.7.14", "vuex": "^3.6.2"},
  "devDependencies": {"@vue/cli-service": "^5.0.8", "webpack": "^5.0.0"},
  "scripts": {"serve": "vue-cli-service serve", "build": "vue-cli-service build"}
}`

func TestMigrateDependencies(t *testing.T) {
	pc := phaseContext(t, false, map[string]string{
		"package.json": legacyPackageJSON,
	})

	tr := New()
	require.NoError(t, tr.MigrateDependencies(context.Background(), pc.phase()))

	pkg := readPackage(t, pc.dir)
	deps := pkg["dependencies"].(map[string]any)
	devDeps := pkg["devDependencies"].(map[string]any)
	scripts := pkg["scripts"].(map[string]any)

	assert.NotContains(t, deps, "vuex")
	assert.Equal(t, piniaVersion, deps["pinia"])
	assert.Contains(t, deps, "vue")

	assert.NotContains(t, devDeps, "@vue/cli-service")
	assert.NotContains(t, devDeps, "webpack")
	assert.Equal(t, viteVersion, devDeps["vite"])
	assert.Equal(t, vitePluginVue, devDeps["@vitejs/plugin-vue"])

	assert.Equal(t, "vite", scripts["dev"])
	assert.Equal(t, "vite build", scripts["build"])
	assert.Equal(t, "vite preview", scripts["preview"])
	assert.NotContains(t, scripts, "serve")
}

func TestMigrateDependencies_KeepsExistingVite(t *testing.T) {
	pc := phaseContext(t, false, map[string]string{
		"package.json": `{"devDependencies": {"vite": "^4.5.0"}}`,
	})

	require.NoError(t, New().MigrateDependencies(context.Background(), pc.phase()))

	pkg := readPackage(t, pc.dir)
	devDeps := pkg["devDependencies"].(map[string]any)
	assert.Equal(t, "^4.5.0", devDeps["vite"], "an existing vite pin is left alone")
}

func TestMigrateDependencies_DryRun(t *testing.T) {
	pc := phaseContext(t, true, map[string]string{
		"package.json": legacyPackageJSON,
	})

	require.NoError(t, New().MigrateDependencies(context.Background(), pc.phase()))

	data, err := os.ReadFile(filepath.Join(pc.dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, legacyPackageJSON, string(data), "dry run must not rewrite package.json")
}

func TestMigrateDependencies_MissingPackageJSON(t *testing.T) {
	pc := phaseContext(t, false, nil)
	assert.NoError(t, New().MigrateDependencies(context.Background(), pc.phase()))
}

func TestMigrateDependencies_CorruptPackageJSON(t *testing.T) {
	pc := phaseContext(t, false, map[string]string{
		"package.json": `{broken`,
	})
	assert.Error(t, New().MigrateDependencies(context.Background(), pc.phase()))
}

func TestMigrateConfiguration(t *testing.T) {
	pc := phaseContext(t, false, map[string]string{
		"vue.config.js":     "module.exports = {}\n",
		"webpack.config.js": "module.exports = {}\n",
	})

	require.NoError(t, New().MigrateConfiguration(context.Background(), pc.phase()))

	data, err := os.ReadFile(filepath.Join(pc.dir, "vite.config.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "@vitejs/plugin-vue")

	for _, name := range []string{"vue.config.js", "webpack.config.js"} {
		_, err := os.Stat(filepath.Join(pc.dir, name))
		assert.True(t, os.IsNotExist(err), "%s should be removed", name)
	}
}

func TestMigrateConfiguration_ExistingViteConfig(t *testing.T) {
	existing := "export default {}\n"
	pc := phaseContext(t, false, map[string]string{
		"vite.config.ts": existing,
	})

	require.NoError(t, New().MigrateConfiguration(context.Background(), pc.phase()))

	_, err := os.Stat(filepath.Join(pc.dir, "vite.config.js"))
	assert.True(t, os.IsNotExist(err), "no starter config when one already exists")

	data, err := os.ReadFile(filepath.Join(pc.dir, "vite.config.ts"))
	require.NoError(t, err)
	assert.Equal(t, existing, string(data))
}

func TestMigrateConfiguration_DryRun(t *testing.T) {
	pc := phaseContext(t, true, map[string]string{
		"vue.config.js": "module.exports = {}\n",
	})

	require.NoError(t, New().MigrateConfiguration(context.Background(), pc.phase()))

	assert.FileExists(t, filepath.Join(pc.dir, "vue.config.js"))
	_, err := os.Stat(filepath.Join(pc.dir, "vite.config.js"))
	assert.True(t, os.IsNotExist(err))
}

func TestMigrateSourceCode_LeavesFilesAlone(t *testing.T) {
	entry := "import Vue from 'vue'\nnew Vue({})\nimport vuex from 'vuex'\n"
	pc := phaseContext(t, false, map[string]string{
		"src/main.js": entry,
	})

	require.NoError(t, New().MigrateSourceCode(context.Background(), pc.phase()))

	data, err := os.ReadFile(filepath.Join(pc.dir, "src", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, entry, string(data), "source phase only reports, never rewrites")
}

func TestName(t *testing.T) {
	assert.Equal(t, "vue", New().Name())
}

// migratorContext builds PhaseContext values for tests.
type migratorContext struct {
	dir    string
	dryRun bool
}

func (m *migratorContext) phase() *migrator.PhaseContext {
	return &migrator.PhaseContext{
		ProjectPath: m.dir,
		DryRun:      m.dryRun,
		Logger:      zerolog.Nop(),
	}
}
