package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store with deterministic ids: each Create uses
// the next second of a fixed clock and a fixed suffix.
func newTestStore(t *testing.T, projectPath string) *Store {
	t.Helper()

	s := NewStore(projectPath, zerolog.Nop())
	base := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	s.randSuffix = func() string { return "aaaaaa" }
	return s
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func projectFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"package.json":              `{"name": "fixture"}`,
		"src/main.js":               "import { createApp } from 'vue'\n",
		"src/components/Button.vue": "<template><button/></template>\n",
		"node_modules/vue/index.js": "module.exports = {}\n",
		".git/HEAD":                 "ref: refs/heads/main\n",
		"dist/bundle.js":            "built\n",
		"debug.log":                 "noise\n",
	})
	return dir
}

func TestCreate_ExcludesDefaults(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	id, err := s.Create(Options{Description: "before upgrade"})
	require.NoError(t, err)

	snapDir := s.SnapshotPath(id)
	for _, rel := range []string{"package.json", "src/main.js", "src/components/Button.vue"} {
		assert.FileExists(t, filepath.Join(snapDir, filepath.FromSlash(rel)))
	}
	for _, rel := range []string{"node_modules", ".git", "dist", "debug.log"} {
		_, err := os.Stat(filepath.Join(snapDir, rel))
		assert.True(t, os.IsNotExist(err), "%s should be excluded", rel)
	}

	meta, err := s.Info(id)
	require.NoError(t, err)
	assert.Equal(t, "before upgrade", meta.Description)
	assert.Equal(t, 3, meta.FileCount)
	assert.Len(t, meta.Files, 3)
	assert.Greater(t, meta.TotalSize, int64(0))
}

func TestCreate_OptInNodeModulesAndGit(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	id, err := s.Create(Options{IncludeNodeModules: true, IncludeGit: true})
	require.NoError(t, err)

	snapDir := s.SnapshotPath(id)
	assert.FileExists(t, filepath.Join(snapDir, "node_modules", "vue", "index.js"))
	assert.FileExists(t, filepath.Join(snapDir, ".git", "HEAD"))
}

func TestCreate_DefaultDescription(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	id, err := s.Create(Options{})
	require.NoError(t, err)

	meta, err := s.Info(id)
	require.NoError(t, err)
	assert.Equal(t, "Manual backup", meta.Description)
}

func TestRestore_RoundTrip(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	original, err := os.ReadFile(filepath.Join(dir, "src", "main.js"))
	require.NoError(t, err)

	id, err := s.Create(Options{})
	require.NoError(t, err)

	// Mutate the tree after the snapshot.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.js"), []byte("corrupted\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("stray\n"), 0644))
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "src", "components")))

	require.NoError(t, s.Restore(id, RestoreOptions{ConfirmOverwrite: true}))

	restored, err := os.ReadFile(filepath.Join(dir, "src", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, original, restored)
	assert.FileExists(t, filepath.Join(dir, "src", "components", "Button.vue"))

	_, err = os.Stat(filepath.Join(dir, "stray.txt"))
	assert.True(t, os.IsNotExist(err), "files created after the snapshot should be removed")

	// The metadata file stays inside the snapshot.
	_, err = os.Stat(filepath.Join(dir, metadataFile))
	assert.True(t, os.IsNotExist(err))

	// The backup root survives the restore.
	assert.DirExists(t, filepath.Join(dir, DirName))
}

func TestRestore_RequiresConfirmation(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	id, err := s.Create(Options{})
	require.NoError(t, err)

	err = s.Restore(id, RestoreOptions{})
	require.Error(t, err)

	// Nothing was touched.
	assert.FileExists(t, filepath.Join(dir, "package.json"))
}

func TestRestore_UnknownID(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	err := s.Restore("backup-nope", RestoreOptions{ConfirmOverwrite: true})
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestRestore_CreatesPreRestoreBackup(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	id, err := s.Create(Options{})
	require.NoError(t, err)

	require.NoError(t, s.Restore(id, RestoreOptions{
		ConfirmOverwrite:    true,
		CreateCurrentBackup: true,
	}))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[1].Description, "Pre-restore backup")
	assert.Contains(t, entries[1].Description, id)
}

func TestList_EmptyWithoutIndex(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInfo_UnknownID(t *testing.T) {
	s := newTestStore(t, projectFixture(t))

	_, err := s.Info("backup-missing")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestDelete(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	id, err := s.Create(Options{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = os.Stat(s.SnapshotPath(id))
	assert.True(t, os.IsNotExist(err))

	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete_UnknownID(t *testing.T) {
	s := newTestStore(t, projectFixture(t))
	assert.True(t, errors.Is(s.Delete("backup-missing"), ErrBackupNotFound))
}

func TestCleanup_MaxCount(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := s.Create(Options{})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	deleted, err := s.Cleanup(CleanupOptions{MaxCount: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The two newest survive.
	kept := map[string]bool{ids[3]: true, ids[4]: true}
	for _, entry := range entries {
		assert.True(t, kept[entry.ID], "unexpected survivor %s", entry.ID)
	}

	// Index and disk agree: two snapshot dirs plus the index file.
	dirEntries, err := os.ReadDir(filepath.Join(dir, DirName))
	require.NoError(t, err)
	snapDirs := 0
	for _, e := range dirEntries {
		if e.IsDir() {
			snapDirs++
		}
	}
	assert.Equal(t, 2, snapDirs)
}

func TestCleanup_MaxAge(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	oldID, err := s.Create(Options{})
	require.NoError(t, err)

	// Later creates and the cleanup cutoff happen 40 days on.
	base := time.Date(2026, 2, 11, 15, 4, 5, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	s.randSuffix = func() string { return "bbbbbb" }

	newID, err := s.Create(Options{})
	require.NoError(t, err)

	deleted, err := s.Cleanup(CleanupOptions{MaxAgeDays: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, newID, entries[0].ID)

	_, err = s.Info(oldID)
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestCleanup_NoLimits(t *testing.T) {
	dir := projectFixture(t)
	s := newTestStore(t, dir)

	_, err := s.Create(Options{})
	require.NoError(t, err)

	deleted, err := s.Cleanup(CleanupOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestNewID_Format(t *testing.T) {
	s := newTestStore(t, t.TempDir())

	id := s.newID()
	assert.Equal(t, "backup-2026-01-02T15-04-06-000Z-aaaaaa", id)
}
