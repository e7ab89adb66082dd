// Package snapdiff compares a backup snapshot against the current working
// tree and reports which files were added, removed, or modified since the
// snapshot was taken.
//
// Comparison is file-level: sizes are checked first, contents only when
// sizes match. Both sides skip the default backup exclusion set so
// node_modules and build output never show up as churn.
package snapdiff

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jezweb/flow-state-dev/internal/backup"
)

// Report lists the differences between a snapshot and the working tree.
// Paths are relative to the project root, sorted.
type Report struct {
	Added    []string // in the working tree but not the snapshot
	Removed  []string // in the snapshot but not the working tree
	Modified []string // present in both with different content
}

// Empty reports whether the snapshot and the working tree are identical.
func (r *Report) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Total returns the number of differing files.
func (r *Report) Total() int {
	return len(r.Added) + len(r.Removed) + len(r.Modified)
}

// Compare diffs the snapshot at snapshotDir against the project tree.
func Compare(projectPath, snapshotDir string) (*Report, error) {
	snapFiles, err := collectFiles(snapshotDir, true)
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	workFiles, err := collectFiles(projectPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	report := &Report{}

	for rel := range workFiles {
		if _, ok := snapFiles[rel]; !ok {
			report.Added = append(report.Added, rel)
		}
	}
	for rel, snapSize := range snapFiles {
		workSize, ok := workFiles[rel]
		if !ok {
			report.Removed = append(report.Removed, rel)
			continue
		}
		if snapSize != workSize {
			report.Modified = append(report.Modified, rel)
			continue
		}
		same, err := sameContent(
			filepath.Join(snapshotDir, filepath.FromSlash(rel)),
			filepath.Join(projectPath, filepath.FromSlash(rel)),
		)
		if err != nil {
			return nil, err
		}
		if !same {
			report.Modified = append(report.Modified, rel)
		}
	}

	sort.Strings(report.Added)
	sort.Strings(report.Removed)
	sort.Strings(report.Modified)

	return report, nil
}

// collectFiles maps relative slash paths to file sizes. Snapshot scans
// additionally skip the snapshot's own metadata file.
func collectFiles(root string, isSnapshot bool) (map[string]int64, error) {
	files := map[string]int64{}
	err := walk(root, "", isSnapshot, files)
	return files, err
}

func walk(dir, rel string, isSnapshot bool, files map[string]int64) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if backup.Excluded(name) {
			continue
		}
		if isSnapshot && rel == "" && name == "backup-metadata.json" {
			continue
		}

		entryRel := name
		if rel != "" {
			entryRel = rel + "/" + name
		}

		if entry.IsDir() {
			if err := walk(filepath.Join(dir, name), entryRel, isSnapshot, files); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		files[entryRel] = info.Size()
	}

	return nil
}

func sameContent(a, b string) (bool, error) {
	dataA, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	dataB, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(dataA, dataB), nil
}
