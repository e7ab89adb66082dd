package backup

import (
	"io"
	"os"
	"path/filepath"
)

// copyTree recursively copies the project tree at src into dst, skipping
// names matched by the excluder at any depth. Regular files are recorded
// in the metadata as paths relative to the project root.
func copyTree(src, dst string, ex *excluder, meta *Metadata) error {
	return copyDir(src, dst, "", ex, meta)
}

func copyDir(src, dst, rel string, ex *excluder, meta *Metadata) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if ex.excluded(name) {
			continue
		}

		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)
		entryRel := name
		if rel != "" {
			entryRel = rel + "/" + name
		}

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath, entryRel, ex, meta); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			// Symlinks and other irregular entries are not snapshotted.
			continue
		}

		size, err := copyFile(srcPath, dstPath)
		if err != nil {
			return err
		}

		meta.Files = append(meta.Files, entryRel)
		meta.FileCount++
		meta.TotalSize += size
	}

	return nil
}

// copyEntry copies one directory entry (file or directory tree) without
// exclusion filtering. Used by restore.
func copyEntry(src, dst string, entry os.DirEntry) error {
	if entry.IsDir() {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return err
		}
		children, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := copyEntry(filepath.Join(src, child.Name()), filepath.Join(dst, child.Name()), child); err != nil {
				return err
			}
		}
		return nil
	}

	if !entry.Type().IsRegular() {
		return nil
	}
	_, err := copyFile(src, dst)
	return err
}

func copyFile(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return written, err
}
