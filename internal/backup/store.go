// Package backup creates, lists, restores, and prunes point-in-time
// snapshots of a project directory.
//
// Snapshots live under <project>/.fsd-backups/, one directory per backup,
// each carrying its full metadata. A shared index.json summarizes all
// snapshots for fast listing. The store keeps snapshot directories and the
// index consistent: the index is only updated after a fully successful
// copy, and a failed copy removes its partial snapshot directory.
//
// The index is read-modify-written without cross-process locking; running
// two fsd processes against the same project is unsupported. Index writes
// go through a temp file and rename so a crash never leaves a truncated
// index behind.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrBackupNotFound is returned when a backup id has no snapshot on disk.
var ErrBackupNotFound = errors.New("backup not found")

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Store manages the snapshots of one project.
type Store struct {
	projectPath string
	root        string
	logger      zerolog.Logger

	now        func() time.Time
	randSuffix func() string
}

// NewStore creates a Store for the project at projectPath. Snapshots are
// kept in <projectPath>/.fsd-backups/.
func NewStore(projectPath string, logger zerolog.Logger) *Store {
	return &Store{
		projectPath: projectPath,
		root:        filepath.Join(projectPath, DirName),
		logger:      logger,
		now:         time.Now,
		randSuffix:  randomSuffix,
	}
}

// newID builds a backup id from the current time plus a short random
// suffix, e.g. "backup-2025-01-02T15-04-05-123Z-x7k2pq". Colons and dots
// are replaced so the id is a valid directory name everywhere.
func (s *Store) newID() string {
	ts := s.now().UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return "backup-" + ts + "-" + s.randSuffix()
}

func randomSuffix() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}

// Create snapshots the project tree and returns the new backup id.
// The exclusion set always skips build output and the backup root itself;
// node_modules and .git are skipped unless opted in. If the copy fails,
// the partial snapshot directory is removed and the index is untouched.
func (s *Store) Create(opts Options) (string, error) {
	id := s.newID()
	snapDir := filepath.Join(s.root, id)

	if err := os.MkdirAll(snapDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	meta := &Metadata{
		ID:          id,
		Timestamp:   s.now().UTC(),
		Description: opts.Description,
		ProjectPath: s.projectPath,
		Config:      opts,
	}
	if meta.Description == "" {
		meta.Description = "Manual backup"
	}

	ex := newExcluder(opts)
	if err := copyTree(s.projectPath, snapDir, ex, meta); err != nil {
		os.RemoveAll(snapDir)
		return "", fmt.Errorf("backup copy failed: %w", err)
	}

	if err := writeJSON(filepath.Join(snapDir, metadataFile), meta); err != nil {
		os.RemoveAll(snapDir)
		return "", fmt.Errorf("failed to write backup metadata: %w", err)
	}

	idx, err := s.readIndex()
	if err != nil {
		os.RemoveAll(snapDir)
		return "", err
	}
	idx.Backups = append(idx.Backups, IndexEntry{
		ID:          meta.ID,
		Timestamp:   meta.Timestamp,
		Description: meta.Description,
		FileCount:   meta.FileCount,
		TotalSize:   meta.TotalSize,
	})
	if err := s.writeIndex(idx); err != nil {
		os.RemoveAll(snapDir)
		return "", err
	}

	s.logger.Info().
		Str("backup", id).
		Int("files", meta.FileCount).
		Int64("bytes", meta.TotalSize).
		Msg("backup created")

	return id, nil
}

// Restore replaces the project tree with the contents of a snapshot.
// Everything under the project root except the backup root is deleted
// first. With CreateCurrentBackup set, the current state is snapshotted
// before anything is touched.
func (s *Store) Restore(id string, opts RestoreOptions) error {
	meta, err := s.Info(id)
	if err != nil {
		return err
	}

	if !opts.ConfirmOverwrite {
		return fmt.Errorf("restore of %s aborted: overwrite not confirmed", id)
	}

	if opts.CreateCurrentBackup {
		preID, err := s.Create(Options{
			Description: fmt.Sprintf("Pre-restore backup (before restoring %s)", id),
		})
		if err != nil {
			return fmt.Errorf("failed to create pre-restore backup: %w", err)
		}
		s.logger.Info().Str("backup", preID).Msg("pre-restore backup created")
	}

	// Clear the project root, keeping the backup root itself.
	entries, err := os.ReadDir(s.projectPath)
	if err != nil {
		return fmt.Errorf("failed to read project directory: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == DirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.projectPath, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear %s: %w", entry.Name(), err)
		}
	}

	// Copy the snapshot back, skipping its metadata file.
	snapDir := filepath.Join(s.root, id)
	snapEntries, err := os.ReadDir(snapDir)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	for _, entry := range snapEntries {
		if entry.Name() == metadataFile {
			continue
		}
		src := filepath.Join(snapDir, entry.Name())
		dst := filepath.Join(s.projectPath, entry.Name())
		if err := copyEntry(src, dst, entry); err != nil {
			return fmt.Errorf("failed to restore %s: %w", entry.Name(), err)
		}
	}

	s.logger.Info().
		Str("backup", id).
		Int("files", meta.FileCount).
		Msg("backup restored")

	return nil
}

// SnapshotPath returns the on-disk directory of a snapshot. The caller
// is responsible for checking the id exists (via Info).
func (s *Store) SnapshotPath(id string) string {
	return filepath.Join(s.root, id)
}

// List returns the index entries for all snapshots, oldest first.
// A missing index means no backups.
func (s *Store) List() ([]IndexEntry, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Backups, nil
}

// Info reads the full metadata of one snapshot directly from its
// metadata file.
func (s *Store) Info(id string) (*Metadata, error) {
	path := filepath.Join(s.root, id, metadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, id)
		}
		return nil, fmt.Errorf("failed to read metadata for %s: %w", id, err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("corrupt metadata for %s: %w", id, err)
	}
	return &meta, nil
}

// Delete removes a snapshot directory and its index entry.
func (s *Store) Delete(id string) error {
	snapDir := filepath.Join(s.root, id)
	if _, err := os.Stat(snapDir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrBackupNotFound, id)
	}

	if err := os.RemoveAll(snapDir); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}

	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	kept := idx.Backups[:0]
	for _, entry := range idx.Backups {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	idx.Backups = kept
	return s.writeIndex(idx)
}

// Cleanup prunes old backups and returns the number deleted. Backups are
// sorted newest first; a backup is deleted when it is older than the age
// limit or falls beyond the count limit. Individual delete failures are
// logged as warnings and do not abort the rest of the cleanup.
func (s *Store) Cleanup(opts CleanupOptions) (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	sorted := make([]IndexEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		}
		return sorted[i].ID > sorted[j].ID
	})

	cutoff := s.now().UTC().AddDate(0, 0, -opts.MaxAgeDays)
	deleted := 0
	for i, entry := range sorted {
		tooOld := opts.MaxAgeDays > 0 && entry.Timestamp.Before(cutoff)
		overCount := opts.MaxCount > 0 && i >= opts.MaxCount
		if !tooOld && !overCount {
			continue
		}

		if err := s.Delete(entry.ID); err != nil {
			s.logger.Warn().
				Str("backup", entry.ID).
				Err(err).
				Msg("failed to delete backup during cleanup")
			continue
		}
		deleted++
	}

	return deleted, nil
}

func (s *Store) readIndex() (*index, error) {
	data, err := os.ReadFile(filepath.Join(s.root, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &index{}, nil
		}
		return nil, fmt.Errorf("failed to read backup index: %w", err)
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("corrupt backup index: %w", err)
	}
	return &idx, nil
}

// writeIndex writes through a temp file and rename so a crash mid-write
// never leaves a truncated index.
func (s *Store) writeIndex(idx *index) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create backup root: %w", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup index: %w", err)
	}

	tmp := filepath.Join(s.root, indexFile+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup index: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.root, indexFile)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace backup index: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
