package backup

import "time"

// DirName is the backup root directory created inside the project.
const DirName = ".fsd-backups"

// indexFile is the shared listing of all snapshots under the backup root.
const indexFile = "index.json"

// metadataFile is the full metadata written inside each snapshot.
const metadataFile = "backup-metadata.json"

// Options configures snapshot creation.
type Options struct {
	IncludeNodeModules bool   `json:"includeNodeModules"`
	IncludeGit         bool   `json:"includeGit"`
	Description        string `json:"description"`
}

// RestoreOptions configures snapshot restoration.
type RestoreOptions struct {
	// ConfirmOverwrite must be set by the caller after confirming with the
	// user; restore refuses to wipe the project without it.
	ConfirmOverwrite bool

	// CreateCurrentBackup snapshots the current state before restoring.
	CreateCurrentBackup bool
}

// CleanupOptions configures backup pruning. Age and count are independent
// triggers: a backup is deleted when either one applies.
type CleanupOptions struct {
	MaxAgeDays int // delete backups older than this many days (0 = no age limit)
	MaxCount   int // keep at most this many backups (0 = no count limit)
}

// Metadata describes one snapshot. It is immutable once written and
// persisted as backup-metadata.json inside the snapshot directory.
type Metadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	ProjectPath string    `json:"projectPath"`
	Config      Options   `json:"config"`
	FileCount   int       `json:"fileCount"`
	TotalSize   int64     `json:"totalSize"`
	Files       []string  `json:"files"`
}

// IndexEntry is the trimmed copy of Metadata kept in the shared index
// (everything except the files list).
type IndexEntry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	FileCount   int       `json:"fileCount"`
	TotalSize   int64     `json:"totalSize"`
}

// index is the on-disk shape of index.json.
type index struct {
	Backups []IndexEntry `json:"backups"`
}
