package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jezweb/flow-state-dev/internal/backup"
	"github.com/jezweb/flow-state-dev/internal/input"
	"github.com/jezweb/flow-state-dev/internal/output"
	"github.com/jezweb/flow-state-dev/internal/snapdiff"
)

// BackupCmd creates the backup command with subcommands
func BackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage project snapshots",
		Long: `Create, list, restore, and prune point-in-time snapshots of the
project. Snapshots live under .fsd-backups/ inside the project.

Examples:
  fsd backup create -d "before refactor"
  fsd backup list
  fsd backup diff backup-2025-...   # what changed since the snapshot
  fsd backup restore backup-2025-...
  fsd backup cleanup`,
	}

	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupListCmd())
	cmd.AddCommand(backupInfoCmd())
	cmd.AddCommand(backupRestoreCmd())
	cmd.AddCommand(backupDeleteCmd())
	cmd.AddCommand(backupCleanupCmd())
	cmd.AddCommand(backupDiffCmd())

	return cmd
}

// backupStore builds a store for the project in the current directory.
func backupStore() *backup.Store {
	dir, err := projectDir(nil)
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
	_, logger, err := setup(dir)
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
	return backup.NewStore(dir, logger)
}

func backupCreateCmd() *cobra.Command {
	var (
		description        string
		includeNodeModules bool
		includeGit         bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the current project state",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store := backupStore()

			id, err := store.Create(backup.Options{
				Description:        description,
				IncludeNodeModules: includeNodeModules,
				IncludeGit:         includeGit,
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success("Created backup: " + id)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Backup description")
	cmd.Flags().BoolVar(&includeNodeModules, "include-node-modules", false, "Include node_modules in the snapshot")
	cmd.Flags().BoolVar(&includeGit, "include-git", false, "Include .git in the snapshot")

	return cmd
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all snapshots",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := backupStore().List()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if len(entries) == 0 {
				output.Info("No backups yet")
				return
			}

			output.Info(fmt.Sprintf("%d backup(s):", len(entries)))
			for _, entry := range entries {
				output.Step(fmt.Sprintf("%s  %s  %d files, %s",
					entry.ID,
					entry.Timestamp.Format("2006-01-02 15:04"),
					entry.FileCount,
					formatSize(entry.TotalSize)))
				if entry.Description != "" {
					output.Step("    " + entry.Description)
				}
			}
		},
	}
}

func backupInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <backup-id>",
		Short: "Show full metadata for one snapshot",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			meta, err := backupStore().Info(args[0])
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Info(meta.ID)
			output.Step("Created:     " + meta.Timestamp.Format("2006-01-02 15:04:05"))
			output.Step("Description: " + meta.Description)
			output.Step(fmt.Sprintf("Files:       %d (%s)", meta.FileCount, formatSize(meta.TotalSize)))
			if verbose {
				for _, f := range meta.Files {
					output.Step("  " + f)
				}
			}
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	var (
		yes         bool
		noPreBackup bool
	)

	cmd := &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Restore the project from a snapshot",
		Long: `Replaces the entire project tree with the snapshot contents. By
default the current state is snapshotted first so the restore itself can
be undone.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := args[0]

			if !yes && !input.Confirm(
				fmt.Sprintf("Restore %s? This overwrites the current project state", id), false) {
				output.Info("Restore cancelled")
				os.Exit(1)
			}

			err := backupStore().Restore(id, backup.RestoreOptions{
				ConfirmOverwrite:    true,
				CreateCurrentBackup: !noPreBackup,
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success("Restored backup: " + id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&noPreBackup, "no-pre-backup", false, "Do not snapshot the current state before restoring")

	return cmd
}

func backupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <backup-id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := backupStore().Delete(args[0]); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			output.Success("Deleted backup: " + args[0])
		},
	}
}

func backupCleanupCmd() *cobra.Command {
	var (
		maxAge   int
		maxCount int
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Prune old snapshots",
		Long: `Deletes snapshots older than the age limit or beyond the count limit.
Either trigger alone is enough to delete a snapshot. Defaults come from
fsd.yml (backup.max_age_days, backup.max_count).`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			dir, err := projectDir(nil)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			cfg, logger, err := setup(dir)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			opts := backup.CleanupOptions{
				MaxAgeDays: cfg.Backup.MaxAgeDays,
				MaxCount:   cfg.Backup.MaxCount,
			}
			if cmd.Flags().Changed("max-age") {
				opts.MaxAgeDays = maxAge
			}
			if cmd.Flags().Changed("max-count") {
				opts.MaxCount = maxCount
			}

			deleted, err := backup.NewStore(dir, logger).Cleanup(opts)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success(fmt.Sprintf("Deleted %d backup(s)", deleted))
		},
	}

	cmd.Flags().IntVar(&maxAge, "max-age", 0, "Delete backups older than this many days")
	cmd.Flags().IntVar(&maxCount, "max-count", 0, "Keep at most this many backups")

	return cmd
}

func backupDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <backup-id>",
		Short: "Show what changed since a snapshot",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := args[0]
			store := backupStore()

			if _, err := store.Info(id); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			dir, err := projectDir(nil)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			report, err := snapdiff.Compare(dir, store.SnapshotPath(id))
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if err := snapdiff.Show(report, id); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
