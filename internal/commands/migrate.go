package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jezweb/flow-state-dev/internal/input"
	"github.com/jezweb/flow-state-dev/internal/migrator"
	"github.com/jezweb/flow-state-dev/internal/output"
	"github.com/jezweb/flow-state-dev/internal/transformers/vue"
)

// MigrateCmd creates the migrate command
func MigrateCmd() *cobra.Command {
	var (
		dryRun     bool
		noBackup   bool
		yes        bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "migrate [path]",
		Short: "Migrate a project onto the Flow State Dev stack",
		Long: `Runs the full migration pipeline: analyze, back up, transform in six
phases, validate. On failure you are offered a rollback to the backup.

Examples:
  fsd migrate --dry-run       # preview without touching files
  fsd migrate                 # migrate with backup and confirmation
  fsd migrate --yes --report migration.json`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir, err := projectDir(args)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			cfg, logger, err := setup(dir)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			opts := migrator.Options{
				DryRun:       dryRun,
				AutoBackup:   cfg.Migrate.AutoBackup && !noBackup,
				ConfirmSteps: cfg.Migrate.ConfirmSteps && !yes,
				Verbose:      verbose,
				Confirm: func(msg string) bool {
					return input.Confirm(msg, false)
				},
				ConfirmRollback: func(msg string) bool {
					return input.Confirm(msg, true)
				},
			}

			m := migrator.New(dir, defaultRegistry(), opts, logger)

			result, err := m.Migrate(context.Background())
			if result != nil && reportPath != "" {
				if exportErr := m.ExportReport(reportPath, result); exportErr != nil {
					output.Warn(exportErr.Error())
				} else {
					output.Verbose("Report written to " + reportPath)
				}
			}
			if result != nil && dryRun && reportPath == "" {
				if writeErr := m.WriteReport(os.Stdout, result); writeErr != nil {
					output.Warn(writeErr.Error())
				}
			}

			switch {
			case err != nil:
				output.Error(err.Error())
				if result != nil && result.State == migrator.StateRolledBack {
					output.Info("Project restored from backup " + result.BackupID)
				}
				os.Exit(1)
			case result != nil && result.State == migrator.StateCancelled:
				output.Info("Migration cancelled")
				os.Exit(1)
			default:
				if dryRun {
					output.Success("Dry run complete, no files were modified")
					return
				}
				output.Success("Migration complete")
				if result.BackupID != "" {
					output.Info("Backup: " + result.BackupID)
				}
				output.Info("Next steps:")
				output.Step("npm install")
				output.Step("npm run dev")
				output.Step(fmt.Sprintf("fsd backup diff %s  # review what changed", result.BackupID))
			}
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the migration without modifying files")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the automatic pre-migration backup")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON migration report to this file")

	return cmd
}

// defaultRegistry wires up the built-in transformers. Additional
// per-stack transformers register here as they are added.
func defaultRegistry() *migrator.Registry {
	registry := migrator.NewRegistry()
	registry.Register("vue", vue.New())
	return registry
}
