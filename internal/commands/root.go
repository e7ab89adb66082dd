package commands

import (
	"github.com/spf13/cobra"

	"github.com/jezweb/flow-state-dev/internal/output"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// verbose is shared by all commands through the persistent flag.
var verbose bool

// RootCmd creates and returns the root command for the fsd CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsd",
		Short: "Migrate web projects onto the Flow State Dev stack",
		Long: `fsd inspects an existing web project, scores how risky the migration
will be, takes a full safety snapshot, and applies the transformation in
discrete phases with rollback support.

Common workflows:
  fsd analyze            # Inspect the current project
  fsd migrate --dry-run  # Preview the migration
  fsd migrate            # Migrate with backup and confirmation
  fsd backup list        # Manage snapshots`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
