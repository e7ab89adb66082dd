package main

import (
	"os"

	"github.com/jezweb/flow-state-dev/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.AnalyzeCmd())
	rootCmd.AddCommand(commands.MigrateCmd())
	rootCmd.AddCommand(commands.BackupCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
