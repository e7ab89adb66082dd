package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jezweb/flow-state-dev/internal/analyzer"
	"github.com/jezweb/flow-state-dev/internal/output"
)

// AnalyzeCmd creates the analyze command
func AnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Inspect a project and report its stack and migration complexity",
		Long: `Analyzes the project's dependencies, config files and source layout,
then reports the detected stack, a migration complexity score, and a
suggested migration strategy. The project is never modified.

Example:
  fsd analyze            # analyze the current directory
  fsd analyze ./my-app --json`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir, err := projectDir(args)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			result, err := analyzer.New().Analyze(dir)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				return
			}

			printAnalysis(result)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full analysis as JSON")

	return cmd
}

func printAnalysis(r *analyzer.Result) {
	output.Info(fmt.Sprintf("Project: %s (%s)", r.ProjectName, r.ProjectType))

	stack := []struct{ label, value string }{
		{"Framework", withVersion(r.Framework, r.FrameworkVersion)},
		{"UI library", r.UILibrary},
		{"State", r.StateManagement},
		{"Backend", r.Backend},
		{"Database", r.Database},
		{"Build tool", r.BuildTool},
		{"Package manager", r.PackageManager},
		{"Tests", joinNonEmpty(r.TestFramework, r.E2EFramework)},
		{"CSS", r.CSSFramework},
	}
	for _, item := range stack {
		if item.value != "" {
			output.Step(fmt.Sprintf("%-16s %s", item.label+":", item.value))
		}
	}
	if r.UsesTypeScript {
		output.Step("TypeScript:      yes")
	}

	output.Info(fmt.Sprintf("Migration complexity: %s (score %d)",
		r.MigrationComplexity, r.ComplexityScore))
	for _, factor := range r.ComplexityFactors {
		output.Step(factor)
	}

	output.Info(fmt.Sprintf("Strategy: %s, estimated %s",
		r.MigrationStrategy.Approach, r.MigrationStrategy.EstimatedTime))
	for _, phase := range r.MigrationStrategy.Phases {
		output.Step(phase)
	}

	if len(r.RecommendedModules) > 0 {
		output.Info("Recommended modules: " + strings.Join(r.RecommendedModules, ", "))
	}

	for _, risk := range r.MigrationStrategy.Risks {
		output.Warn(risk)
	}
	for _, issue := range r.PotentialIssues {
		output.Warn(issue)
	}

	if verbose && len(r.SourceStructure) > 0 {
		output.Info("Source structure:")
		dirs := make([]string, 0, len(r.SourceStructure))
		for dir := range r.SourceStructure {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		for _, dir := range dirs {
			info := r.SourceStructure[dir]
			output.Step(fmt.Sprintf("%s/ - %d files, %d subdirs (%s)",
				dir, info.FileCount, len(info.Subdirectories),
				strings.Join(info.Extensions, " ")))
		}
	}
}

func withVersion(name, version string) string {
	if name == "" || version == "" {
		return name
	}
	return name + " " + version
}

func joinNonEmpty(values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
