package analyzer

import "fmt"

// buildRecommendations derives the module set to install and warnings the
// user should see before migrating. Module order mirrors the order modules
// are applied during setup.
func buildRecommendations(r *Result) {
	var modules []string

	if r.Framework == "vue" || r.Framework == "" {
		modules = append(modules, "vue-base")
	}

	if r.UILibrary == "vuetify" {
		modules = append(modules, "vuetify")
	}

	switch r.StateManagement {
	case "pinia":
		modules = append(modules, "pinia")
	case "vuex":
		modules = append(modules, "pinia")
		r.PotentialIssues = append(r.PotentialIssues,
			"Vuex detected: state stores should be migrated to Pinia")
	}

	switch r.Backend {
	case "supabase":
		modules = append(modules, "supabase")
	case "firebase":
		modules = append(modules, "firebase")
	}

	if r.CSSFramework == "tailwind" {
		modules = append(modules, "tailwind")
	}

	r.RecommendedModules = modules

	if r.Framework == "vue" && majorVersion(r.FrameworkVersion) == 2 {
		r.PotentialIssues = append(r.PotentialIssues,
			"Vue 2 reached end of life; the Options API may need manual conversion")
	}

	switch r.BuildTool {
	case "webpack", "vue-cli":
		r.PotentialIssues = append(r.PotentialIssues,
			fmt.Sprintf("Build tool migration from %s to Vite is required", r.BuildTool))
	}
}

// buildStrategy maps complexity onto a migration plan. Cross-framework
// migrations get an extra porting phase and an explicit risk entry.
func buildStrategy(r *Result) Strategy {
	strategy := Strategy{
		BackupRequired: true,
	}

	switch r.MigrationComplexity {
	case ComplexityLow:
		strategy.Approach = ApproachDirect
		strategy.EstimatedTime = "1-2 hours"
	case ComplexityMedium:
		strategy.Approach = ApproachIncremental
		strategy.EstimatedTime = "4-8 hours"
	default:
		strategy.Approach = ApproachCareful
		strategy.EstimatedTime = "1-2 days"
	}

	crossFramework := r.Framework != "" && r.Framework != targetFramework

	strategy.Phases = []string{
		"Review analysis and confirm scope",
		"Create full project backup",
		"Update dependencies to target stack",
		"Migrate build and tool configuration",
		"Reorganize file structure",
		"Transform source code",
		"Validate migrated project",
	}
	if crossFramework {
		strategy.Phases = append(strategy.Phases[:6:6],
			fmt.Sprintf("Port %s components to %s", r.Framework, targetFramework),
			"Validate migrated project")
	}

	if crossFramework {
		strategy.Risks = append(strategy.Risks, "Cross-framework migration is complex")
	}
	if r.StateManagement == "vuex" {
		strategy.Risks = append(strategy.Risks, "State management rewrite (Vuex to Pinia)")
	}
	if !r.UsesTypeScript && r.MigrationComplexity == ComplexityHigh {
		strategy.Risks = append(strategy.Risks, "Large untyped codebase increases transform risk")
	}

	return strategy
}
