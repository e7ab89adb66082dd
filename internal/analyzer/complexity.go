package analyzer

import "fmt"

// targetFramework is the framework the host tool migrates projects onto.
const targetFramework = "vue"

// Complexity thresholds. Scores at or below lowMax are low, at or below
// mediumMax are medium, everything above is high.
const (
	lowMaxScore    = 3
	mediumMaxScore = 6
)

// scoreComplexity sums weighted factors into ComplexityScore, records each
// factor as a human-readable string, and derives MigrationComplexity.
// The mapping from score to level is pure: the same score always yields
// the same level.
func scoreComplexity(r *Result) {
	score := 0
	var factors []string

	add := func(points int, reason string) {
		score += points
		factors = append(factors, fmt.Sprintf("%s (+%d)", reason, points))
	}

	switch r.Framework {
	case "vue":
		if majorVersion(r.FrameworkVersion) == 2 {
			add(3, "Vue 2 requires upgrade to Vue 3")
		} else {
			add(1, "Vue 3 framework")
		}
	case "react":
		add(5, "React framework")
	}

	if r.Framework != "" && r.Framework != targetFramework {
		add(2, "Cross-framework migration required")
	}

	switch r.BuildTool {
	case "vite":
		add(1, "Vite build tool")
	case "vue-cli":
		add(2, "Vue CLI build tool")
	case "webpack":
		add(3, "Webpack build tool")
	}

	if r.TotalDependencies() > 20 {
		add(2, fmt.Sprintf("Large dependency count (%d)", r.TotalDependencies()))
	}

	if len(r.ConfigFiles) > 10 {
		add(1, fmt.Sprintf("Many config files (%d)", len(r.ConfigFiles)))
	}

	if r.UsesTypeScript {
		add(1, "TypeScript configuration")
	}

	r.ComplexityScore = score
	r.ComplexityFactors = factors
	r.MigrationComplexity = complexityLevel(score)
}

// complexityLevel maps a score to a complexity level.
func complexityLevel(score int) string {
	switch {
	case score <= lowMaxScore:
		return ComplexityLow
	case score <= mediumMaxScore:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}
