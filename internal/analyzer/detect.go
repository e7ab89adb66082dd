package analyzer

import "strings"

// detectionRule maps a dependency name to a canonical stack label.
// Rules within a category are ordered; the first dependency present wins.
type detectionRule struct {
	dep   string
	label string
}

var (
	frameworkRules = []detectionRule{
		{"vue", "vue"},
		{"react", "react"},
		{"@angular/core", "angular"},
		{"svelte", "svelte"},
	}

	uiLibraryRules = []detectionRule{
		{"vuetify", "vuetify"},
		{"quasar", "quasar"},
		{"element-plus", "element-plus"},
		{"ant-design-vue", "ant-design-vue"},
		{"@mui/material", "material-ui"},
		{"@material-ui/core", "material-ui"},
	}

	stateRules = []detectionRule{
		{"pinia", "pinia"},
		{"vuex", "vuex"},
		{"@reduxjs/toolkit", "redux"},
		{"redux", "redux"},
		{"zustand", "zustand"},
	}

	buildToolRules = []detectionRule{
		{"vite", "vite"},
		{"@vitejs/plugin-vue", "vite"},
		{"webpack", "webpack"},
		{"rollup", "rollup"},
		{"@vue/cli-service", "vue-cli"},
		{"@angular/cli", "angular-cli"},
		{"react-scripts", "create-react-app"},
	}

	testRules = []detectionRule{
		{"jest", "jest"},
		{"vitest", "vitest"},
	}

	e2eRules = []detectionRule{
		{"cypress", "cypress"},
		{"playwright", "playwright"},
		{"@playwright/test", "playwright"},
	}

	cssRules = []detectionRule{
		{"tailwindcss", "tailwind"},
		{"bootstrap", "bootstrap"},
		{"bulma", "bulma"},
		{"sass", "sass"},
	}
)

// classifyStack fills the detected-stack fields of the result from the
// merged dependency map.
func classifyStack(r *Result) {
	deps := r.MergedDependencies()

	r.Framework = firstMatch(deps, frameworkRules)
	if r.Framework != "" {
		r.FrameworkVersion = frameworkVersion(r, deps)
	}

	r.UILibrary = firstMatch(deps, uiLibraryRules)
	r.StateManagement = firstMatch(deps, stateRules)
	r.BuildTool = firstMatch(deps, buildToolRules)
	r.TestFramework = firstMatch(deps, testRules)
	r.E2EFramework = firstMatch(deps, e2eRules)
	r.CSSFramework = firstMatch(deps, cssRules)

	// Backend services and databases share a rule table, but prisma and
	// mongoose describe the database rather than the backend service.
	switch {
	case has(deps, "@supabase/supabase-js"):
		r.Backend = "supabase"
	case has(deps, "firebase"):
		r.Backend = "firebase"
	case has(deps, "prisma"), has(deps, "@prisma/client"):
		r.Database = "prisma"
	case has(deps, "mongoose"):
		r.Database = "mongoose"
	}
}

func firstMatch(deps map[string]string, rules []detectionRule) string {
	for _, rule := range rules {
		if has(deps, rule.dep) {
			return rule.label
		}
	}
	return ""
}

func has(deps map[string]string, name string) bool {
	_, ok := deps[name]
	return ok
}

// frameworkVersion returns the declared version string of the detected
// framework dependency.
func frameworkVersion(r *Result, deps map[string]string) string {
	for _, rule := range frameworkRules {
		if rule.label == r.Framework {
			if v, ok := deps[rule.dep]; ok {
				return v
			}
		}
	}
	return ""
}

// majorVersion extracts the leading major version number from a semver
// range string like "^3.4.0" or "~2.7.14". Returns 0 when none is found.
func majorVersion(version string) int {
	version = strings.TrimLeft(version, "^~>=<v ")
	major := 0
	for _, ch := range version {
		if ch < '0' || ch > '9' {
			break
		}
		major = major*10 + int(ch-'0')
	}
	return major
}
