package analyzer

import "testing"

func TestMajorVersion(t *testing.T) {
	tests := []struct {
		version string
		want    int
	}{
		{"^3.4.0", 3},
		{"~2.7.14", 2},
		{">=18.2.0", 18},
		{"3", 3},
		{"", 0},
		{"latest", 0},
	}

	for _, tt := range tests {
		if got := majorVersion(tt.version); got != tt.want {
			t.Errorf("majorVersion(%q) = %d, want %d", tt.version, got, tt.want)
		}
	}
}

func TestFirstMatch_RespectsRuleOrder(t *testing.T) {
	deps := map[string]string{
		"vue":   "^3.4.0",
		"react": "^18.2.0",
	}

	if got := firstMatch(deps, frameworkRules); got != "vue" {
		t.Errorf("firstMatch = %q, want vue (first rule wins)", got)
	}
}

func TestClassifyStack_DevDependenciesCount(t *testing.T) {
	r := &Result{
		Dependencies:    map[string]string{"vue": "^3.4.0"},
		DevDependencies: map[string]string{"vitest": "^1.0.0", "cypress": "^13.0.0"},
	}

	classifyStack(r)

	if r.TestFramework != "vitest" {
		t.Errorf("TestFramework = %q, want vitest", r.TestFramework)
	}
	if r.E2EFramework != "cypress" {
		t.Errorf("E2EFramework = %q, want cypress", r.E2EFramework)
	}
}
