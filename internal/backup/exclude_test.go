package backup

import "testing"

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"dist", "dist", true},
		{"dist", "distribution", false},
		{"*.log", "debug.log", true},
		{"*.log", "log", false},
		{"*.log", "logger.js", false},
		{"tmp*", "tmp-build", true},
		{"tmp*", "mytmp", false},
		{"a*b", "ab", true},
		{"a*b", "a-long-b", true},
		{"a*b", "ba", false},
		{"a*b", "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			p := compilePattern(tt.pattern)
			if got := p.matches(tt.name); got != tt.want {
				t.Errorf("pattern %q against %q = %v, want %v", tt.pattern, tt.name, got, tt.want)
			}
		})
	}
}

func TestExcluder_Defaults(t *testing.T) {
	e := newExcluder(Options{})

	for _, name := range []string{"node_modules", ".git", DirName, "dist", "build", "error.log"} {
		if !e.excluded(name) {
			t.Errorf("%s should be excluded by default", name)
		}
	}
	for _, name := range []string{"src", "package.json", "main.js"} {
		if e.excluded(name) {
			t.Errorf("%s should not be excluded", name)
		}
	}
}

func TestExcluder_OptIns(t *testing.T) {
	e := newExcluder(Options{IncludeNodeModules: true, IncludeGit: true})

	if e.excluded("node_modules") {
		t.Error("node_modules should be kept when opted in")
	}
	if e.excluded(".git") {
		t.Error(".git should be kept when opted in")
	}
	if !e.excluded("dist") {
		t.Error("dist stays excluded regardless of opt-ins")
	}
}

func TestExcluded_DefaultSet(t *testing.T) {
	if !Excluded("node_modules") {
		t.Error("Excluded should apply the default set")
	}
	if Excluded("src") {
		t.Error("src should pass the default set")
	}
}
