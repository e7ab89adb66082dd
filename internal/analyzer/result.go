package analyzer

// Complexity levels derived from the complexity score.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Migration approaches, mapped 1:1 from complexity.
const (
	ApproachDirect      = "direct"
	ApproachIncremental = "incremental"
	ApproachCareful     = "careful"
)

// Result describes everything the analyzer learned about a project.
// Every Analyze call produces a fresh Result owned by the caller; there is
// no shared state between runs, and re-analyzing an unchanged directory
// yields a structurally identical Result.
type Result struct {
	ProjectPath string `json:"projectPath"`
	ProjectName string `json:"projectName"`
	Version     string `json:"version"`

	// Detected stack
	Framework        string `json:"framework"`
	FrameworkVersion string `json:"frameworkVersion"`
	UILibrary        string `json:"uiLibrary"`
	StateManagement  string `json:"stateManagement"`
	Backend          string `json:"backend"`
	Database         string `json:"database"`
	BuildTool        string `json:"buildTool"`
	PackageManager   string `json:"packageManager"`
	TestFramework    string `json:"testFramework"`
	E2EFramework     string `json:"e2eFramework"`
	UsesTypeScript   bool   `json:"usesTypeScript"`
	CSSFramework     string `json:"cssFramework"`

	// Entrypoint inspection (substring search, not an AST)
	VueAppPattern string `json:"vueAppPattern,omitempty"`
	UsesPinia     bool   `json:"usesPinia"`
	UsesVuetify   bool   `json:"usesVuetify"`

	// Inventory
	Dependencies    map[string]string        `json:"dependencies"`
	DevDependencies map[string]string        `json:"devDependencies"`
	Scripts         map[string]string        `json:"scripts"`
	ConfigFiles     []string                 `json:"configFiles"`
	SourceStructure map[string]DirectoryInfo `json:"sourceStructure"`

	// Derived
	ProjectType         string   `json:"projectType"`
	MigrationComplexity string   `json:"migrationComplexity"`
	ComplexityScore     int      `json:"complexityScore"`
	ComplexityFactors   []string `json:"complexityFactors"`
	RecommendedModules  []string `json:"recommendedModules"`
	PotentialIssues     []string `json:"potentialIssues"`
	MigrationStrategy   Strategy `json:"migrationStrategy"`
}

// DirectoryInfo summarizes one conventional source directory, one level deep.
type DirectoryInfo struct {
	FileCount      int      `json:"fileCount"`
	Subdirectories []string `json:"subdirectories"`
	Extensions     []string `json:"extensions"`
	HasIndexFile   bool     `json:"hasIndexFile"`
}

// Strategy is the suggested migration plan for a project.
type Strategy struct {
	Approach       string   `json:"approach"`
	Phases         []string `json:"phases"`
	EstimatedTime  string   `json:"estimatedTime"`
	Risks          []string `json:"risks"`
	BackupRequired bool     `json:"backupRequired"`
}

// TotalDependencies returns the combined count of runtime and dev deps.
func (r *Result) TotalDependencies() int {
	return len(r.Dependencies) + len(r.DevDependencies)
}

// MergedDependencies returns runtime and dev dependencies in one map.
// Runtime dependencies win on name collisions.
func (r *Result) MergedDependencies() map[string]string {
	merged := make(map[string]string, r.TotalDependencies())
	for name, version := range r.DevDependencies {
		merged[name] = version
	}
	for name, version := range r.Dependencies {
		merged[name] = version
	}
	return merged
}
