package migrator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jezweb/flow-state-dev/internal/analyzer"
)

// Phase names, in execution order. Phase errors are tagged with these.
const (
	PhasePreMigration  = "pre-migration"
	PhaseDependencies  = "dependencies"
	PhaseConfiguration = "configuration"
	PhaseFileStructure = "file-structure"
	PhaseSourceCode    = "source-code"
	PhasePostMigration = "post-migration"
)

// PhaseContext is handed to every transformer hook.
type PhaseContext struct {
	Analysis    *analyzer.Result
	ProjectPath string
	DryRun      bool
	Verbose     bool
	Logger      zerolog.Logger
}

// Transformer is a per-stack rewrite strategy. Implementations opt into
// individual phases by implementing the corresponding hook interface
// below; a phase whose hook is not implemented is skipped with a log
// entry, never an error.
type Transformer interface {
	Name() string
}

// PreMigrator runs before any project files are touched.
type PreMigrator interface {
	MigratePreMigration(ctx context.Context, pc *PhaseContext) error
}

// DependencyMigrator rewrites package.json dependencies and scripts.
type DependencyMigrator interface {
	MigrateDependencies(ctx context.Context, pc *PhaseContext) error
}

// ConfigurationMigrator rewrites build and tool configuration files.
type ConfigurationMigrator interface {
	MigrateConfiguration(ctx context.Context, pc *PhaseContext) error
}

// FileStructureMigrator reorganizes directories and file layout.
type FileStructureMigrator interface {
	MigrateFileStructure(ctx context.Context, pc *PhaseContext) error
}

// SourceCodeMigrator transforms source files.
type SourceCodeMigrator interface {
	MigrateSourceCode(ctx context.Context, pc *PhaseContext) error
}

// PostMigrator runs after all other phases, for finishing touches.
type PostMigrator interface {
	MigratePostMigration(ctx context.Context, pc *PhaseContext) error
}

// phase binds a phase name to its hook dispatch. invoke returns false
// when the transformer does not implement the hook.
type phase struct {
	name   string
	invoke func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error)
}

// phases is the fixed execution order. Each entry type-asserts its hook;
// the six hooks stay independent so transformers implement any subset.
var phases = []phase{
	{PhasePreMigration, func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error) {
		if h, ok := t.(PreMigrator); ok {
			return true, h.MigratePreMigration(ctx, pc)
		}
		return false, nil
	}},
	{PhaseDependencies, func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error) {
		if h, ok := t.(DependencyMigrator); ok {
			return true, h.MigrateDependencies(ctx, pc)
		}
		return false, nil
	}},
	{PhaseConfiguration, func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error) {
		if h, ok := t.(ConfigurationMigrator); ok {
			return true, h.MigrateConfiguration(ctx, pc)
		}
		return false, nil
	}},
	{PhaseFileStructure, func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error) {
		if h, ok := t.(FileStructureMigrator); ok {
			return true, h.MigrateFileStructure(ctx, pc)
		}
		return false, nil
	}},
	{PhaseSourceCode, func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error) {
		if h, ok := t.(SourceCodeMigrator); ok {
			return true, h.MigrateSourceCode(ctx, pc)
		}
		return false, nil
	}},
	{PhasePostMigration, func(t Transformer, ctx context.Context, pc *PhaseContext) (bool, error) {
		if h, ok := t.(PostMigrator); ok {
			return true, h.MigratePostMigration(ctx, pc)
		}
		return false, nil
	}},
}
