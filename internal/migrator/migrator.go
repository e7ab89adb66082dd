// Package migrator orchestrates a stack migration: analyze the project,
// take a safety snapshot, run the per-stack transformer through six fixed
// phases, validate the outcome, and offer a rollback when anything fails.
//
// Execution is strictly sequential; at most one backup operation or phase
// is ever in flight. Cancellation is cooperative: the caller can decline
// the pre-migration confirmation (clean stop, no side effects) or decline
// a post-failure rollback (the failure stands and the project is left
// partially migrated, an accepted outcome).
package migrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jezweb/flow-state-dev/internal/analyzer"
	"github.com/jezweb/flow-state-dev/internal/backup"
)

// State is the migrator's position in its run lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateAnalyzing  State = "analyzing"
	StateCancelled  State = "cancelled"
	StateBackingUp  State = "backing-up"
	StateExecuting  State = "executing"
	StateValidating State = "validating"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateRolledBack State = "rolled-back"
)

// ConfirmFunc answers a yes/no question on behalf of the user. The core
// never prompts; the CLI supplies these.
type ConfirmFunc func(message string) bool

// Options configures one migration run.
type Options struct {
	DryRun       bool `json:"dryRun"`
	AutoBackup   bool `json:"autoBackup"`
	ConfirmSteps bool `json:"confirmSteps"`
	Verbose      bool `json:"verbose"`

	// Confirm is asked before the migration starts when ConfirmSteps is
	// set. Nil means proceed. Dry runs never ask.
	Confirm ConfirmFunc `json:"-"`

	// ConfirmRollback is asked after a failure when a backup exists.
	// Nil means leave the failure as-is.
	ConfirmRollback ConfirmFunc `json:"-"`
}

// LogEntry is one append-only migration log record.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// Result is what a migration run produced.
type Result struct {
	Success  bool             `json:"success"`
	State    State            `json:"state"`
	BackupID string           `json:"backupId,omitempty"`
	Analysis *analyzer.Result `json:"analysis,omitempty"`
	Log      []LogEntry       `json:"log"`
}

// PhaseError tags a transformer failure with the phase that raised it.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// Migrator drives one project through a migration. A Migrator is used for
// a single run; its log and state belong to that run.
type Migrator struct {
	projectPath string
	analyzer    *analyzer.Analyzer
	backups     *backup.Store
	registry    *Registry
	opts        Options
	logger      zerolog.Logger

	state State
	log   []LogEntry
}

// New creates a Migrator for the project at projectPath.
func New(projectPath string, registry *Registry, opts Options, logger zerolog.Logger) *Migrator {
	return &Migrator{
		projectPath: projectPath,
		analyzer:    analyzer.New(),
		backups:     backup.NewStore(projectPath, logger),
		registry:    registry,
		opts:        opts,
		logger:      logger,
		state:       StateIdle,
	}
}

// State returns the migrator's current lifecycle state.
func (m *Migrator) State() State { return m.state }

// Log returns the migration log accumulated so far.
func (m *Migrator) Log() []LogEntry { return m.log }

// Migrate runs the full pipeline: analyze, confirm, back up, execute the
// six phases, validate. The returned error is non-nil for fatal failures;
// a declined confirmation is a clean cancellation, not an error.
func (m *Migrator) Migrate(ctx context.Context) (*Result, error) {
	result := &Result{State: StateFailed}
	defer func() {
		result.State = m.state
		result.Log = m.log
	}()

	// Analyze.
	m.setState(StateAnalyzing)
	m.logStep("analysis-started", map[string]any{"projectPath": m.projectPath})

	analysis, err := m.analyzer.Analyze(m.projectPath)
	if err != nil {
		m.fail("analysis", err)
		return result, err
	}
	result.Analysis = analysis
	m.logStep("analysis-complete", map[string]any{
		"projectType": analysis.ProjectType,
		"complexity":  analysis.MigrationComplexity,
		"score":       analysis.ComplexityScore,
	})

	// Resolve the transformer before anything mutates, so an unsupported
	// project type stops the run with zero side effects.
	transformer, err := m.registry.Resolve(analysis.ProjectType)
	if err != nil {
		m.fail("resolve-transformer", err)
		return result, err
	}
	m.logStep("transformer-resolved", map[string]any{"transformer": transformer.Name()})

	// Confirm. Dry runs always proceed without asking.
	if m.opts.ConfirmSteps && !m.opts.DryRun && m.opts.Confirm != nil {
		msg := fmt.Sprintf("Migrate %s (%s, complexity %s)?",
			analysis.ProjectName, analysis.ProjectType, analysis.MigrationComplexity)
		if !m.opts.Confirm(msg) {
			m.setState(StateCancelled)
			m.logStep("cancelled", nil)
			return result, nil
		}
	}
	m.logStep("confirmed", nil)

	// Back up.
	if m.opts.AutoBackup {
		m.setState(StateBackingUp)
		if m.opts.DryRun {
			result.BackupID = "dry-run-backup"
			m.logStep("backup-skipped", map[string]any{"reason": "dry run"})
		} else {
			id, err := m.backups.Create(backup.Options{
				Description: "Pre-migration backup",
			})
			if err != nil {
				m.fail("backup", err)
				return result, err
			}
			result.BackupID = id
			m.logStep("backup-created", map[string]any{"backupId": id})
		}
	}

	// Execute phases.
	if err := m.executeMigration(ctx, transformer, analysis); err != nil {
		m.fail("execution", err)
		m.maybeRollback(result, err)
		return result, err
	}

	// Validate.
	m.setState(StateValidating)
	warnings, err := m.Validate()
	for _, w := range warnings {
		m.logStep("validation-warning", map[string]any{"warning": w})
	}
	if err != nil {
		m.fail("validation", err)
		m.maybeRollback(result, err)
		return result, err
	}
	m.logStep("validation-complete", nil)

	m.setState(StateCompleted)
	m.logStep("migration-complete", nil)
	result.Success = true
	return result, nil
}

// executeMigration runs the six phases in strict order. Any phase error
// aborts all subsequent phases and is tagged with the phase name.
func (m *Migrator) executeMigration(ctx context.Context, t Transformer, analysis *analyzer.Result) error {
	m.setState(StateExecuting)

	pc := &PhaseContext{
		Analysis:    analysis,
		ProjectPath: m.projectPath,
		DryRun:      m.opts.DryRun,
		Verbose:     m.opts.Verbose,
		Logger:      m.logger,
	}

	for _, p := range phases {
		m.logStep("phase-started", map[string]any{"phase": p.name})

		ran, err := p.invoke(t, ctx, pc)
		if err != nil {
			return &PhaseError{Phase: p.name, Err: err}
		}
		if !ran {
			m.logStep("phase-skipped", map[string]any{
				"phase":       p.name,
				"transformer": t.Name(),
			})
			continue
		}
		m.logStep("phase-complete", map[string]any{"phase": p.name})
	}

	return nil
}

// maybeRollback offers a restore after a failure when a real backup
// exists. Declining leaves the project in its partially migrated state.
func (m *Migrator) maybeRollback(result *Result, cause error) {
	if result.BackupID == "" || m.opts.DryRun {
		return
	}
	if m.opts.ConfirmRollback == nil {
		return
	}

	msg := fmt.Sprintf("Migration failed (%v). Restore backup %s?", cause, result.BackupID)
	if !m.opts.ConfirmRollback(msg) {
		m.logStep("rollback-declined", map[string]any{"backupId": result.BackupID})
		return
	}

	err := m.backups.Restore(result.BackupID, backup.RestoreOptions{
		ConfirmOverwrite: true,
	})
	if err != nil {
		m.logStep("rollback-failed", map[string]any{"error": err.Error()})
		m.logger.Error().Err(err).Msg("rollback failed")
		return
	}

	m.setState(StateRolledBack)
	m.logStep("rolled-back", map[string]any{"backupId": result.BackupID})
}

func (m *Migrator) setState(s State) {
	m.state = s
	m.logger.Debug().Str("state", string(s)).Msg("state change")
}

func (m *Migrator) fail(step string, err error) {
	m.setState(StateFailed)
	m.logStep("failed", map[string]any{"step": step, "error": err.Error()})
}

// logStep appends one entry to the migration log. Every major step goes
// through here so the log is a complete trail of the run.
func (m *Migrator) logStep(entryType string, data map[string]any) {
	m.log = append(m.log, LogEntry{
		Timestamp: time.Now().UTC(),
		Type:      entryType,
		Data:      data,
	})
}
