package migrator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// report is the serialized shape of a migration run.
type report struct {
	GeneratedAt time.Time `json:"generatedAt"`
	ProjectPath string    `json:"projectPath"`
	Options     Options   `json:"options"`
	Result      *Result   `json:"result"`
}

// WriteReport serializes the run (options, analysis, log) as JSON to w.
func (m *Migrator) WriteReport(w io.Writer, result *Result) error {
	rep := report{
		GeneratedAt: time.Now().UTC(),
		ProjectPath: m.projectPath,
		Options:     m.opts,
		Result:      result,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode migration report: %w", err)
	}
	return nil
}

// ExportReport writes the migration report to a file. In dry-run mode
// callers typically print to stdout instead via WriteReport.
func (m *Migrator) ExportReport(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	return m.WriteReport(f, result)
}
