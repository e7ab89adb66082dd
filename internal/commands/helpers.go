package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jezweb/flow-state-dev/internal/config"
	"github.com/jezweb/flow-state-dev/internal/logging"
)

// projectDir resolves the optional positional path argument to an
// absolute project directory. Default is the current directory.
func projectDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve project path %s: %w", dir, err)
	}
	return abs, nil
}

// setup loads tool configuration from the project directory and builds
// the logger from it.
func setup(dir string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	logger := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Verbose: verbose,
	})

	return cfg, logger, nil
}
