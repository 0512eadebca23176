package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// loadConfig resolves --config and --difficulty into a runner config.
// The preset is returned too so hosts can apply it to reloads.
func loadConfig() (config.RunnerConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, cfg.Validate()
}

// newLogger builds the process logger from --log-level and --log-file.
// fallback receives logs when no file is given; pass io.Discard when the
// terminal is owned by the UI.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "runner",
	})
	log.SetDefault(logger)
	return logger, closeFn, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func durationMS(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
