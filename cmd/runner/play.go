package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagWatch    bool
	flagRecord   bool
	flagHold     int
	flagDuckHold int
	flagParallel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a runner session in this terminal.

Controls:
  Space/Up/W  - Jump
  Down/S      - Duck (fast fall while airborne)
  P/Esc       - Pause
  R           - Restart (after the run ends)
  Q/Ctrl+C    - Quit

Examples:
  runner play
  runner play --difficulty easy
  runner play --config ./runner.yaml --watch
  runner play --record`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config on change (applies on restart)")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Journal each run for replay")
	playCmd.Flags().IntVar(&flagHold, "hold-ms", 150, "How long a Jump press counts as held, in milliseconds")
	playCmd.Flags().IntVar(&flagDuckHold, "duck-hold-ms", 500, "How long a Duck press counts as held; keep above the terminal's key-repeat delay")
	playCmd.Flags().IntVar(&flagParallel, "parallel", 1, "Worker goroutines per scheduler tier")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, preset, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		HoldWindow:     durationMS(flagHold),
		DuckHoldWindow: durationMS(flagDuckHold),
		Parallel:       flagParallel,
		Preset:         preset,
		Logger:         logger,
	}

	if flagWatch {
		if flagConfig == "" {
			fail("--watch needs --config")
		}
		watcher, err := config.NewWatcher(flagConfig)
		if err != nil {
			fail("cannot watch config: %v", err)
		}
		defer watcher.Close()
		opts.Watcher = watcher
	}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		} else {
			opts.Store = store
			opts.Record = true
		}
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running session: %v", runErr)
	}
}
