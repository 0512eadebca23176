package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/replay"
	"github.com/vovakirdan/tui-runner/internal/sim"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagJumpAt     []string
	flagDuckAt     []string
	flagDt         float64
	flagDuration   float64
	flagSimWorkers int
	flagTrace      bool
	flagSimRecord  bool
	flagProfile    string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session with scripted input",
	Long: `Drive a session without a terminal UI. Each --jump-at or --duck-at
takes a time in seconds ("5.875", held for one frame) or a window
("2-2.5", held for every frame overlapping it).

Examples:
  runner sim --duration 10
  runner sim --jump-at 5.875 --dt 0.03125 --trace
  runner sim --jump-at 5.5 --duck-at 6.2-6.4 --record
  runner sim --duration 600 --parallel 4 --profile cpu`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringSliceVar(&flagJumpAt, "jump-at", nil, "Times or windows to hold Jump")
	simCmd.Flags().StringSliceVar(&flagDuckAt, "duck-at", nil, "Times or windows to hold Duck")
	simCmd.Flags().Float64Var(&flagDt, "dt", 0, "Seconds per frame (default 1/--fps)")
	simCmd.Flags().Float64Var(&flagDuration, "duration", 30, "Simulated seconds to run unless the session ends first")
	simCmd.Flags().IntVar(&flagSimWorkers, "parallel", 1, "Worker goroutines per scheduler tier")
	simCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print one line per frame")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Journal the run for replay")
	simCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile: cpu or mem")
}

func runSim(_ *cobra.Command, _ []string) {
	if err := simulate(os.Stdout); err != nil {
		fail("%v", err)
	}
}

// simulate runs the headless session and writes its report to w.
// Errors return here so the profiler and log file are flushed before exit.
func simulate(w io.Writer) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown --profile %q (cpu, mem)", flagProfile)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := replay.ParseScript(flagJumpAt, flagDuckAt)
	if err != nil {
		return err
	}

	dt := flagDt
	if dt <= 0 {
		dt = 1 / float64(max(flagFPS, 1))
	}
	frames := int(math.Ceil(flagDuration / dt))

	session, err := sim.NewSession(cfg, sim.WithLogger(logger), sim.WithParallel(flagSimWorkers))
	if err != nil {
		return err
	}
	rec := replay.NewRecorder(session)

	var res sim.StepResult
	prev := 0.0
	for range frames {
		in := script.Input(prev, prev+dt)
		res, err = rec.Step(sim.FrameInput{Elapsed: dt, Input: in})
		if err != nil {
			return err
		}
		prev = res.Snapshot.Time

		if flagTrace {
			p := res.Snapshot.Player
			fmt.Fprintf(w, "%6d  t=%8.4f  y=%8.3f  v=%8.3f  %-8s  obstacles=%d  input=%s\n",
				res.Snapshot.Frame, res.Snapshot.Time, p.Box.Center.Y, p.Velocity, p.Ground,
				len(res.Snapshot.Obstacles), in)
		}
		if res.Terminated {
			break
		}
	}

	spawned, despawned := session.Stats()
	fmt.Fprintf(w, "frames: %d  time: %.4fs  obstacles spawned: %d  despawned: %d\n",
		res.Snapshot.Frame, res.Snapshot.Time, spawned, despawned)
	if res.Terminated {
		fmt.Fprintf(w, "collision with %v at frame %d\n", res.Hit, res.Snapshot.Frame)
	} else {
		fmt.Fprintln(w, "survived")
	}

	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening run journal: %w", err)
		}
		defer store.Close()
		id, err := rec.Finish(store)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Fprintf(w, "run saved: %s\n", id)
	}
	return nil
}
