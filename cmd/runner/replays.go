package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/replay"
	"github.com/vovakirdan/tui-runner/internal/sim"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagReplayLimit  int
	flagReplayDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List journaled runs",
	Long: `Show the most recent runs recorded with --record.

Examples:
  runner replays
  runner replays --limit 50`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled run and compare the outcome",
	Long: `Feed the recorded frames of a run through a fresh session built from
the config it was recorded with, and report whether it ends the same way.

Examples:
  runner replay 0b8f6c1e-...
  runner replay 0b8f6c1e-... --parallel 4
  runner replay 0b8f6c1e-... --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Number of runs to show")
	replayCmd.Flags().IntVar(&flagSimWorkers, "parallel", 1, "Worker goroutines per scheduler tier")
	replayCmd.Flags().BoolVar(&flagReplayDelete, "delete", false, "Delete the run instead of replaying it")
}

func openJournal() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run journal: %v", err)
	}
	return store
}

func runReplays(_ *cobra.Command, _ []string) {
	store := openJournal()
	defer store.Close()

	runs, err := store.RecentRuns(flagReplayLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play --record' to journal a run.")
		return
	}

	fmt.Printf("  %-36s  %-16s  %-7s  %-9s  %s\n", "ID", "Started", "Frames", "Time", "Outcome")
	fmt.Printf("  %-36s  %-16s  %-7s  %-9s  %s\n", "--", "-------", "------", "----", "-------")
	for _, r := range runs {
		outcome := "survived"
		if r.Terminated {
			outcome = fmt.Sprintf("hit @%d", r.TerminatedFrame)
		}
		fmt.Printf("  %-36s  %-16s  %-7d  %-9s  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Frames,
			fmt.Sprintf("%.2fs", r.SimSeconds), outcome)
	}
}

func runReplay(_ *cobra.Command, args []string) {
	id := args[0]

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openJournal()
	defer store.Close()

	if flagReplayDelete {
		if err := store.DeleteRun(id); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("deleted run %s\n", id)
		return
	}

	res, err := replay.Verify(store, id, sim.WithParallel(flagSimWorkers))
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	logger.Debug("replay verified", "run", id, "frames", res.Frames, "match", res.Match())

	fmt.Printf("recorded: %d frames, terminated=%v at frame %d\n",
		res.Run.Frames, res.Run.Terminated, res.Run.TerminatedFrame)
	fmt.Printf("replayed: %d frames, terminated=%v at frame %d\n",
		res.Frames, res.Terminated, res.TerminatedFrame)
	if !res.Match() {
		store.Close()
		fail("replay diverged from the recording")
	}
	fmt.Println("match")
}
