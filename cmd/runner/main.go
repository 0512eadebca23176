// runner is a side-scrolling runner simulation with terminal, SSH and
// headless hosts.
//
// Usage:
//
//	runner play              - Play in this terminal
//	runner serve             - Start SSH server for remote play
//	runner sim               - Run a headless session with scripted input
//	runner replays           - List journaled runs
//	runner replay <id>       - Re-simulate a journaled run and compare
//	runner config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Load a custom runner.yaml
//	--difficulty <level>  - Apply a preset: easy, normal, hard
//	--db <path>           - Set run journal path (default: ~/.runner/runs.db)
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner - jump over obstacles in your terminal",
	Long: `Runner is a side-scrolling runner simulation. Obstacles slide in from
the right at a fixed rhythm; jump over them or the run ends.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Headless run with scripted input
  replays  - List journaled runs
  replay   - Re-simulate a journaled run
  config   - Print the effective configuration

Examples:
  runner play
  runner play --difficulty hard --record
  runner sim --jump-at 5.875 --duration 8
  runner serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
