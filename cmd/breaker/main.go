// breaker is a terminal block breaker: bounce the ball off your paddle,
// clear the blocks, catch the falling power-ups.
//
// Usage:
//
//	breaker play             - Play in the current terminal
//	breaker scores           - Show the best runs
//	breaker serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.breaker/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Block breaker for your terminal",
	Long: `Breaker is a terminal block breaker. Keep the ball in play, clear
every block to advance, and catch the falling power-ups.

Controls:
  A/D, arrows, H/L  - Move paddle (or just use the mouse)
  Space             - Launch the ball
  P                 - Pause
  R                 - Retry after game over
  Q/Ctrl+C          - Quit

Examples:
  breaker play
  breaker play --difficulty hard
  breaker scores
  breaker serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breaker/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
