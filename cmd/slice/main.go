// slice is a terminal arcade: slice falling fruit with the mouse, dodge
// bombs, and earn token rewards for good scores.
//
// Usage:
//
//	slice play              - Play right away
//	slice menu              - Start screen with scores and wallet
//	slice serve             - Start SSH server for remote play
//	slice api               - Start the wallet and reward HTTP API
//	slice scores            - Show high scores
//	slice wallet            - Inspect and fund wallets
//	slice list              - List available games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/slice.db)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slice-arcade/internal/games/slice"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagLogFile      string
	flagRewardConfig string
	flagWalletConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slice",
	Short: "Cyber Slice - slice fruit in your terminal",
	Long: `Cyber Slice is a terminal arcade game. Fruit and bombs are launched
from the bottom of the screen; drag the mouse across fruit to slice it and
stay away from the bombs.

Available commands:
  play     - Play right away
  menu     - Start screen with scores and wallet
  serve    - Start SSH server for remote play
  api      - Start the wallet and reward HTTP API
  scores   - View high scores
  wallet   - Inspect and fund wallets
  list     - Show all available games

Examples:
  slice play
  slice play --difficulty hard --free
  slice menu
  slice serve --ssh :2222
  slice api --addr :3001`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/slice.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagRewardConfig, "reward-config", "", "Path to custom reward config YAML")
	rootCmd.PersistentFlags().StringVar(&flagWalletConfig, "wallet-config", "", "Path to custom wallet config YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(walletCmd)
}

// gameID is the game every command runs.
const gameID = slice.ID

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
