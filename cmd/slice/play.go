package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slice-arcade/internal/audio"
	"github.com/vovakirdan/slice-arcade/internal/core"
	"github.com/vovakirdan/slice-arcade/internal/games/slice"
	"github.com/vovakirdan/slice-arcade/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagFree       bool
	flagMute       bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play right away",
	Long: `Start a game immediately, skipping the start screen.

Each attempt pays the wallet entry fee unless --free is given. Connect and
fund your wallet from 'slice menu' or 'slice wallet'.

Controls:
  Mouse drag - Slice
  P          - Pause
  B/Esc      - Back to menu (paused or game over)
  R/Enter    - Play again (after game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, classic constant spawning

Examples:
  slice play
  slice play --difficulty hard
  slice play --free --mute
  slice play --config ./my-slice.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runGame(true)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start screen with scores and wallet",
	Long: `Start the arcade on its start screen.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  slice menu
  slice menu --fps 30
  slice menu --player alice`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runGame(false)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		cmd.Flags().StringVar(&flagPlayer, "player", "", "Player name (default: current user)")
		cmd.Flags().BoolVar(&flagFree, "free", false, "Free play: no entry fee and no rewards")
		cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
		cmd.Flags().Float64Var(&flagVolume, "volume", 1, "Sound effect volume (0-1)")
	}
}

func runGame(skipMenu bool) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	slice.SetConfigPath(flagConfig)
	slice.SetDifficultyPreset(flagDifficulty)
	slice.SetLogger(logger)

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	svc, closeBackend, err := localServices(logger, flagFree)
	if err != nil {
		fail("opening database: %v (use --free to play without a wallet)", err)
	}
	defer closeBackend()

	if !flagMute {
		sound := audio.NewSoundManager(flagVolume, logger)
		if err := sound.Init(); err == nil {
			defer sound.Close()
			svc.Audio = sound
		}
	}

	opts := tui.Options{
		GameID:   gameID,
		Player:   playerName(),
		SkipMenu: skipMenu,
	}
	if err := tui.Run(svc, cfg, opts); err != nil {
		fail("running game: %v", err)
	}
}

// localServices opens the backend for local play. Without a database only
// free play is possible; a paid game never falls back to it.
func localServices(logger *log.Logger, free bool) (tui.Services, func(), error) {
	b, err := openBackend(logger)
	if err == nil {
		return b.services(free), b.Close, nil
	}
	if !free {
		return tui.Services{}, nil, err
	}
	fmt.Fprintf(os.Stderr, "Warning: playing without database, scores are not saved: %v\n", err)
	logger.Warn("playing without database", "err", err)
	return tui.Services{Logger: logger}, func() {}, nil
}

// playerName returns --player or the login name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
