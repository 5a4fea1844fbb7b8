package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slice-arcade/internal/core"
	"github.com/vovakirdan/slice-arcade/internal/games/slice"
	"github.com/vovakirdan/slice-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeFree   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Clients log in with any SSH public key. The key's SHA256 fingerprint is the
player id: it owns the wallet and the scores of that player. Scores and
wallets are stored per-server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  slice serve                           # Listen on :23234 with auto-generated key
  slice serve --ssh :2222               # Listen on port 2222
  slice serve --host-key ./my_host_key  # Use specific host key
  slice serve --free                    # No entry fees or rewards

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeFree, "free", false, "Free play: no entry fee and no rewards")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	slice.SetConfigPath(flagConfig)
	slice.SetDifficultyPreset(flagDifficulty)
	slice.SetLogger(logger)

	b, err := openBackend(logger)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer b.Close()

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		GameID:      gameID,
		Runtime:     runtime,
	}

	server, err := tui.NewSSHServer(cfg, b.services(flagServeFree))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Cyber Slice SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
