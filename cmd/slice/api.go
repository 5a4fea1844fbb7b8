package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slice-arcade/internal/api"
	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

var (
	flagAPIAddr   string
	flagAuthToken string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the wallet and reward HTTP API",
	Long: `Serve the HTTP API used by web clients:

  GET  /health               - liveness
  POST /api/get-nonce        - login nonce (requires the API token)
  POST /api/verify-wallet    - exchange a signed nonce for a session token
  GET  /api/balance          - session player's credits
  POST /api/fund             - add credits
  POST /api/pay-entry        - pay the entry fee for one attempt
  POST /api/transfer-tokens  - pay the reward for a score

The API token comes from --auth-token, $SLICE_AUTH_TOKEN or the wallet
config, in that order.

Examples:
  slice api
  slice api --addr :8080 --auth-token secret`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":3001", "HTTP listen address")
	apiCmd.Flags().StringVar(&flagAuthToken, "auth-token", "", "Bearer token required to request a nonce")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	b, err := openBackend(logger)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer b.Close()

	token := flagAuthToken
	if token == "" {
		token = os.Getenv("SLICE_AUTH_TOKEN")
	}
	if token == "" {
		token = b.wcfg.AuthToken
	}
	if token == "" {
		logger.Warn("no API token configured, nonce requests are open")
	}

	srv := api.NewServer(wallet.NewAuth(b.wcfg), b.gate, b.rewards, token, logger)
	httpServer := &http.Server{
		Addr:              flagAPIAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP API", "address", flagAPIAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-errCh:
		fail("server: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
