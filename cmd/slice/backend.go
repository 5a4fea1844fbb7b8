package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/platform/tui"
	"github.com/vovakirdan/slice-arcade/internal/reward"
	"github.com/vovakirdan/slice-arcade/internal/storage"
	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

// newLogger builds the process logger. Interactive commands own the terminal,
// so they only log when --log-file is given.
func newLogger(interactive bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fail("cannot create log directory: %v", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "slice",
	})
	if os.Getenv("SLICE_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return logger, closeFn
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// backend bundles the store, wallet and reward service.
type backend struct {
	store   *storage.Store
	wcfg    config.WalletConfig
	rcfg    config.RewardConfig
	gate    *wallet.LedgerGate
	rewards *reward.Service
	logger  *log.Logger
}

// openBackend opens the database and wires the wallet ledger and rewards.
func openBackend(logger *log.Logger) (*backend, error) {
	wcfg, err := config.LoadWallet(flagWalletConfig)
	if err != nil {
		return nil, err
	}
	rcfg, err := config.LoadReward(flagRewardConfig)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	gate, err := wallet.NewLedgerGate(store, wcfg, rcfg.HouseAccount, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	// The house collects entry fees and pays rewards.
	if _, err := store.OpenAccount(context.Background(), rcfg.HouseAccount, decimal.Zero); err != nil {
		store.Close()
		return nil, fmt.Errorf("open house account: %w", err)
	}

	return &backend{
		store:   store,
		wcfg:    wcfg,
		rcfg:    rcfg,
		gate:    gate,
		rewards: reward.NewService(rcfg, store, reward.NewLedgerPayout(store, rcfg.HouseAccount), logger),
		logger:  logger,
	}, nil
}

// services returns the TUI services. Free play skips the wallet and rewards.
func (b *backend) services(free bool) tui.Services {
	svc := tui.Services{
		Store:  b.store,
		Logger: b.logger,
	}
	if !free {
		svc.Gate = b.gate
		svc.Wallet = b.gate
		svc.Rewards = b.rewards
	}
	return svc
}

func (b *backend) Close() {
	b.store.Close()
}
