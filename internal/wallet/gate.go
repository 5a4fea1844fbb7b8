// Package wallet guards play behind an entry fee and authenticates players
// by wallet signature.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/storage"
)

var (
	ErrInsufficientBalance = errors.New("wallet: insufficient balance")
	ErrUnauthorized        = errors.New("wallet: unauthorized")
)

// Gate decides whether a player may begin a session.
type Gate interface {
	// Authorized reports whether the player has a connected wallet.
	Authorized(ctx context.Context, player string) (bool, error)
	// PayEntry charges the one-time entry fee for the next attempt.
	PayEntry(ctx context.Context, player string) error
}

// FreeGate lets everyone play for free.
type FreeGate struct{}

// Authorized always reports true.
func (FreeGate) Authorized(context.Context, string) (bool, error) { return true, nil }

// PayEntry charges nothing.
func (FreeGate) PayEntry(context.Context, string) error { return nil }

// LedgerGate charges entry fees from player accounts in the local ledger and
// credits them to the house.
type LedgerGate struct {
	store   *storage.Store
	fee     decimal.Decimal
	starter decimal.Decimal
	topUp   decimal.Decimal
	house   string
	logger  *log.Logger
}

// NewLedgerGate creates a gate from wallet config.
func NewLedgerGate(store *storage.Store, cfg config.WalletConfig, house string, logger *log.Logger) (*LedgerGate, error) {
	fee, err := decimal.NewFromString(cfg.EntryFee)
	if err != nil {
		return nil, fmt.Errorf("wallet: bad entry fee %q: %w", cfg.EntryFee, err)
	}
	starter := decimal.Zero
	if cfg.StarterCredits != "" {
		if starter, err = decimal.NewFromString(cfg.StarterCredits); err != nil {
			return nil, fmt.Errorf("wallet: bad starter credits %q: %w", cfg.StarterCredits, err)
		}
	}
	topUp := decimal.Zero
	if cfg.FundAmount != "" {
		if topUp, err = decimal.NewFromString(cfg.FundAmount); err != nil {
			return nil, fmt.Errorf("wallet: bad fund amount %q: %w", cfg.FundAmount, err)
		}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &LedgerGate{store: store, fee: fee, starter: starter, topUp: topUp, house: house, logger: logger}, nil
}

// Fee returns the entry fee.
func (g *LedgerGate) Fee() decimal.Decimal {
	return g.fee
}

// TopUp returns the configured amount added by a single top-up.
func (g *LedgerGate) TopUp() decimal.Decimal {
	return g.topUp
}

// reserved reports whether player names a ledger account that cannot play:
// none, the external funding source or the house.
func (g *LedgerGate) reserved(player string) bool {
	return player == "" || player == storage.ExternalAccount || player == g.house
}

// Connect opens an account for player with the starter credits. Connecting an
// existing account changes nothing. It reports whether an account was created.
func (g *LedgerGate) Connect(ctx context.Context, player string) (bool, error) {
	if g.reserved(player) {
		return false, ErrUnauthorized
	}
	created, err := g.store.OpenAccount(ctx, player, g.starter)
	if err != nil {
		return false, fmt.Errorf("wallet: connect: %w", err)
	}
	if created {
		g.logger.Info("wallet connected", "player", player, "credits", g.starter)
	}
	return created, nil
}

// Authorized reports whether player has an account.
func (g *LedgerGate) Authorized(ctx context.Context, player string) (bool, error) {
	if g.reserved(player) {
		return false, nil
	}
	ok, err := g.store.HasAccount(ctx, player)
	if err != nil {
		return false, fmt.Errorf("wallet: authorize: %w", err)
	}
	return ok, nil
}

// PayEntry moves the entry fee from player to the house.
func (g *LedgerGate) PayEntry(ctx context.Context, player string) error {
	if g.reserved(player) {
		return ErrUnauthorized
	}
	if !g.fee.IsPositive() {
		return nil
	}
	_, err := g.store.Move(ctx, storage.Transfer{
		Kind:   storage.KindEntry,
		From:   player,
		To:     g.house,
		Amount: g.fee,
	})
	switch {
	case errors.Is(err, storage.ErrNoAccount):
		return ErrUnauthorized
	case errors.Is(err, storage.ErrInsufficientBalance):
		return ErrInsufficientBalance
	case err != nil:
		return fmt.Errorf("wallet: pay entry: %w", err)
	}
	g.logger.Debug("entry paid", "player", player, "fee", g.fee)
	return nil
}

// Fund adds credits to a player account, opening it when needed.
func (g *LedgerGate) Fund(ctx context.Context, player string, amount decimal.Decimal) (decimal.Decimal, error) {
	if player == "" {
		return decimal.Zero, ErrUnauthorized
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("wallet: fund amount must be positive, got %s", amount)
	}
	if _, err := g.store.Move(ctx, storage.Transfer{
		Kind:   storage.KindFund,
		From:   storage.ExternalAccount,
		To:     player,
		Amount: amount,
	}); err != nil {
		return decimal.Zero, fmt.Errorf("wallet: fund: %w", err)
	}
	return g.Balance(ctx, player)
}

// Balance returns the credits of a player.
func (g *LedgerGate) Balance(ctx context.Context, player string) (decimal.Decimal, error) {
	bal, err := g.store.Balance(ctx, player)
	if errors.Is(err, storage.ErrNoAccount) {
		return decimal.Zero, ErrUnauthorized
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("wallet: balance: %w", err)
	}
	return bal, nil
}

var (
	_ Gate = FreeGate{}
	_ Gate = (*LedgerGate)(nil)
)
