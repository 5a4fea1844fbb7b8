package reward

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/storage"
)

// LedgerPayout pays rewards from a house account in the local ledger.
type LedgerPayout struct {
	store *storage.Store
	house string
}

// NewLedgerPayout creates a payout drawing from the house account.
func NewLedgerPayout(store *storage.Store, house string) *LedgerPayout {
	return &LedgerPayout{store: store, house: house}
}

// HouseBalance returns the house account balance; a missing account holds zero.
func (p *LedgerPayout) HouseBalance(ctx context.Context) (decimal.Decimal, error) {
	bal, err := p.store.Balance(ctx, p.house)
	if errors.Is(err, storage.ErrNoAccount) {
		return decimal.Zero, nil
	}
	return bal, err
}

// Pay records the reward transfer and returns its id.
func (p *LedgerPayout) Pay(ctx context.Context, player string, amount, baseUnits decimal.Decimal) (string, error) {
	t, err := p.store.Move(ctx, storage.Transfer{
		Kind:      storage.KindReward,
		From:      p.house,
		To:        player,
		Amount:    amount,
		BaseUnits: baseUnits,
	})
	if errors.Is(err, storage.ErrInsufficientBalance) {
		return "", ErrInsufficientFunds
	}
	if err != nil {
		return "", err
	}
	return t.ID, nil
}
