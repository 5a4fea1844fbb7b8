package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/audio"
	"github.com/vovakirdan/slice-arcade/internal/reward"
	"github.com/vovakirdan/slice-arcade/internal/storage"
	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

// Wallet is the player-facing side of the credit ledger.
type Wallet interface {
	wallet.Gate
	Connect(ctx context.Context, player string) (bool, error)
	Fund(ctx context.Context, player string, amount decimal.Decimal) (decimal.Decimal, error)
	Balance(ctx context.Context, player string) (decimal.Decimal, error)
	Fee() decimal.Decimal
	TopUp() decimal.Decimal
}

// Services are the backends a session talks to. Every field is optional.
type Services struct {
	Store   *storage.Store
	Gate    wallet.Gate // nil means free play
	Wallet  Wallet
	Rewards *reward.Service
	Audio   audio.Player
	Logger  *log.Logger
}

func (s Services) withDefaults() Services {
	if s.Gate == nil {
		s.Gate = wallet.FreeGate{}
	}
	if s.Audio == nil {
		s.Audio = audio.Mute{}
	}
	if s.Logger == nil {
		s.Logger = log.Default()
	}
	return s
}

// admit runs the entry gate for one attempt: the player must be authorized
// and pays the entry fee.
func admit(ctx context.Context, gate wallet.Gate, player string) error {
	ok, err := gate.Authorized(ctx, player)
	if err != nil {
		return err
	}
	if !ok {
		return wallet.ErrUnauthorized
	}
	return gate.PayEntry(ctx, player)
}

func admitMessage(err error) string {
	switch {
	case errors.Is(err, wallet.ErrUnauthorized):
		return "Wallet not connected. Open Wallet and press C to connect."
	case errors.Is(err, wallet.ErrInsufficientBalance):
		return "Insufficient balance. Open Wallet and press F to add credits."
	default:
		return fmt.Sprintf("Could not start: %v", err)
	}
}

// rewardMsg reports the outcome of a reward payout.
type rewardMsg struct {
	receipt reward.Receipt
	err     error
}

func rewardMessage(msg rewardMsg) string {
	switch {
	case msg.err == nil && msg.receipt.Bonus:
		return fmt.Sprintf("Bonus reward: %s tokens!", msg.receipt.Amount)
	case msg.err == nil:
		return fmt.Sprintf("Reward: %s tokens", msg.receipt.Amount)
	case errors.Is(msg.err, reward.ErrScoreTooLow):
		return "Score too low to receive rewards"
	case errors.Is(msg.err, reward.ErrInsufficientFunds):
		return "House wallet is empty, no reward paid"
	default:
		return "Reward failed, try again later"
	}
}

// shortID abbreviates long player ids such as key fingerprints.
func shortID(id string) string {
	r := []rune(id)
	if len(r) <= 16 {
		return id
	}
	return string(r[:8]) + "…" + string(r[len(r)-6:])
}
