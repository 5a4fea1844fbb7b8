package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/config"
)

var (
	ErrScoreTooLow       = errors.New("reward: score too low to receive rewards")
	ErrInsufficientFunds = errors.New("reward: insufficient funds in house wallet")
)

// BonusLedger remembers which players have claimed the one-time bonus.
type BonusLedger interface {
	ClaimBonus(ctx context.Context, player string, score int) (bool, error)
	BonusClaimed(ctx context.Context, player string) (bool, error)
	ReleaseBonus(ctx context.Context, player string) error
}

// Payout moves tokens from the house to a player.
type Payout interface {
	HouseBalance(ctx context.Context) (decimal.Decimal, error)
	Pay(ctx context.Context, player string, amount, baseUnits decimal.Decimal) (string, error)
}

// Receipt describes a completed payout.
type Receipt struct {
	ID        string
	Player    string
	Score     int
	Amount    decimal.Decimal
	BaseUnits decimal.Decimal
	Bonus     bool
	CreatedAt time.Time
}

// Service computes rewards and pays them out.
type Service struct {
	table          Table
	bonusThreshold int
	bonusAmount    int64
	decimals       int32
	retries        int
	backoff        time.Duration
	bonus          BonusLedger
	payout         Payout
	logger         *log.Logger
}

// NewService creates a reward service. bonus may be nil, which disables the
// one-time bonus.
func NewService(cfg config.RewardConfig, bonus BonusLedger, payout Payout, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		table:          NewTable(cfg),
		bonusThreshold: cfg.BonusThreshold,
		bonusAmount:    cfg.BonusAmount,
		decimals:       cfg.Decimals,
		retries:        max(cfg.Retries, 0),
		backoff:        max(time.Duration(cfg.RetryBackoffMs)*time.Millisecond, time.Millisecond),
		bonus:          bonus,
		payout:         payout,
		logger:         logger,
	}
}

func (s *Service) bonusEligible(score int) bool {
	return s.bonus != nil && s.bonusAmount > 0 && score >= s.bonusThreshold
}

// Quote returns what Amount would pay without claiming the bonus.
func (s *Service) Quote(ctx context.Context, player string, score int) (int64, bool, error) {
	if s.bonusEligible(score) {
		claimed, err := s.bonus.BonusClaimed(ctx, player)
		if err != nil {
			return 0, false, fmt.Errorf("reward: quote: %w", err)
		}
		if !claimed {
			return s.bonusAmount, true, nil
		}
	}
	return s.table.Amount(score), false, nil
}

// Amount returns the reward for score. The first time a player reaches the
// bonus threshold the bonus replaces the regular tier and is marked claimed.
func (s *Service) Amount(ctx context.Context, player string, score int) (int64, bool, error) {
	if s.bonusEligible(score) {
		claimed, err := s.bonus.ClaimBonus(ctx, player, score)
		if err != nil {
			return 0, false, fmt.Errorf("reward: claim bonus: %w", err)
		}
		if claimed {
			return s.bonusAmount, true, nil
		}
	}
	return s.table.Amount(score), false, nil
}

// Transfer pays the reward for score to player. A bonus claimed for a payout
// that fails is released again.
func (s *Service) Transfer(ctx context.Context, player string, score int) (Receipt, error) {
	if s.payout == nil {
		return Receipt{}, errors.New("reward: no payout configured")
	}

	amount, bonus, err := s.Amount(ctx, player, score)
	if err != nil {
		return Receipt{}, err
	}
	if amount <= 0 {
		return Receipt{}, ErrScoreTooLow
	}

	receipt, err := s.pay(ctx, player, score, amount, bonus)
	if err != nil && bonus {
		if rerr := s.bonus.ReleaseBonus(context.WithoutCancel(ctx), player); rerr != nil {
			s.logger.Error("could not release bonus", "player", player, "err", rerr)
		}
	}
	return receipt, err
}

func (s *Service) pay(ctx context.Context, player string, score int, amount int64, bonus bool) (Receipt, error) {
	tokens := decimal.NewFromInt(amount)
	baseUnits := tokens.Shift(s.decimals)

	house, err := s.payout.HouseBalance(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("reward: house balance: %w", err)
	}
	if house.LessThan(tokens) {
		return Receipt{}, ErrInsufficientFunds
	}

	var id string
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(s.retries), retry.NewExponential(s.backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		var perr error
		id, perr = s.payout.Pay(ctx, player, tokens, baseUnits)
		switch {
		case perr == nil:
			return nil
		case errors.Is(perr, ErrInsufficientFunds):
			return perr
		default:
			s.logger.Warn("payout failed", "player", player, "attempt", attempt, "err", perr)
			return retry.RetryableError(perr)
		}
	})
	if errors.Is(err, ErrInsufficientFunds) {
		return Receipt{}, err
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("reward: transfer: %w", err)
	}

	s.logger.Info("reward paid", "player", player, "score", score, "amount", tokens, "bonus", bonus, "id", id)
	return Receipt{
		ID:        id,
		Player:    player,
		Score:     score,
		Amount:    tokens,
		BaseUnits: baseUnits,
		Bonus:     bonus,
		CreatedAt: time.Now().UTC(),
	}, nil
}
