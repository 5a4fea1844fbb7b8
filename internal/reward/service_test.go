package reward

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/config"
	"github.com/vovakirdan/slice-arcade/internal/storage"
)

// memBonus is an in-memory BonusLedger.
type memBonus map[string]bool

func (m memBonus) ClaimBonus(_ context.Context, player string, _ int) (bool, error) {
	if m[player] {
		return false, nil
	}
	m[player] = true
	return true, nil
}

func (m memBonus) BonusClaimed(_ context.Context, player string) (bool, error) {
	return m[player], nil
}

func (m memBonus) ReleaseBonus(_ context.Context, player string) error {
	delete(m, player)
	return nil
}

// flakyPayout fails the first failures calls.
type flakyPayout struct {
	house    decimal.Decimal
	failures int
	calls    int
	paid     []decimal.Decimal
}

func (f *flakyPayout) HouseBalance(context.Context) (decimal.Decimal, error) {
	return f.house, nil
}

func (f *flakyPayout) Pay(_ context.Context, _ string, amount, _ decimal.Decimal) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("rpc unavailable")
	}
	f.paid = append(f.paid, amount)
	return "tx-1", nil
}

func testConfig() config.RewardConfig {
	cfg := config.DefaultRewardConfig()
	cfg.RetryBackoffMs = 0
	return cfg
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestAmountBonusOnce(t *testing.T) {
	svc := NewService(testConfig(), memBonus{}, nil, quiet())
	ctx := context.Background()

	tests := []struct {
		player    string
		score     int
		want      int64
		wantBonus bool
	}{
		{"alice", 1000, 50000, true},
		{"alice", 1000, 6000, false},
		{"alice", 5000, 6000, false},
		{"bob", 999, 6000, false},
		{"bob", 1200, 50000, true},
		{"carol", 19, 0, false},
	}

	for _, tt := range tests {
		got, bonus, err := svc.Amount(ctx, tt.player, tt.score)
		if err != nil {
			t.Fatalf("Amount(%s, %d) failed: %v", tt.player, tt.score, err)
		}
		if got != tt.want || bonus != tt.wantBonus {
			t.Errorf("Amount(%s, %d) = %d, %v, want %d, %v", tt.player, tt.score, got, bonus, tt.want, tt.wantBonus)
		}
	}
}

func TestQuoteDoesNotClaim(t *testing.T) {
	ledger := memBonus{}
	svc := NewService(testConfig(), ledger, nil, quiet())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		amount, bonus, err := svc.Quote(ctx, "alice", 1000)
		if err != nil || amount != 50000 || !bonus {
			t.Fatalf("Quote = %d, %v, %v, want 50000 bonus", amount, bonus, err)
		}
	}
	if ledger["alice"] {
		t.Error("Quote claimed the bonus")
	}
}

func TestAmountWithoutLedger(t *testing.T) {
	svc := NewService(testConfig(), nil, nil, quiet())
	got, bonus, err := svc.Amount(context.Background(), "alice", 1000)
	if err != nil || got != 6000 || bonus {
		t.Errorf("Amount = %d, %v, %v, want regular 6000", got, bonus, err)
	}
}

func TestTransferScoreTooLow(t *testing.T) {
	payout := &flakyPayout{house: decimal.NewFromInt(1e6)}
	svc := NewService(testConfig(), memBonus{}, payout, quiet())

	_, err := svc.Transfer(context.Background(), "alice", 10)
	if !errors.Is(err, ErrScoreTooLow) {
		t.Errorf("Transfer error = %v, want ErrScoreTooLow", err)
	}
	if payout.calls != 0 {
		t.Error("payout called for a zero reward")
	}
}

func TestTransferInsufficientFundsReleasesBonus(t *testing.T) {
	ledger := memBonus{}
	payout := &flakyPayout{house: decimal.NewFromInt(100)}
	svc := NewService(testConfig(), ledger, payout, quiet())

	_, err := svc.Transfer(context.Background(), "alice", 1000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Transfer error = %v, want ErrInsufficientFunds", err)
	}
	if ledger["alice"] {
		t.Error("bonus stayed claimed after a failed payout")
	}
}

func TestTransferRetries(t *testing.T) {
	payout := &flakyPayout{house: decimal.NewFromInt(1e6), failures: 2}
	svc := NewService(testConfig(), memBonus{}, payout, quiet())

	r, err := svc.Transfer(context.Background(), "alice", 45)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if payout.calls != 3 {
		t.Errorf("calls = %d, want 3", payout.calls)
	}
	if !r.Amount.Equal(decimal.NewFromInt(1000)) || !r.BaseUnits.Equal(decimal.NewFromInt(1000000000)) {
		t.Errorf("receipt = %+v, want 1000 tokens, 1e9 base units", r)
	}
	if r.ID != "tx-1" || r.Player != "alice" || r.Score != 45 {
		t.Errorf("receipt = %+v", r)
	}
}

func TestTransferGivesUp(t *testing.T) {
	payout := &flakyPayout{house: decimal.NewFromInt(1e6), failures: 10}
	svc := NewService(testConfig(), memBonus{}, payout, quiet())

	if _, err := svc.Transfer(context.Background(), "alice", 45); err == nil {
		t.Fatal("want error after exhausting retries")
	}
	if payout.calls != 4 {
		t.Errorf("calls = %d, want 1 + 3 retries", payout.calls)
	}
}

func TestTransferThroughLedger(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	store.OpenAccount(ctx, "house", decimal.NewFromInt(60000))

	svc := NewService(testConfig(), store, NewLedgerPayout(store, "house"), quiet())

	first, err := svc.Transfer(ctx, "alice", 1000)
	if err != nil {
		t.Fatalf("first Transfer failed: %v", err)
	}
	if !first.Bonus || !first.Amount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("first receipt = %+v, want the bonus", first)
	}

	second, err := svc.Transfer(ctx, "alice", 1000)
	if err != nil {
		t.Fatalf("second Transfer failed: %v", err)
	}
	if second.Bonus || !second.Amount.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("second receipt = %+v, want regular 6000", second)
	}

	alice, _ := store.Balance(ctx, "alice")
	house, _ := store.Balance(ctx, "house")
	if !alice.Equal(decimal.NewFromInt(56000)) || !house.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("balances alice=%s house=%s", alice, house)
	}

	if _, err := svc.Transfer(ctx, "bob", 120); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Transfer with drained house = %v, want ErrInsufficientFunds", err)
	}
}
