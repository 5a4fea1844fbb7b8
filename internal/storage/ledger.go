package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExternalAccount is the source of credits that enter the ledger from
// outside, such as a wallet top-up. It has no balance and is never debited.
const ExternalAccount = "external"

// Transfer kinds.
const (
	KindFund   = "fund"
	KindEntry  = "entry"
	KindReward = "reward"
)

var (
	ErrNoAccount           = errors.New("storage: account not found")
	ErrInsufficientBalance = errors.New("storage: insufficient balance")
)

// Transfer is one ledger movement.
type Transfer struct {
	ID        string
	Kind      string
	From      string
	To        string
	Amount    decimal.Decimal
	BaseUnits decimal.Decimal
	CreatedAt time.Time
}

// OpenAccount creates an account holding initial. It reports false, leaving
// the balance untouched, when the account already exists.
func (s *Store) OpenAccount(ctx context.Context, id string, initial decimal.Decimal) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO accounts (id, balance) VALUES (?, ?)",
		id, initial.String(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot open account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read account result: %w", err)
	}
	return n == 1, nil
}

// HasAccount reports whether the account exists.
func (s *Store) HasAccount(ctx context.Context, id string) (bool, error) {
	_, err := s.Balance(ctx, id)
	if errors.Is(err, ErrNoAccount) {
		return false, nil
	}
	return err == nil, err
}

// Balance returns the balance of an account.
func (s *Store) Balance(ctx context.Context, id string) (decimal.Decimal, error) {
	return balance(ctx, s.db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func balance(ctx context.Context, q querier, id string) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := q.QueryRowContext(ctx, "SELECT balance FROM accounts WHERE id = ?", id).Scan(&bal)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoAccount, id)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("storage: cannot query balance: %w", err)
	}
	return bal, nil
}

// Move debits t.From and credits t.To atomically and records the transfer.
// The destination account is created when missing. An empty ID gets a uuid.
func (s *Store) Move(ctx context.Context, t Transfer) (Transfer, error) {
	if !t.Amount.IsPositive() {
		return Transfer{}, fmt.Errorf("storage: transfer amount must be positive, got %s", t.Amount)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Transfer{}, fmt.Errorf("storage: cannot begin transfer: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if t.From != ExternalAccount {
		from, err := balance(ctx, tx, t.From)
		if err != nil {
			return Transfer{}, err
		}
		if from.LessThan(t.Amount) {
			return Transfer{}, fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, t.From, from, t.Amount)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE accounts SET balance = ? WHERE id = ?",
			from.Sub(t.Amount).String(), t.From,
		); err != nil {
			return Transfer{}, fmt.Errorf("storage: cannot debit %s: %w", t.From, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO accounts (id, balance) VALUES (?, '0')", t.To,
	); err != nil {
		return Transfer{}, fmt.Errorf("storage: cannot open account %s: %w", t.To, err)
	}
	to, err := balance(ctx, tx, t.To)
	if err != nil {
		return Transfer{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE accounts SET balance = ? WHERE id = ?",
		to.Add(t.Amount).String(), t.To,
	); err != nil {
		return Transfer{}, fmt.Errorf("storage: cannot credit %s: %w", t.To, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO transfers (id, kind, from_account, to_account, amount, base_units, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Kind, t.From, t.To, t.Amount.String(), t.BaseUnits.String(),
		t.CreatedAt.Format("2006-01-02 15:04:05"),
	); err != nil {
		return Transfer{}, fmt.Errorf("storage: cannot record transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Transfer{}, fmt.Errorf("storage: cannot commit transfer: %w", err)
	}
	return t, nil
}

// Transfers lists the most recent transfers touching an account.
func (s *Store) Transfers(ctx context.Context, account string, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, from_account, to_account, amount, base_units, created_at
		 FROM transfers
		 WHERE from_account = ? OR to_account = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		account, account, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query transfers: %w", err)
	}
	defer rows.Close()

	var out []Transfer
	for rows.Next() {
		var t Transfer
		var createdAt any
		if err := rows.Scan(&t.ID, &t.Kind, &t.From, &t.To, &t.Amount, &t.BaseUnits, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan transfer: %w", err)
		}
		t.CreatedAt = parseTime(createdAt)
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
