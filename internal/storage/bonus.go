package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ClaimBonus records the one-time bonus for player. It reports false when the
// player had already claimed it.
func (s *Store) ClaimBonus(ctx context.Context, player string, score int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO bonus_claims (player, score) VALUES (?, ?)",
		player, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot claim bonus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read claim result: %w", err)
	}
	return n == 1, nil
}

// BonusClaimed reports whether player has claimed the bonus.
func (s *Store) BonusClaimed(ctx context.Context, player string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM bonus_claims WHERE player = ?", player,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query bonus claim: %w", err)
	}
	return true, nil
}

// ReleaseBonus removes a claim so a failed payout can be retried later.
func (s *Store) ReleaseBonus(ctx context.Context, player string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM bonus_claims WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot release bonus: %w", err)
	}
	return nil
}
