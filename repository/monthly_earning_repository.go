package repository

import (
	"context"
	"fmt"
	"time"

	"teamcoin/database"
	"teamcoin/models"
	"teamcoin/service"
)

// MonthlyEarningRepository implements the service.MonthlyEarningRepository
// interface. Earnings only accumulate: negative amounts never reach this
// table.
type MonthlyEarningRepository struct {
	q queryable
}

// NewMonthlyEarningRepository creates a new monthly earning repository
func NewMonthlyEarningRepository(db *database.DB) *MonthlyEarningRepository {
	return &MonthlyEarningRepository{q: db.Pool}
}

// newMonthlyEarningRepositoryWithTx creates a new monthly earning repository with a transaction
func newMonthlyEarningRepositoryWithTx(tx queryable) *MonthlyEarningRepository {
	return &MonthlyEarningRepository{q: tx}
}

// monthOf truncates t to the first day of its calendar month in UTC
func monthOf(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Add folds a positive amount into the user's aggregate for the month of
// `at`, creating the row on first earnings of the month.
func (r *MonthlyEarningRepository) Add(ctx context.Context, userID int64, at time.Time, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: monthly earning amount must be positive", service.ErrInvalidInput)
	}

	query := `
		INSERT INTO monthly_earnings (user_id, month, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, month) DO UPDATE
		SET amount = monthly_earnings.amount + EXCLUDED.amount
	`

	if _, err := r.q.Exec(ctx, query, userID, monthOf(at), amount); err != nil {
		return fmt.Errorf("failed to add monthly earning for user %d: %w", userID, err)
	}

	return nil
}

// GetMonth returns the earnings leaderboard for one calendar month, highest
// earners first.
func (r *MonthlyEarningRepository) GetMonth(ctx context.Context, month time.Time, limit int) ([]*models.MonthlyLeaderboardEntry, error) {
	query := `
		SELECT e.user_id, u.nickname, e.month, e.amount
		FROM monthly_earnings e
		JOIN users u ON u.id = e.user_id
		WHERE e.month = $1
		ORDER BY e.amount DESC, e.user_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, monthOf(month), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.MonthlyLeaderboardEntry
	for rows.Next() {
		var entry models.MonthlyLeaderboardEntry
		err := rows.Scan(&entry.UserID, &entry.Nickname, &entry.Month, &entry.Earned)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly entries: %w", err)
	}

	return entries, nil
}

// GetTopPerMonth returns the single best earner for each month, oldest month
// first. Feeds the monthly champions history view.
func (r *MonthlyEarningRepository) GetTopPerMonth(ctx context.Context) ([]*models.MonthlyLeaderboardEntry, error) {
	query := `
		SELECT DISTINCT ON (e.month) e.user_id, u.nickname, e.month, e.amount
		FROM monthly_earnings e
		JOIN users u ON u.id = e.user_id
		ORDER BY e.month, e.amount DESC, e.user_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly champions: %w", err)
	}
	defer rows.Close()

	var entries []*models.MonthlyLeaderboardEntry
	for rows.Next() {
		var entry models.MonthlyLeaderboardEntry
		err := rows.Scan(&entry.UserID, &entry.Nickname, &entry.Month, &entry.Earned)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly entries: %w", err)
	}

	return entries, nil
}
