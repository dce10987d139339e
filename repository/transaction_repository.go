package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"teamcoin/database"
	"teamcoin/models"
)

// TransactionRepository implements the service.TransactionRepository
// interface. The transactions table is append-only: this repository exposes
// no update or delete.
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Create appends one entry to the ledger log
func (r *TransactionRepository) Create(ctx context.Context, entry *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, game_id, amount, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.GameID,
		entry.Amount,
		entry.Type,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append transaction for user %d: %w", entry.UserID, err)
	}

	return nil
}

func (r *TransactionRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var entries []*models.Transaction
	for rows.Next() {
		var entry models.Transaction
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.GameID,
			&entry.Amount,
			&entry.Type,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return entries, nil
}

// GetRecent returns the most recent entries across all users, newest first
func (r *TransactionRepository) GetRecent(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, game_id, amount, type, description, created_at
		FROM transactions
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.queryEntries(ctx, query, limit)
}

// GetByUser returns a user's entries, newest first
func (r *TransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, game_id, amount, type, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	return r.queryEntries(ctx, query, userID, limit)
}

// SumByUser returns the sum of all logged amounts for a user. Used to audit
// the invariant that logged amounts reconcile with the current balance.
func (r *TransactionRepository) SumByUser(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1`

	var total int64
	err := r.q.QueryRow(ctx, query, userID).Scan(&total)
	if err != nil && err != pgx.ErrNoRows {
		return 0, fmt.Errorf("failed to sum transactions for user %d: %w", userID, err)
	}

	return total, nil
}
