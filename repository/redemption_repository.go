package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"teamcoin/database"
	"teamcoin/models"
	"teamcoin/service"
)

// RedemptionRepository implements the service.RedemptionRepository interface
type RedemptionRepository struct {
	q queryable
}

// NewRedemptionRepository creates a new redemption repository
func NewRedemptionRepository(db *database.DB) *RedemptionRepository {
	return &RedemptionRepository{q: db.Pool}
}

// newRedemptionRepositoryWithTx creates a new redemption repository with a transaction
func newRedemptionRepositoryWithTx(tx queryable) *RedemptionRepository {
	return &RedemptionRepository{q: tx}
}

// Create inserts a new pending redemption
func (r *RedemptionRepository) Create(ctx context.Context, redemption *models.Redemption) error {
	query := `
		INSERT INTO redemptions (reward_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		redemption.RewardID,
		redemption.UserID,
		redemption.Status,
	).Scan(&redemption.ID, &redemption.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create redemption for user %d: %w", redemption.UserID, err)
	}

	return nil
}

// GetByID retrieves a redemption by id. Returns nil without error when none
// exists.
func (r *RedemptionRepository) GetByID(ctx context.Context, id int64) (*models.Redemption, error) {
	query := `
		SELECT id, reward_id, user_id, status, created_at
		FROM redemptions
		WHERE id = $1
	`

	var redemption models.Redemption
	err := r.q.QueryRow(ctx, query, id).Scan(
		&redemption.ID,
		&redemption.RewardID,
		&redemption.UserID,
		&redemption.Status,
		&redemption.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get redemption %d: %w", id, err)
	}

	return &redemption, nil
}

// GetAll returns all redemptions, newest first
func (r *RedemptionRepository) GetAll(ctx context.Context) ([]*models.Redemption, error) {
	query := `
		SELECT id, reward_id, user_id, status, created_at
		FROM redemptions
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []*models.Redemption
	for rows.Next() {
		var redemption models.Redemption
		err := rows.Scan(
			&redemption.ID,
			&redemption.RewardID,
			&redemption.UserID,
			&redemption.Status,
			&redemption.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, &redemption)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate redemptions: %w", err)
	}

	return redemptions, nil
}

// UpdateStatus transitions a pending redemption to fulfilled or cancelled.
// The guard is in the UPDATE so a redemption can only be resolved once.
func (r *RedemptionRepository) UpdateStatus(ctx context.Context, id int64, status models.RedemptionStatus) error {
	query := `
		UPDATE redemptions
		SET status = $1
		WHERE id = $2 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update redemption %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		redemption, err := r.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check redemption: %w", err)
		}
		if redemption == nil {
			return fmt.Errorf("redemption %d: %w", id, service.ErrNotFound)
		}
		return fmt.Errorf("redemption %d already %s: %w", id, redemption.Status, service.ErrConflict)
	}

	return nil
}
