package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"teamcoin/database"
	"teamcoin/models"
	"teamcoin/service"
)

// RewardRepository implements the service.RewardRepository interface
type RewardRepository struct {
	q queryable
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *database.DB) *RewardRepository {
	return &RewardRepository{q: db.Pool}
}

// newRewardRepositoryWithTx creates a new reward repository with a transaction
func newRewardRepositoryWithTx(tx queryable) *RewardRepository {
	return &RewardRepository{q: tx}
}

const rewardColumns = `id, icon, name, description, cost, category, stock, is_active, created_by, created_at`

func scanReward(row pgx.Row) (*models.Reward, error) {
	var reward models.Reward
	err := row.Scan(
		&reward.ID,
		&reward.Icon,
		&reward.Name,
		&reward.Description,
		&reward.Cost,
		&reward.Category,
		&reward.Stock,
		&reward.IsActive,
		&reward.CreatedBy,
		&reward.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

// Create inserts a new reward
func (r *RewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	query := `
		INSERT INTO rewards (icon, name, description, cost, category, stock, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		reward.Icon,
		reward.Name,
		reward.Description,
		reward.Cost,
		reward.Category,
		reward.Stock,
		reward.IsActive,
		reward.CreatedBy,
	).Scan(&reward.ID, &reward.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create reward %q: %w", reward.Name, err)
	}

	return nil
}

// GetByID retrieves a reward by id. Returns nil without error when no reward
// exists.
func (r *RewardRepository) GetByID(ctx context.Context, id int64) (*models.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`

	reward, err := scanReward(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reward %d: %w", id, err)
	}
	return reward, nil
}

// GetAll returns all rewards ordered by cost ascending
func (r *RewardRepository) GetAll(ctx context.Context) ([]*models.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards ORDER BY cost, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get rewards: %w", err)
	}
	defer rows.Close()

	var rewards []*models.Reward
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rewards: %w", err)
	}

	return rewards, nil
}

// Update persists reward fields edited by managers
func (r *RewardRepository) Update(ctx context.Context, reward *models.Reward) error {
	query := `
		UPDATE rewards
		SET icon = $1, name = $2, description = $3, cost = $4, category = $5,
			stock = $6, is_active = $7
		WHERE id = $8
	`

	result, err := r.q.Exec(ctx, query,
		reward.Icon,
		reward.Name,
		reward.Description,
		reward.Cost,
		reward.Category,
		reward.Stock,
		reward.IsActive,
		reward.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reward %d: %w", reward.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reward %d: %w", reward.ID, service.ErrNotFound)
	}

	return nil
}

// DecrementStock takes one unit of a limited reward. Unlimited rewards
// (stock IS NULL) pass through untouched. The stock guard is in the UPDATE so
// concurrent redemptions cannot oversell.
func (r *RewardRepository) DecrementStock(ctx context.Context, rewardID int64) error {
	query := `
		UPDATE rewards
		SET stock = stock - 1
		WHERE id = $1 AND (stock IS NULL OR stock > 0)
	`

	result, err := r.q.Exec(ctx, query, rewardID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for reward %d: %w", rewardID, err)
	}

	if result.RowsAffected() == 0 {
		reward, err := r.GetByID(ctx, rewardID)
		if err != nil {
			return fmt.Errorf("failed to check reward: %w", err)
		}
		if reward == nil {
			return fmt.Errorf("reward %d: %w", rewardID, service.ErrNotFound)
		}
		return fmt.Errorf("reward %d: %w", rewardID, service.ErrOutOfStock)
	}

	return nil
}

// IncrementStock returns one unit of a limited reward, used when a
// redemption is cancelled.
func (r *RewardRepository) IncrementStock(ctx context.Context, rewardID int64) error {
	query := `
		UPDATE rewards
		SET stock = stock + 1
		WHERE id = $1 AND stock IS NOT NULL
	`

	if _, err := r.q.Exec(ctx, query, rewardID); err != nil {
		return fmt.Errorf("failed to restore stock for reward %d: %w", rewardID, err)
	}

	return nil
}
