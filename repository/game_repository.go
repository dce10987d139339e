package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"teamcoin/database"
	"teamcoin/models"
	"teamcoin/service"
)

// GameRepository implements the service.GameRepository interface
type GameRepository struct {
	q queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

// newGameRepositoryWithTx creates a new game repository with a transaction
func newGameRepositoryWithTx(tx queryable) *GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `id, name, target_coins, current_coins, reward, sponsor_type, sponsor,
		start_date, end_date, bonus_top1, bonus_top2, bonus_top3, status, created_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID,
		&game.Name,
		&game.TargetCoins,
		&game.CurrentCoins,
		&game.Reward,
		&game.SponsorType,
		&game.Sponsor,
		&game.StartDate,
		&game.EndDate,
		&game.BonusTop1,
		&game.BonusTop2,
		&game.BonusTop3,
		&game.Status,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Create inserts a new campaign
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (name, target_coins, current_coins, reward, sponsor_type, sponsor,
			start_date, end_date, bonus_top1, bonus_top2, bonus_top3, status)
		VALUES ($1, $2, 0, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, current_coins, created_at
	`

	err := r.q.QueryRow(ctx, query,
		game.Name,
		game.TargetCoins,
		game.Reward,
		game.SponsorType,
		game.Sponsor,
		game.StartDate,
		game.EndDate,
		game.BonusTop1,
		game.BonusTop2,
		game.BonusTop3,
		game.Status,
	).Scan(&game.ID, &game.CurrentCoins, &game.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game %q: %w", game.Name, err)
	}

	return nil
}

// GetByID retrieves a campaign by id. Returns nil without error when no
// campaign exists.
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// GetCurrent returns the most recently created active campaign, or nil when
// none is running.
func (r *GameRepository) GetCurrent(ctx context.Context) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`

	game, err := scanGame(r.q.QueryRow(ctx, query))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	return game, nil
}

// Update persists campaign fields edited by managers
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET name = $1, target_coins = $2, reward = $3, sponsor_type = $4, sponsor = $5,
			start_date = $6, end_date = $7, bonus_top1 = $8, bonus_top2 = $9, bonus_top3 = $10,
			status = $11
		WHERE id = $12
	`

	result, err := r.q.Exec(ctx, query,
		game.Name,
		game.TargetCoins,
		game.Reward,
		game.SponsorType,
		game.Sponsor,
		game.StartDate,
		game.EndDate,
		game.BonusTop1,
		game.BonusTop2,
		game.BonusTop3,
		game.Status,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game %d: %w", game.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %d: %w", game.ID, service.ErrNotFound)
	}

	return nil
}

// RecomputeCurrentCoins re-derives the cached team total from the users table
// in a single statement and returns the fresh value. The cached column is
// never patched incrementally, so it cannot drift from the ledger.
func (r *GameRepository) RecomputeCurrentCoins(ctx context.Context, gameID int64) (int64, error) {
	query := `
		UPDATE games
		SET current_coins = (SELECT COALESCE(SUM(coins), 0) FROM users WHERE role = 'employee')
		WHERE id = $1
		RETURNING current_coins
	`

	var total int64
	err := r.q.QueryRow(ctx, query, gameID).Scan(&total)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("game %d: %w", gameID, service.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to recompute team total for game %d: %w", gameID, err)
	}

	return total, nil
}

// GetExpiredActive returns active campaigns whose end date has passed
func (r *GameRepository) GetExpiredActive(ctx context.Context, now time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE status = 'active' AND end_date < $1
		ORDER BY end_date
	`

	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}
