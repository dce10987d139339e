package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teamcoin/events"
	"teamcoin/models"
)

type gameService struct {
	uowFactory UnitOfWorkFactory
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
	}
}

func validateGame(game *models.Game) error {
	if strings.TrimSpace(game.Name) == "" {
		return fmt.Errorf("campaign name is required: %w", ErrInvalidInput)
	}
	if game.TargetCoins <= 0 {
		return fmt.Errorf("campaign target must be positive: %w", ErrInvalidInput)
	}
	if !game.EndDate.After(game.StartDate) {
		return fmt.Errorf("campaign end date must follow start date: %w", ErrInvalidInput)
	}
	if game.BonusTop1 < 0 || game.BonusTop2 < 0 || game.BonusTop3 < 0 {
		return fmt.Errorf("campaign bonuses cannot be negative: %w", ErrInvalidInput)
	}
	return nil
}

// CreateGame opens a new campaign. Only one campaign may be active at a
// time; a second create fails until the running one ends.
func (s *gameService) CreateGame(ctx context.Context, game *models.Game) error {
	if err := validateGame(game); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	current, err := uow.GameRepository().GetCurrent(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current game: %w", err)
	}
	if current != nil {
		return fmt.Errorf("campaign %q is still active: %w", current.Name, ErrConflict)
	}

	game.Status = models.GameStatusActive
	if err := uow.GameRepository().Create(ctx, game); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	// Seed the cache so a fresh campaign shows the real team total at once
	if _, err := uow.GameRepository().RecomputeCurrentCoins(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to recompute team total: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateGame edits an active campaign's parameters
func (s *gameService) UpdateGame(ctx context.Context, game *models.Game) error {
	if err := validateGame(game); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.GameRepository().GetByID(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("game %d: %w", game.ID, ErrNotFound)
	}
	if existing.Status != models.GameStatusActive {
		return fmt.Errorf("game %d has ended: %w", game.ID, ErrConflict)
	}

	game.Status = existing.Status
	if err := uow.GameRepository().Update(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetCurrentGame returns the active campaign with a freshly derived team
// total, or nil when no campaign is running
func (s *gameService) GetCurrentGame(ctx context.Context) (*models.Game, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	game, err := uow.GameRepository().GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	if game == nil {
		return nil, nil
	}

	total, err := uow.GameRepository().RecomputeCurrentCoins(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute team total: %w", err)
	}
	game.CurrentCoins = total

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return game, nil
}

// EndGame closes an active campaign and pays the configured bonuses to the
// top three earners by balance. Bonus credits, their ledger entries, the
// status flip and the final total recompute land in one transaction.
func (s *gameService) EndGame(ctx context.Context, gameID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := s.endGame(ctx, uow, gameID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *gameService) endGame(ctx context.Context, uow UnitOfWork, gameID int64) error {
	game, err := uow.GameRepository().GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}
	if game.Status != models.GameStatusActive {
		return fmt.Errorf("game %d already ended: %w", gameID, ErrConflict)
	}

	employees, err := uow.UserRepository().GetEmployeesByCoins(ctx)
	if err != nil {
		return fmt.Errorf("failed to rank employees: %w", err)
	}

	for rank, bonus := range game.Bonuses() {
		if bonus <= 0 || rank >= len(employees) {
			continue
		}
		winner := employees[rank]

		if err := uow.UserRepository().AddCoins(ctx, winner.ID, bonus); err != nil {
			return fmt.Errorf("failed to credit campaign bonus: %w", err)
		}

		entry := &models.Transaction{
			UserID:      winner.ID,
			GameID:      &game.ID,
			Amount:      bonus,
			Type:        models.TransactionTypeBonus,
			Description: fmt.Sprintf("Bonus Top %d: %s", rank+1, game.Name),
		}
		if err := RecordTransaction(ctx, uow, entry, winner.Coins+bonus); err != nil {
			return fmt.Errorf("failed to record campaign bonus: %w", err)
		}
	}

	game.Status = models.GameStatusEnded
	if err := uow.GameRepository().Update(ctx, game); err != nil {
		return fmt.Errorf("failed to close game: %w", err)
	}

	final, err := uow.GameRepository().RecomputeCurrentCoins(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to recompute team total: %w", err)
	}

	uow.EventBus().Publish(events.CampaignEndedEvent{
		GameID:     gameID,
		FinalCoins: final,
	})

	return nil
}

// EndExpiredGames closes every active campaign past its end date. Each
// campaign ends in its own transaction so one failure does not hold the
// rest open.
func (s *gameService) EndExpiredGames(ctx context.Context) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	expired, err := uow.GameRepository().GetExpiredActive(ctx, time.Now())
	uow.Rollback()
	if err != nil {
		return fmt.Errorf("failed to find expired games: %w", err)
	}

	for _, game := range expired {
		if err := s.EndGame(ctx, game.ID); err != nil {
			return fmt.Errorf("failed to end game %d: %w", game.ID, err)
		}
	}

	return nil
}

// RecomputeTeamTotal re-derives and persists the campaign's cached coin total
func (s *gameService) RecomputeTeamTotal(ctx context.Context, gameID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	total, err := uow.GameRepository().RecomputeCurrentCoins(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute team total: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return total, nil
}

// TeamContributions returns each employee's share of the team coin total.
// Percentages are integer-truncated; a zero total yields zero shares.
func (s *gameService) TeamContributions(ctx context.Context) ([]*models.Contribution, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	employees, err := uow.UserRepository().GetEmployeesByCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank employees: %w", err)
	}

	var total int64
	for _, u := range employees {
		total += u.Coins
	}

	contributions := make([]*models.Contribution, 0, len(employees))
	for _, u := range employees {
		c := &models.Contribution{
			UserID:   u.ID,
			Nickname: u.Nickname,
			Coins:    u.Coins,
		}
		if total > 0 {
			c.Percentage = int(u.Coins * 100 / total)
		}
		contributions = append(contributions, c)
	}

	return contributions, nil
}
