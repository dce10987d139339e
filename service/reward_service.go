package service

import (
	"context"
	"fmt"
	"strings"

	"teamcoin/events"
	"teamcoin/models"
)

type rewardService struct {
	uowFactory UnitOfWorkFactory
}

// NewRewardService creates a new reward service
func NewRewardService(uowFactory UnitOfWorkFactory) RewardService {
	return &rewardService{
		uowFactory: uowFactory,
	}
}

func validateReward(reward *models.Reward) error {
	if strings.TrimSpace(reward.Name) == "" {
		return fmt.Errorf("reward name is required: %w", ErrInvalidInput)
	}
	if reward.Cost <= 0 {
		return fmt.Errorf("reward cost must be positive: %w", ErrInvalidInput)
	}
	if reward.Stock != nil && *reward.Stock < 0 {
		return fmt.Errorf("reward stock cannot be negative: %w", ErrInvalidInput)
	}
	return nil
}

// CreateReward adds a catalog item
func (s *rewardService) CreateReward(ctx context.Context, reward *models.Reward) error {
	if err := validateReward(reward); err != nil {
		return err
	}
	reward.IsActive = true

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.RewardRepository().Create(ctx, reward); err != nil {
		return fmt.Errorf("failed to create reward: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateReward edits a catalog item. Activation and authorship are not
// editable here: IsActive only changes through ToggleReward, and CreatedBy
// stays with the original creator.
func (s *rewardService) UpdateReward(ctx context.Context, reward *models.Reward) error {
	if err := validateReward(reward); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.RewardRepository().GetByID(ctx, reward.ID)
	if err != nil {
		return fmt.Errorf("failed to get reward: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("reward %d: %w", reward.ID, ErrNotFound)
	}

	reward.IsActive = existing.IsActive
	reward.CreatedBy = existing.CreatedBy

	if err := uow.RewardRepository().Update(ctx, reward); err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ToggleReward flips a reward between active and inactive
func (s *rewardService) ToggleReward(ctx context.Context, rewardID int64) (*models.Reward, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	reward, err := uow.RewardRepository().GetByID(ctx, rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	if reward == nil {
		return nil, fmt.Errorf("reward %d: %w", rewardID, ErrNotFound)
	}

	reward.IsActive = !reward.IsActive
	if err := uow.RewardRepository().Update(ctx, reward); err != nil {
		return nil, fmt.Errorf("failed to toggle reward: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return reward, nil
}

// ListRewards returns the catalog ordered by cost
func (s *rewardService) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rewards, err := uow.RewardRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	return rewards, nil
}

// Redeem spends coins on a reward: cost debit, stock decrement, pending
// redemption and the redemption ledger entry land in one transaction.
func (s *rewardService) Redeem(ctx context.Context, userID, rewardID int64) (*models.Redemption, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	reward, err := uow.RewardRepository().GetByID(ctx, rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	if reward == nil {
		return nil, fmt.Errorf("reward %d: %w", rewardID, ErrNotFound)
	}
	if !reward.IsActive {
		return nil, fmt.Errorf("reward %d is inactive: %w", rewardID, ErrConflict)
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if user.Coins < reward.Cost {
		return nil, fmt.Errorf("have %d, need %d: %w", user.Coins, reward.Cost, ErrInsufficientFunds)
	}

	if err := uow.UserRepository().DeductCoins(ctx, userID, reward.Cost); err != nil {
		return nil, fmt.Errorf("failed to debit reward cost: %w", err)
	}

	if err := uow.RewardRepository().DecrementStock(ctx, rewardID); err != nil {
		return nil, fmt.Errorf("failed to take reward stock: %w", err)
	}

	redemption := &models.Redemption{
		RewardID: rewardID,
		UserID:   userID,
		Status:   models.RedemptionStatusPending,
	}
	if err := uow.RedemptionRepository().Create(ctx, redemption); err != nil {
		return nil, fmt.Errorf("failed to create redemption: %w", err)
	}

	entry := &models.Transaction{
		UserID:      userID,
		Amount:      -reward.Cost,
		Type:        models.TransactionTypeRedemption,
		Description: fmt.Sprintf("Redeemed reward: %s", reward.Name),
	}
	if err := RecordTransaction(ctx, uow, entry, user.Coins-reward.Cost); err != nil {
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	// Spending moves employee coins, so the campaign cache must follow
	game, err := uow.GameRepository().GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	if game != nil {
		if _, err := uow.GameRepository().RecomputeCurrentCoins(ctx, game.ID); err != nil {
			return nil, fmt.Errorf("failed to recompute team total: %w", err)
		}
	}

	uow.EventBus().Publish(events.RedemptionEvent{
		RedemptionID: redemption.ID,
		RewardID:     rewardID,
		UserID:       userID,
		Status:       models.RedemptionStatusPending,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return redemption, nil
}

// FulfillRedemption marks a pending redemption as handed out
func (s *rewardService) FulfillRedemption(ctx context.Context, redemptionID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	redemption, err := uow.RedemptionRepository().GetByID(ctx, redemptionID)
	if err != nil {
		return fmt.Errorf("failed to get redemption: %w", err)
	}
	if redemption == nil {
		return fmt.Errorf("redemption %d: %w", redemptionID, ErrNotFound)
	}

	if err := uow.RedemptionRepository().UpdateStatus(ctx, redemptionID, models.RedemptionStatusFulfilled); err != nil {
		return fmt.Errorf("failed to fulfill redemption: %w", err)
	}

	uow.EventBus().Publish(events.RedemptionEvent{
		RedemptionID: redemptionID,
		RewardID:     redemption.RewardID,
		UserID:       redemption.UserID,
		Status:       models.RedemptionStatusFulfilled,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CancelRedemption voids a pending redemption: the cost is refunded and
// limited stock restored. The original redemption log entry stays untouched;
// the refund is a ledger correction, not an edit of history.
func (s *rewardService) CancelRedemption(ctx context.Context, redemptionID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	redemption, err := uow.RedemptionRepository().GetByID(ctx, redemptionID)
	if err != nil {
		return fmt.Errorf("failed to get redemption: %w", err)
	}
	if redemption == nil {
		return fmt.Errorf("redemption %d: %w", redemptionID, ErrNotFound)
	}

	reward, err := uow.RewardRepository().GetByID(ctx, redemption.RewardID)
	if err != nil {
		return fmt.Errorf("failed to get reward: %w", err)
	}
	if reward == nil {
		return fmt.Errorf("reward %d: %w", redemption.RewardID, ErrNotFound)
	}

	if err := uow.RedemptionRepository().UpdateStatus(ctx, redemptionID, models.RedemptionStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel redemption: %w", err)
	}

	if err := uow.UserRepository().AddCoins(ctx, redemption.UserID, reward.Cost); err != nil {
		return fmt.Errorf("failed to refund reward cost: %w", err)
	}

	if err := uow.RewardRepository().IncrementStock(ctx, reward.ID); err != nil {
		return fmt.Errorf("failed to restore reward stock: %w", err)
	}

	game, err := uow.GameRepository().GetCurrent(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current game: %w", err)
	}
	if game != nil {
		if _, err := uow.GameRepository().RecomputeCurrentCoins(ctx, game.ID); err != nil {
			return fmt.Errorf("failed to recompute team total: %w", err)
		}
	}

	uow.EventBus().Publish(events.RedemptionEvent{
		RedemptionID: redemptionID,
		RewardID:     redemption.RewardID,
		UserID:       redemption.UserID,
		Status:       models.RedemptionStatusCancelled,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListRedemptions returns all redemptions, newest first
func (s *rewardService) ListRedemptions(ctx context.Context) ([]*models.Redemption, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	redemptions, err := uow.RedemptionRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}

	return redemptions, nil
}
