package service

import (
	"context"
	"fmt"
	"time"

	"teamcoin/models"
)

const monthlyLeaderboardLimit = 100

type leaderboardService struct {
	uowFactory UnitOfWorkFactory
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(uowFactory UnitOfWorkFactory) LeaderboardService {
	return &leaderboardService{
		uowFactory: uowFactory,
	}
}

// AllTime ranks employees by coin balance. Ties share adjacent ranks in
// insertion order; managers never appear.
func (s *leaderboardService) AllTime(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	employees, err := uow.UserRepository().GetEmployeesByCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank employees: %w", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(employees))
	for i, u := range employees {
		entries = append(entries, &models.LeaderboardEntry{
			UserID:   u.ID,
			Nickname: u.Nickname,
			Coins:    u.Coins,
			Rank:     i + 1,
		})
	}

	return entries, nil
}

// Monthly returns the earnings leaderboard for one calendar month
func (s *leaderboardService) Monthly(ctx context.Context, month time.Time) ([]*models.MonthlyLeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.MonthlyEarningRepository().GetMonth(ctx, month, monthlyLeaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly leaderboard: %w", err)
	}

	return entries, nil
}

// Champions returns the top earner of each recorded month, oldest first
func (s *leaderboardService) Champions(ctx context.Context) ([]*models.MonthlyLeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.MonthlyEarningRepository().GetTopPerMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly champions: %w", err)
	}

	return entries, nil
}
