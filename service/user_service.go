package service

import (
	"context"
	"fmt"

	"teamcoin/models"
)

type userService struct {
	uowFactory UnitOfWorkFactory
	viewLimit  int
}

// NewUserService creates a new user service. viewLimit bounds how many
// ledger entries a single transactions view returns.
func NewUserService(uowFactory UnitOfWorkFactory, viewLimit int) UserService {
	return &userService{
		uowFactory: uowFactory,
		viewLimit:  viewLimit,
	}
}

// GetUser returns one user by id
func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return user, nil
}

// ListUsers returns all accounts
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// ListTransactions returns the bounded most-recent-first ledger view,
// scoped to one user when userID is non-nil
func (s *userService) ListTransactions(ctx context.Context, userID *int64) ([]*models.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	var (
		entries []*models.Transaction
		err     error
	)
	if userID != nil {
		entries, err = uow.TransactionRepository().GetByUser(ctx, *userID, s.viewLimit)
	} else {
		entries, err = uow.TransactionRepository().GetRecent(ctx, s.viewLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return entries, nil
}
