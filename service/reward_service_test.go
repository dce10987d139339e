package service

import (
	"context"
	"errors"
	"testing"

	"teamcoin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRewardService_Redeem(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTransactionRepo := new(MockTransactionRepository)
	mockGameRepo := new(MockGameRepository)
	mockRewardRepo := new(MockRewardRepository)
	mockRedemptionRepo := new(MockRedemptionRepository)

	mockUoW.SetRepositories(mockUserRepo, mockTransactionRepo, mockGameRepo, nil, mockRewardRepo, mockRedemptionRepo, nil)

	svc := NewRewardService(mockFactory)

	stock := int64(5)
	reward := &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 150, Stock: &stock, IsActive: true}
	game := &models.Game{ID: 3, Status: models.GameStatusActive}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(reward, nil)
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{ID: 7, Coins: 500}, nil)
	mockUserRepo.On("DeductCoins", ctx, int64(7), int64(150)).Return(nil)
	mockRewardRepo.On("DecrementStock", ctx, int64(9)).Return(nil)

	mockRedemptionRepo.On("Create", ctx, mock.MatchedBy(func(r *models.Redemption) bool {
		return r.RewardID == 9 && r.UserID == 7 && r.Status == models.RedemptionStatusPending
	})).Return(nil)

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(e *models.Transaction) bool {
		return e.UserID == 7 &&
			e.Amount == -150 &&
			e.Type == models.TransactionTypeRedemption &&
			e.Description == "Redeemed reward: Coffee voucher"
	})).Return(nil)

	mockGameRepo.On("GetCurrent", ctx).Return(game, nil)
	mockGameRepo.On("RecomputeCurrentCoins", ctx, int64(3)).Return(int64(4850), nil)

	redemption, err := svc.Redeem(ctx, 7, 9)

	assert.NoError(t, err)
	assert.NotNil(t, redemption)
	assert.Equal(t, models.RedemptionStatusPending, redemption.Status)

	mockRewardRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockRedemptionRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockGameRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestRewardService_Redeem_InsufficientFunds(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockRewardRepo := new(MockRewardRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, mockRewardRepo, nil, nil)

	svc := NewRewardService(mockFactory)

	reward := &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 150, IsActive: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(reward, nil)
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{ID: 7, Coins: 100}, nil)

	redemption, err := svc.Redeem(ctx, 7, 9)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Nil(t, redemption)
	mockUserRepo.AssertNotCalled(t, "DeductCoins", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestRewardService_Redeem_InactiveReward(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRewardRepo := new(MockRewardRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, mockRewardRepo, nil, nil)

	svc := NewRewardService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(&models.Reward{ID: 9, Cost: 150, IsActive: false}, nil)

	redemption, err := svc.Redeem(ctx, 7, 9)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, redemption)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestRewardService_Redeem_OutOfStock(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockRewardRepo := new(MockRewardRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, mockRewardRepo, nil, nil)

	svc := NewRewardService(mockFactory)

	stock := int64(0)
	reward := &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 150, Stock: &stock, IsActive: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(reward, nil)
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{ID: 7, Coins: 500}, nil)
	mockUserRepo.On("DeductCoins", ctx, int64(7), int64(150)).Return(nil)
	mockRewardRepo.On("DecrementStock", ctx, int64(9)).Return(ErrOutOfStock)

	redemption, err := svc.Redeem(ctx, 7, 9)

	// The rollback also undoes the debit
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfStock))
	assert.Nil(t, redemption)
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.AssertCalled(t, "Rollback")
}

func TestRewardService_CancelRedemption(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGameRepo := new(MockGameRepository)
	mockRewardRepo := new(MockRewardRepository)
	mockRedemptionRepo := new(MockRedemptionRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockGameRepo, nil, mockRewardRepo, mockRedemptionRepo, nil)

	svc := NewRewardService(mockFactory)

	stock := int64(4)
	reward := &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 150, Stock: &stock, IsActive: true}
	redemption := &models.Redemption{ID: 21, RewardID: 9, UserID: 7, Status: models.RedemptionStatusPending}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRedemptionRepo.On("GetByID", ctx, int64(21)).Return(redemption, nil)
	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(reward, nil)
	mockRedemptionRepo.On("UpdateStatus", ctx, int64(21), models.RedemptionStatusCancelled).Return(nil)
	mockUserRepo.On("AddCoins", ctx, int64(7), int64(150)).Return(nil)
	mockRewardRepo.On("IncrementStock", ctx, int64(9)).Return(nil)
	mockGameRepo.On("GetCurrent", ctx).Return(nil, nil)

	err := svc.CancelRedemption(ctx, 21)

	assert.NoError(t, err)
	mockRedemptionRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockRewardRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestRewardService_FulfillRedemption_AlreadyResolved(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRedemptionRepo := new(MockRedemptionRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, mockRedemptionRepo, nil)

	svc := NewRewardService(mockFactory)

	redemption := &models.Redemption{ID: 21, RewardID: 9, UserID: 7, Status: models.RedemptionStatusCancelled}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRedemptionRepo.On("GetByID", ctx, int64(21)).Return(redemption, nil)
	mockRedemptionRepo.On("UpdateStatus", ctx, int64(21), models.RedemptionStatusFulfilled).
		Return(errors.New("redemption 21 is cancelled: conflict"))

	err := svc.FulfillRedemption(ctx, 21)

	assert.Error(t, err)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestRewardService_UpdateReward_PreservesActivationAndCreator(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRewardRepo := new(MockRewardRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, mockRewardRepo, nil, nil)

	svc := NewRewardService(mockFactory)

	existing := &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 150, IsActive: false, CreatedBy: 2}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(existing, nil)
	mockRewardRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Reward) bool {
		return r.ID == 9 && r.Cost == 200 && !r.IsActive && r.CreatedBy == 2
	})).Return(nil)

	// An edit that never mentions activation must not reactivate a
	// deactivated reward, whoever submits it.
	edited := &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 200, IsActive: true, CreatedBy: 4}

	err := svc.UpdateReward(ctx, edited)

	assert.NoError(t, err)
	assert.False(t, edited.IsActive)
	assert.Equal(t, int64(2), edited.CreatedBy)
	mockRewardRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestRewardService_UpdateReward_NotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRewardRepo := new(MockRewardRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, mockRewardRepo, nil, nil)

	svc := NewRewardService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRewardRepo.On("GetByID", ctx, int64(9)).Return(nil, nil)

	err := svc.UpdateReward(ctx, &models.Reward{ID: 9, Name: "Coffee voucher", Cost: 200})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	mockRewardRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestRewardService_CreateReward_Validation(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewRewardService(mockFactory)

	negStock := int64(-1)
	cases := []struct {
		name   string
		reward *models.Reward
	}{
		{"empty name", &models.Reward{Name: "  ", Cost: 100}},
		{"zero cost", &models.Reward{Name: "Mug", Cost: 0}},
		{"negative cost", &models.Reward{Name: "Mug", Cost: -5}},
		{"negative stock", &models.Reward{Name: "Mug", Cost: 100, Stock: &negStock}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CreateReward(ctx, tc.reward)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}

	mockFactory.AssertNotCalled(t, "Create")
}
