package service

import (
	"context"
	"errors"
	"testing"

	"teamcoin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTaskService_SubmitTask(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockGameRepo := new(MockGameRepository)
	mockTaskRepo := new(MockTaskRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockGameRepo, mockTaskRepo, nil, nil, nil)

	svc := NewTaskService(mockFactory)

	game := &models.Game{ID: 3, Status: models.GameStatusActive}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{ID: 7, Nickname: "ada"}, nil)
	mockGameRepo.On("GetCurrent", ctx).Return(game, nil)

	mockTaskRepo.On("Create", ctx, mock.MatchedBy(func(task *models.Task) bool {
		return task.UserID == 7 &&
			task.Title == "Shipped onboarding flow" &&
			task.Status == models.TaskStatusPending &&
			task.GameID != nil && *task.GameID == 3
	})).Return(nil)

	task, err := svc.SubmitTask(ctx, 7, "  Shipped onboarding flow  ", "Two days early")

	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, "ada", task.UserNickname)

	mockTaskRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestTaskService_SubmitTask_EmptyTitle(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewTaskService(mockFactory)

	task, err := svc.SubmitTask(ctx, 7, "   ", "")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, task)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestTaskService_ApproveTask(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTransactionRepo := new(MockTransactionRepository)
	mockGameRepo := new(MockGameRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockMonthlyRepo := new(MockMonthlyEarningRepository)

	mockUoW.SetRepositories(mockUserRepo, mockTransactionRepo, mockGameRepo, mockTaskRepo, nil, nil, mockMonthlyRepo)

	svc := NewTaskService(mockFactory)

	gameID := int64(3)
	task := &models.Task{
		ID:     11,
		UserID: 7,
		GameID: &gameID,
		Title:  "Shipped onboarding flow",
		Status: models.TaskStatusPending,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTaskRepo.On("GetByID", ctx, int64(11)).Return(task, nil)
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{ID: 7, Coins: 200}, nil)
	mockTaskRepo.On("Review", ctx, int64(11), models.TaskStatusApproved, int64(50), mock.AnythingOfType("time.Time")).Return(nil)
	mockUserRepo.On("AddCoins", ctx, int64(7), int64(50)).Return(nil)

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(e *models.Transaction) bool {
		return e.UserID == 7 &&
			e.Amount == 50 &&
			e.Type == models.TransactionTypeTaskReward &&
			e.Description == "Task approved: Shipped onboarding flow"
	})).Return(nil)

	mockMonthlyRepo.On("Add", ctx, int64(7), mock.AnythingOfType("time.Time"), int64(50)).Return(nil)
	mockGameRepo.On("RecomputeCurrentCoins", ctx, int64(3)).Return(int64(5000), nil)

	err := svc.ApproveTask(ctx, 11, 2, 50)

	assert.NoError(t, err)
	mockTaskRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockMonthlyRepo.AssertExpectations(t)
	mockGameRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestTaskService_ApproveTask_NonPositiveReward(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewTaskService(mockFactory)

	for _, reward := range []int64{0, -10} {
		err := svc.ApproveTask(ctx, 11, 2, reward)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
	mockFactory.AssertNotCalled(t, "Create")
}

func TestTaskService_ApproveTask_AlreadyReviewed(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTaskRepo := new(MockTaskRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockTaskRepo, nil, nil, nil)

	svc := NewTaskService(mockFactory)

	task := &models.Task{ID: 11, UserID: 7, Status: models.TaskStatusApproved}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTaskRepo.On("GetByID", ctx, int64(11)).Return(task, nil)
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(&models.User{ID: 7}, nil)
	mockTaskRepo.On("Review", ctx, int64(11), models.TaskStatusApproved, int64(50), mock.AnythingOfType("time.Time")).
		Return(errors.New("task 11 is approved: conflict"))

	err := svc.ApproveTask(ctx, 11, 2, 50)

	assert.Error(t, err)
	// A second review never credits coins
	mockUserRepo.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTaskService_RejectTask(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTaskRepo := new(MockTaskRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, mockTaskRepo, nil, nil, nil)

	svc := NewTaskService(mockFactory)

	task := &models.Task{ID: 11, UserID: 7, Status: models.TaskStatusPending}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTaskRepo.On("GetByID", ctx, int64(11)).Return(task, nil)
	mockTaskRepo.On("Review", ctx, int64(11), models.TaskStatusRejected, int64(0), mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.RejectTask(ctx, 11, 2)

	assert.NoError(t, err)
	// Rejection moves no coins
	mockUserRepo.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
	mockTaskRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}
