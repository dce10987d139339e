package api

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"teamcoin/models"
)

// Testify mocks over the service interfaces, used by the handler tests.

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, name, nickname string) (*models.User, string, error) {
	args := m.Called(ctx, email, password, name, nickname)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserService) ListTransactions(ctx context.Context, userID *int64) ([]*models.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

type mockLotteryService struct {
	mock.Mock
}

func (m *mockLotteryService) PlayLottery(ctx context.Context, userID int64, low, high int, stake int64) (*models.LotteryResult, error) {
	args := m.Called(ctx, userID, low, high, stake)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LotteryResult), args.Error(1)
}

func (m *mockLotteryService) Multiplier(low, high int) float64 {
	args := m.Called(low, high)
	return args.Get(0).(float64)
}

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) SubmitTask(ctx context.Context, userID int64, title, outcome string) (*models.Task, error) {
	args := m.Called(ctx, userID, title, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *mockTaskService) ApproveTask(ctx context.Context, taskID, reviewerID, reward int64) error {
	args := m.Called(ctx, taskID, reviewerID, reward)
	return args.Error(0)
}

func (m *mockTaskService) RejectTask(ctx context.Context, taskID, reviewerID int64) error {
	args := m.Called(ctx, taskID, reviewerID)
	return args.Error(0)
}

func (m *mockTaskService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *mockTaskService) ListUserTasks(ctx context.Context, userID int64) ([]*models.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

type mockRewardService struct {
	mock.Mock
}

func (m *mockRewardService) CreateReward(ctx context.Context, reward *models.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *mockRewardService) UpdateReward(ctx context.Context, reward *models.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *mockRewardService) ToggleReward(ctx context.Context, rewardID int64) (*models.Reward, error) {
	args := m.Called(ctx, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reward), args.Error(1)
}

func (m *mockRewardService) ListRewards(ctx context.Context) ([]*models.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reward), args.Error(1)
}

func (m *mockRewardService) Redeem(ctx context.Context, userID, rewardID int64) (*models.Redemption, error) {
	args := m.Called(ctx, userID, rewardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Redemption), args.Error(1)
}

func (m *mockRewardService) FulfillRedemption(ctx context.Context, redemptionID int64) error {
	args := m.Called(ctx, redemptionID)
	return args.Error(0)
}

func (m *mockRewardService) CancelRedemption(ctx context.Context, redemptionID int64) error {
	args := m.Called(ctx, redemptionID)
	return args.Error(0)
}

func (m *mockRewardService) ListRedemptions(ctx context.Context) ([]*models.Redemption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Redemption), args.Error(1)
}

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) CreateGame(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameService) UpdateGame(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameService) GetCurrentGame(ctx context.Context) (*models.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *mockGameService) EndGame(ctx context.Context, gameID int64) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *mockGameService) EndExpiredGames(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockGameService) RecomputeTeamTotal(ctx context.Context, gameID int64) (int64, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGameService) TeamContributions(ctx context.Context) ([]*models.Contribution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contribution), args.Error(1)
}

type mockLeaderboardService struct {
	mock.Mock
}

func (m *mockLeaderboardService) AllTime(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *mockLeaderboardService) Monthly(ctx context.Context, month time.Time) ([]*models.MonthlyLeaderboardEntry, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MonthlyLeaderboardEntry), args.Error(1)
}

func (m *mockLeaderboardService) Champions(ctx context.Context) ([]*models.MonthlyLeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MonthlyLeaderboardEntry), args.Error(1)
}
