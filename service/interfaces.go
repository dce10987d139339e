package service

import (
	"context"
	"time"

	"teamcoin/events"
	"teamcoin/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id, nil when missing
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by email, nil when missing
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create inserts a new user with the starting balance
	Create(ctx context.Context, user *models.User) error

	// AddCoins credits a user's balance atomically
	AddCoins(ctx context.Context, userID int64, amount int64) error

	// DeductCoins debits a user's balance atomically, failing with
	// ErrInsufficientFunds when the balance cannot cover the amount
	DeductCoins(ctx context.Context, userID int64, amount int64) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)

	// GetEmployeesByCoins returns employees in leaderboard order
	GetEmployeesByCoins(ctx context.Context) ([]*models.User, error)

	// SumEmployeeCoins derives the team total from user balances
	SumEmployeeCoins(ctx context.Context) (int64, error)
}

// TransactionRepository defines the interface for the append-only ledger log
type TransactionRepository interface {
	// Create appends one entry; entries are never updated or deleted
	Create(ctx context.Context, entry *models.Transaction) error

	// GetRecent returns the newest entries across all users
	GetRecent(ctx context.Context, limit int) ([]*models.Transaction, error)

	// GetByUser returns one user's newest entries
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error)

	// SumByUser sums all logged amounts for a user
	SumByUser(ctx context.Context, userID int64) (int64, error)
}

// GameRepository defines the interface for campaign data access
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	GetCurrent(ctx context.Context) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error

	// RecomputeCurrentCoins re-derives and persists the cached team total,
	// returning the fresh value
	RecomputeCurrentCoins(ctx context.Context, gameID int64) (int64, error)

	// GetExpiredActive returns active campaigns past their end date
	GetExpiredActive(ctx context.Context, now time.Time) ([]*models.Game, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context) ([]*models.Task, error)
	GetByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	GetPending(ctx context.Context) ([]*models.Task, error)

	// Review transitions a pending task; ErrConflict when already reviewed
	Review(ctx context.Context, taskID int64, status models.TaskStatus, reward int64, reviewedAt time.Time) error
}

// RewardRepository defines the interface for reward catalog access
type RewardRepository interface {
	Create(ctx context.Context, reward *models.Reward) error
	GetByID(ctx context.Context, id int64) (*models.Reward, error)
	GetAll(ctx context.Context) ([]*models.Reward, error)
	Update(ctx context.Context, reward *models.Reward) error

	// DecrementStock takes one unit; ErrOutOfStock when none remain
	DecrementStock(ctx context.Context, rewardID int64) error

	// IncrementStock returns one unit after a cancellation
	IncrementStock(ctx context.Context, rewardID int64) error
}

// RedemptionRepository defines the interface for redemption data access
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *models.Redemption) error
	GetByID(ctx context.Context, id int64) (*models.Redemption, error)
	GetAll(ctx context.Context) ([]*models.Redemption, error)

	// UpdateStatus resolves a pending redemption; ErrConflict when already
	// resolved
	UpdateStatus(ctx context.Context, id int64, status models.RedemptionStatus) error
}

// MonthlyEarningRepository defines the interface for the period-scoped
// earnings aggregate
type MonthlyEarningRepository interface {
	// Add folds a positive amount into the month of `at`
	Add(ctx context.Context, userID int64, at time.Time, amount int64) error

	// GetMonth returns one month's earnings leaderboard
	GetMonth(ctx context.Context, month time.Time, limit int) ([]*models.MonthlyLeaderboardEntry, error)

	// GetTopPerMonth returns the best earner per month
	GetTopPerMonth(ctx context.Context) ([]*models.MonthlyLeaderboardEntry, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// LotteryService defines the interface for the range-bet wager engine
type LotteryService interface {
	// PlayLottery validates and resolves a range bet for a user
	PlayLottery(ctx context.Context, userID int64, low, high int, stake int64) (*models.LotteryResult, error)

	// Multiplier returns the payout multiplier for a bet range
	Multiplier(low, high int) float64
}

// TaskService defines the interface for task submission and review
type TaskService interface {
	SubmitTask(ctx context.Context, userID int64, title, outcome string) (*models.Task, error)
	ApproveTask(ctx context.Context, taskID, reviewerID, reward int64) error
	RejectTask(ctx context.Context, taskID, reviewerID int64) error
	ListTasks(ctx context.Context) ([]*models.Task, error)
	ListUserTasks(ctx context.Context, userID int64) ([]*models.Task, error)
}

// RewardService defines the interface for the reward catalog and redemptions
type RewardService interface {
	CreateReward(ctx context.Context, reward *models.Reward) error
	UpdateReward(ctx context.Context, reward *models.Reward) error
	ToggleReward(ctx context.Context, rewardID int64) (*models.Reward, error)
	ListRewards(ctx context.Context) ([]*models.Reward, error)
	Redeem(ctx context.Context, userID, rewardID int64) (*models.Redemption, error)
	FulfillRedemption(ctx context.Context, redemptionID int64) error
	CancelRedemption(ctx context.Context, redemptionID int64) error
	ListRedemptions(ctx context.Context) ([]*models.Redemption, error)
}

// GameService defines the interface for campaign operations
type GameService interface {
	CreateGame(ctx context.Context, game *models.Game) error
	UpdateGame(ctx context.Context, game *models.Game) error
	GetCurrentGame(ctx context.Context) (*models.Game, error)
	EndGame(ctx context.Context, gameID int64) error

	// EndExpiredGames closes every active campaign past its end date
	EndExpiredGames(ctx context.Context) error

	// RecomputeTeamTotal re-derives the campaign's cached coin total
	RecomputeTeamTotal(ctx context.Context, gameID int64) (int64, error)

	// TeamContributions returns each employee's share of the current total
	TeamContributions(ctx context.Context) ([]*models.Contribution, error)
}

// LeaderboardService defines the interface for leaderboard queries
type LeaderboardService interface {
	// AllTime returns employees ranked by coin balance
	AllTime(ctx context.Context) ([]*models.LeaderboardEntry, error)

	// Monthly returns the earnings leaderboard for one calendar month
	Monthly(ctx context.Context, month time.Time) ([]*models.MonthlyLeaderboardEntry, error)

	// Champions returns the top earner of each recorded month
	Champions(ctx context.Context) ([]*models.MonthlyLeaderboardEntry, error)
}

// UserService defines the interface for user queries
type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// ListTransactions returns the bounded most-recent-first ledger view,
	// optionally scoped to one user (userID nil for all)
	ListTransactions(ctx context.Context, userID *int64) ([]*models.Transaction, error)
}

// AuthService defines the interface for registration and sessions
type AuthService interface {
	// SignUp registers a new employee account and returns it with a token
	SignUp(ctx context.Context, email, password, name, nickname string) (*models.User, string, error)

	// SignIn verifies credentials and returns the user with a fresh token
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)

	// Authenticate resolves a bearer token to its user
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	TransactionRepository() TransactionRepository
	GameRepository() GameRepository
	TaskRepository() TaskRepository
	RewardRepository() RewardRepository
	RedemptionRepository() RedemptionRepository
	MonthlyEarningRepository() MonthlyEarningRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
