package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teamcoin/events"
	"teamcoin/models"
)

type taskService struct {
	uowFactory UnitOfWorkFactory
}

// NewTaskService creates a new task service
func NewTaskService(uowFactory UnitOfWorkFactory) TaskService {
	return &taskService{
		uowFactory: uowFactory,
	}
}

// SubmitTask files a pending task for the active campaign
func (s *taskService) SubmitTask(ctx context.Context, userID int64, title, outcome string) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("task title is required: %w", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	game, err := uow.GameRepository().GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	var gameID *int64
	if game != nil {
		gameID = &game.ID
	}

	task := &models.Task{
		UserID:       userID,
		GameID:       gameID,
		Title:        strings.TrimSpace(title),
		Outcome:      strings.TrimSpace(outcome),
		Status:       models.TaskStatusPending,
		Reward:       0,
		UserNickname: user.Nickname,
	}

	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return task, nil
}

// ApproveTask grants the reward for a pending task: the task flips to
// approved, the submitter is credited, a task_reward entry lands in the
// ledger log and the campaign total is recomputed, all in one transaction.
func (s *taskService) ApproveTask(ctx context.Context, taskID, reviewerID, reward int64) error {
	if reward <= 0 {
		return fmt.Errorf("task reward must be positive: %w", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	task, err := uow.TaskRepository().GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}

	user, err := uow.UserRepository().GetByID(ctx, task.UserID)
	if err != nil {
		return fmt.Errorf("failed to get task submitter: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", task.UserID, ErrNotFound)
	}

	now := time.Now()
	if err := uow.TaskRepository().Review(ctx, taskID, models.TaskStatusApproved, reward, now); err != nil {
		return fmt.Errorf("failed to approve task: %w", err)
	}

	if err := uow.UserRepository().AddCoins(ctx, task.UserID, reward); err != nil {
		return fmt.Errorf("failed to credit task reward: %w", err)
	}

	entry := &models.Transaction{
		UserID:      task.UserID,
		GameID:      task.GameID,
		Amount:      reward,
		Type:        models.TransactionTypeTaskReward,
		Description: fmt.Sprintf("Task approved: %s", task.Title),
	}

	if err := RecordTransaction(ctx, uow, entry, user.Coins+reward); err != nil {
		return fmt.Errorf("failed to record task reward: %w", err)
	}

	if task.GameID != nil {
		if _, err := uow.GameRepository().RecomputeCurrentCoins(ctx, *task.GameID); err != nil {
			return fmt.Errorf("failed to recompute team total: %w", err)
		}
	}

	uow.EventBus().Publish(events.TaskReviewedEvent{
		TaskID:     taskID,
		UserID:     task.UserID,
		ReviewerID: reviewerID,
		Approved:   true,
		Reward:     reward,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RejectTask declines a pending task without any coin movement
func (s *taskService) RejectTask(ctx context.Context, taskID, reviewerID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	task, err := uow.TaskRepository().GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}

	if err := uow.TaskRepository().Review(ctx, taskID, models.TaskStatusRejected, 0, time.Now()); err != nil {
		return fmt.Errorf("failed to reject task: %w", err)
	}

	uow.EventBus().Publish(events.TaskReviewedEvent{
		TaskID:     taskID,
		UserID:     task.UserID,
		ReviewerID: reviewerID,
		Approved:   false,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListTasks returns every task, newest first
func (s *taskService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tasks, err := uow.TaskRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// ListUserTasks returns one user's tasks, newest first
func (s *taskService) ListUserTasks(ctx context.Context, userID int64) ([]*models.Task, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tasks, err := uow.TaskRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tasks: %w", err)
	}

	return tasks, nil
}
