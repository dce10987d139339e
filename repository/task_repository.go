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

// TaskRepository implements the service.TaskRepository interface
type TaskRepository struct {
	q queryable
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{q: db.Pool}
}

// newTaskRepositoryWithTx creates a new task repository with a transaction
func newTaskRepositoryWithTx(tx queryable) *TaskRepository {
	return &TaskRepository{q: tx}
}

const taskColumns = `t.id, t.user_id, t.game_id, t.title, t.outcome, t.status, t.reward,
		t.created_at, t.reviewed_at, u.nickname`

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.GameID,
		&task.Title,
		&task.Outcome,
		&task.Status,
		&task.Reward,
		&task.CreatedAt,
		&task.ReviewedAt,
		&task.UserNickname,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new pending task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (user_id, game_id, title, outcome, status, reward)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		task.UserID,
		task.GameID,
		task.Title,
		task.Outcome,
		task.Status,
		task.Reward,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task for user %d: %w", task.UserID, err)
	}

	return nil
}

// GetByID retrieves a task by id. Returns nil without error when no task
// exists.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`

	task, err := scanTask(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetAll returns all tasks, newest first
func (r *TaskRepository) GetAll(ctx context.Context) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC
	`
	return r.queryTasks(ctx, query)
}

// GetByUser returns one user's tasks, newest first
func (r *TaskRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`
	return r.queryTasks(ctx, query, userID)
}

// GetPending returns tasks awaiting review, oldest first
func (r *TaskRepository) GetPending(ctx context.Context) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.status = 'pending'
		ORDER BY t.created_at
	`
	return r.queryTasks(ctx, query)
}

// Review transitions a pending task to approved or rejected. The status
// guard is in the UPDATE so two concurrent reviews cannot both succeed.
func (r *TaskRepository) Review(ctx context.Context, taskID int64, status models.TaskStatus, reward int64, reviewedAt time.Time) error {
	query := `
		UPDATE tasks
		SET status = $1, reward = $2, reviewed_at = $3
		WHERE id = $4 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, status, reward, reviewedAt, taskID)
	if err != nil {
		return fmt.Errorf("failed to review task %d: %w", taskID, err)
	}

	if result.RowsAffected() == 0 {
		task, err := r.GetByID(ctx, taskID)
		if err != nil {
			return fmt.Errorf("failed to check task: %w", err)
		}
		if task == nil {
			return fmt.Errorf("task %d: %w", taskID, service.ErrNotFound)
		}
		return fmt.Errorf("task %d already %s: %w", taskID, task.Status, service.ErrConflict)
	}

	return nil
}
