package models

import (
	"time"
)

// TaskStatus is the review state of a submitted task
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "pending"
	TaskStatusApproved TaskStatus = "approved"
	TaskStatusRejected TaskStatus = "rejected"
)

// Task is a unit of work submitted by an employee for manager review.
// Reward stays zero until a manager approves the task.
type Task struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	GameID     *int64     `db:"game_id"`
	Title      string     `db:"title"`
	Outcome    string     `db:"outcome"`
	Status     TaskStatus `db:"status"`
	Reward     int64      `db:"reward"`
	CreatedAt  time.Time  `db:"created_at"`
	ReviewedAt *time.Time `db:"reviewed_at"`

	// Joined from users for display
	UserNickname string `db:"-"`
}
