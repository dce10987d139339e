package models

import (
	"time"
)

// Role determines what a user is allowed to do
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// User represents a team member with a coin balance
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Nickname     string    `db:"nickname"`
	Role         Role      `db:"role"`
	Coins        int64     `db:"coins"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsManager reports whether the user can review tasks and administer
// rewards and campaigns.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
