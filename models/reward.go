package models

import (
	"time"
)

// Reward is a catalog item employees can redeem coins for. Stock is nil for
// unlimited items.
type Reward struct {
	ID          int64     `db:"id"`
	Icon        string    `db:"icon"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Cost        int64     `db:"cost"`
	Category    string    `db:"category"`
	Stock       *int64    `db:"stock"`
	IsActive    bool      `db:"is_active"`
	CreatedBy   int64     `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

// InStock reports whether the reward can currently be redeemed.
func (r *Reward) InStock() bool {
	return r.IsActive && (r.Stock == nil || *r.Stock > 0)
}

// RedemptionStatus is the fulfillment state of a redemption
type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusFulfilled RedemptionStatus = "fulfilled"
	RedemptionStatusCancelled RedemptionStatus = "cancelled"
)

// Redemption records an employee spending coins on a reward
type Redemption struct {
	ID        int64            `db:"id"`
	RewardID  int64            `db:"reward_id"`
	UserID    int64            `db:"user_id"`
	Status    RedemptionStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
}
