package models

import (
	"time"
)

// TransactionType represents the kind of balance change
type TransactionType string

const (
	TransactionTypeTaskReward  TransactionType = "task_reward"
	TransactionTypeLotteryWin  TransactionType = "lottery_win"
	TransactionTypeLotteryLose TransactionType = "lottery_lose"
	TransactionTypeRedemption  TransactionType = "redemption"
	TransactionTypeBonus       TransactionType = "bonus"
)

// Transaction is one row of the append-only coin ledger log. Rows are never
// updated or deleted; reversals are applied as ledger corrections while the
// original row stays in place.
type Transaction struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	GameID      *int64          `db:"game_id"`
	Amount      int64           `db:"amount"`
	Type        TransactionType `db:"type"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}
