package models

import (
	"time"
)

// MonthlyEarning is a user's accumulated positive net gain for one calendar
// month. Only positive ledger amounts are folded in; losing bets and
// redemptions never decrement it.
type MonthlyEarning struct {
	ID     int64     `db:"id"`
	UserID int64     `db:"user_id"`
	Month  time.Time `db:"month"`
	Amount int64     `db:"amount"`
}

// LeaderboardEntry is one row of the all-time coin leaderboard
type LeaderboardEntry struct {
	UserID   int64  `db:"user_id"`
	Nickname string `db:"nickname"`
	Coins    int64  `db:"coins"`
	Rank     int    `db:"-"`
}

// MonthlyLeaderboardEntry is one row of the period-scoped earnings leaderboard
type MonthlyLeaderboardEntry struct {
	UserID   int64     `db:"user_id"`
	Nickname string    `db:"nickname"`
	Month    time.Time `db:"month"`
	Earned   int64     `db:"earned"`
}

// Contribution is one employee's share of the current campaign total
type Contribution struct {
	UserID     int64
	Nickname   string
	Coins      int64
	Percentage int
}
