package models

import (
	"time"
)

// SponsorType identifies who funds a campaign's reward
type SponsorType string

const (
	SponsorTypeSelf    SponsorType = "self"
	SponsorTypeCompany SponsorType = "company"
	SponsorTypeOther   SponsorType = "other"
)

// GameStatus is the lifecycle state of a campaign
type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusEnded  GameStatus = "ended"
)

// Game is a time-boxed incentive campaign with a team coin target.
// CurrentCoins is a cached aggregate of employee balances; it is always
// recomputed from the users table, never trusted as authoritative.
type Game struct {
	ID           int64       `db:"id"`
	Name         string      `db:"name"`
	TargetCoins  int64       `db:"target_coins"`
	CurrentCoins int64       `db:"current_coins"`
	Reward       string      `db:"reward"`
	SponsorType  SponsorType `db:"sponsor_type"`
	Sponsor      string      `db:"sponsor"`
	StartDate    time.Time   `db:"start_date"`
	EndDate      time.Time   `db:"end_date"`
	BonusTop1    int64       `db:"bonus_top1"`
	BonusTop2    int64       `db:"bonus_top2"`
	BonusTop3    int64       `db:"bonus_top3"`
	Status       GameStatus  `db:"status"`
	CreatedAt    time.Time   `db:"created_at"`
}

// Bonuses returns the top-1..3 bonus amounts in rank order.
func (g *Game) Bonuses() []int64 {
	return []int64{g.BonusTop1, g.BonusTop2, g.BonusTop3}
}
