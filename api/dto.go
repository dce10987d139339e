package api

import (
	"time"

	"teamcoin/models"
)

// Response DTOs. Models carry no JSON tags; the wire shape is owned here so
// internal fields like password hashes never leak.

type userDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	Coins     int64     `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Nickname:  u.Nickname,
		Role:      string(u.Role),
		Coins:     u.Coins,
		CreatedAt: u.CreatedAt,
	}
}

func toUserDTOs(users []*models.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

type authDTO struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

type transactionDTO struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GameID      *int64    `json:"game_id,omitempty"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionDTOs(entries []*models.Transaction) []transactionDTO {
	out := make([]transactionDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, transactionDTO{
			ID:          e.ID,
			UserID:      e.UserID,
			GameID:      e.GameID,
			Amount:      e.Amount,
			Type:        string(e.Type),
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}

type lotteryResultDTO struct {
	Drawn      int     `json:"drawn"`
	Won        bool    `json:"won"`
	Low        int     `json:"low"`
	High       int     `json:"high"`
	Stake      int64   `json:"stake"`
	Multiplier float64 `json:"multiplier"`
	Payout     int64   `json:"payout"`
	NetGain    int64   `json:"net_gain"`
	NewBalance int64   `json:"new_balance"`
}

func toLotteryResultDTO(r *models.LotteryResult) lotteryResultDTO {
	return lotteryResultDTO{
		Drawn:      r.Drawn,
		Won:        r.Won,
		Low:        r.LowBound,
		High:       r.HighBound,
		Stake:      r.Stake,
		Multiplier: r.Multiplier,
		Payout:     r.Payout,
		NetGain:    r.NetGain,
		NewBalance: r.NewBalance,
	}
}

type taskDTO struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	UserNickname string     `json:"user_nickname,omitempty"`
	GameID       *int64     `json:"game_id,omitempty"`
	Title        string     `json:"title"`
	Outcome      string     `json:"outcome"`
	Status       string     `json:"status"`
	Reward       int64      `json:"reward"`
	CreatedAt    time.Time  `json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

func toTaskDTO(t *models.Task) taskDTO {
	return taskDTO{
		ID:           t.ID,
		UserID:       t.UserID,
		UserNickname: t.UserNickname,
		GameID:       t.GameID,
		Title:        t.Title,
		Outcome:      t.Outcome,
		Status:       string(t.Status),
		Reward:       t.Reward,
		CreatedAt:    t.CreatedAt,
		ReviewedAt:   t.ReviewedAt,
	}
}

func toTaskDTOs(tasks []*models.Task) []taskDTO {
	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out
}

type rewardDTO struct {
	ID          int64     `json:"id"`
	Icon        string    `json:"icon,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Cost        int64     `json:"cost"`
	Category    string    `json:"category,omitempty"`
	Stock       *int64    `json:"stock"`
	IsActive    bool      `json:"is_active"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRewardDTO(r *models.Reward) rewardDTO {
	return rewardDTO{
		ID:          r.ID,
		Icon:        r.Icon,
		Name:        r.Name,
		Description: r.Description,
		Cost:        r.Cost,
		Category:    r.Category,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
		InStock:     r.InStock(),
		CreatedAt:   r.CreatedAt,
	}
}

func toRewardDTOs(rewards []*models.Reward) []rewardDTO {
	out := make([]rewardDTO, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, toRewardDTO(r))
	}
	return out
}

type redemptionDTO struct {
	ID        int64     `json:"id"`
	RewardID  int64     `json:"reward_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toRedemptionDTO(r *models.Redemption) redemptionDTO {
	return redemptionDTO{
		ID:        r.ID,
		RewardID:  r.RewardID,
		UserID:    r.UserID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func toRedemptionDTOs(redemptions []*models.Redemption) []redemptionDTO {
	out := make([]redemptionDTO, 0, len(redemptions))
	for _, r := range redemptions {
		out = append(out, toRedemptionDTO(r))
	}
	return out
}

type gameDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TargetCoins  int64     `json:"target_coins"`
	CurrentCoins int64     `json:"current_coins"`
	Reward       string    `json:"reward"`
	SponsorType  string    `json:"sponsor_type"`
	Sponsor      string    `json:"sponsor,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	BonusTop1    int64     `json:"bonus_top1"`
	BonusTop2    int64     `json:"bonus_top2"`
	BonusTop3    int64     `json:"bonus_top3"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func toGameDTO(g *models.Game) gameDTO {
	return gameDTO{
		ID:           g.ID,
		Name:         g.Name,
		TargetCoins:  g.TargetCoins,
		CurrentCoins: g.CurrentCoins,
		Reward:       g.Reward,
		SponsorType:  string(g.SponsorType),
		Sponsor:      g.Sponsor,
		StartDate:    g.StartDate,
		EndDate:      g.EndDate,
		BonusTop1:    g.BonusTop1,
		BonusTop2:    g.BonusTop2,
		BonusTop3:    g.BonusTop3,
		Status:       string(g.Status),
		CreatedAt:    g.CreatedAt,
	}
}

type leaderboardEntryDTO struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Coins    int64  `json:"coins"`
	Rank     int    `json:"rank"`
}

func toLeaderboardDTOs(entries []*models.LeaderboardEntry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryDTO{
			UserID:   e.UserID,
			Nickname: e.Nickname,
			Coins:    e.Coins,
			Rank:     e.Rank,
		})
	}
	return out
}

type monthlyEntryDTO struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Month    string `json:"month"`
	Earned   int64  `json:"earned"`
}

func toMonthlyEntryDTOs(entries []*models.MonthlyLeaderboardEntry) []monthlyEntryDTO {
	out := make([]monthlyEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, monthlyEntryDTO{
			UserID:   e.UserID,
			Nickname: e.Nickname,
			Month:    e.Month.Format("2006-01"),
			Earned:   e.Earned,
		})
	}
	return out
}

type contributionDTO struct {
	UserID     int64  `json:"user_id"`
	Nickname   string `json:"nickname"`
	Coins      int64  `json:"coins"`
	Percentage int    `json:"percentage"`
}

func toContributionDTOs(contributions []*models.Contribution) []contributionDTO {
	out := make([]contributionDTO, 0, len(contributions))
	for _, c := range contributions {
		out = append(out, contributionDTO{
			UserID:     c.UserID,
			Nickname:   c.Nickname,
			Coins:      c.Coins,
			Percentage: c.Percentage,
		})
	}
	return out
}
