package testutil

import (
	"fmt"
	"time"

	"teamcoin/models"
)

// CreateTestEmployee creates an employee with the given nickname and balance
func CreateTestEmployee(nickname string, coins int64) *models.User {
	return &models.User{
		Email:        fmt.Sprintf("%s@example.com", nickname),
		PasswordHash: "$2a$04$test.hash.not.a.real.one",
		Name:         nickname,
		Nickname:     nickname,
		Role:         models.RoleEmployee,
		Coins:        coins,
	}
}

// CreateTestManager creates a manager account
func CreateTestManager(nickname string) *models.User {
	user := CreateTestEmployee(nickname, 0)
	user.Role = models.RoleManager
	return user
}

// CreateTestGame creates an active campaign running for the given duration
func CreateTestGame(name string, d time.Duration) *models.Game {
	now := time.Now()
	return &models.Game{
		Name:        name,
		TargetCoins: 10000,
		Reward:      "Team lunch",
		SponsorType: models.SponsorTypeCompany,
		Sponsor:     "ACME",
		StartDate:   now,
		EndDate:     now.Add(d),
		BonusTop1:   300,
		BonusTop2:   200,
		BonusTop3:   100,
		Status:      models.GameStatusActive,
	}
}

// CreateTestTransaction creates a ledger log entry for the given user
func CreateTestTransaction(userID int64, amount int64, entryType models.TransactionType) *models.Transaction {
	return &models.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        entryType,
		Description: fmt.Sprintf("test %s entry", entryType),
	}
}

// CreateTestReward creates an active catalog item; stock nil means unlimited
func CreateTestReward(name string, cost int64, stock *int64, createdBy int64) *models.Reward {
	return &models.Reward{
		Icon:        "gift",
		Name:        name,
		Description: "a test reward",
		Cost:        cost,
		Category:    "misc",
		Stock:       stock,
		IsActive:    true,
		CreatedBy:   createdBy,
	}
}

// CreateTestTask creates a pending task for the given user
func CreateTestTask(userID int64, title string) *models.Task {
	return &models.Task{
		UserID: userID,
		Title:  title,
		Status: models.TaskStatusPending,
	}
}

// Int64Ptr returns a pointer to the given value
func Int64Ptr(v int64) *int64 {
	return &v
}
