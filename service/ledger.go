package service

import (
	"context"
	"fmt"

	"teamcoin/events"
	"teamcoin/models"
)

// RecordTransaction appends a ledger log entry, folds positive amounts into
// the monthly-earnings aggregate and emits a coin change event. This is the
// single entry point for all balance-changing events in the system; ledger
// mutations that bypass it would break the audit invariant that logged
// amounts reconcile with balances.
//
// Losing stakes and redemptions carry negative amounts and therefore never
// touch the monthly aggregate, which only accumulates.
func RecordTransaction(ctx context.Context, uow UnitOfWork, entry *models.Transaction, newBalance int64) error {
	if err := uow.TransactionRepository().Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to append transaction log: %w", err)
	}

	if entry.Amount > 0 {
		if err := uow.MonthlyEarningRepository().Add(ctx, entry.UserID, entry.CreatedAt, entry.Amount); err != nil {
			return fmt.Errorf("failed to fold monthly earnings: %w", err)
		}
	}

	// Delivered only after the unit of work commits
	uow.EventBus().Publish(events.CoinChangeEvent{
		UserID:          entry.UserID,
		Amount:          entry.Amount,
		NewBalance:      newBalance,
		TransactionType: entry.Type,
	})

	return nil
}
