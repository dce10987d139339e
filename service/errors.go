package service

import "errors"

// Sentinel errors shared by services and repositories. Handlers translate
// these into HTTP responses with errors.Is; everything else is treated as a
// persistence failure and surfaced without retry.
var (
	// ErrNotFound means a referenced user, task, reward, redemption or
	// campaign does not exist. No mutation was attempted.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds means the user's balance cannot cover the
	// requested stake or cost. Rejected before any state change.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidRange means a degenerate or out-of-domain bet range. The
	// payout multiplier is undefined for these, so the bet is rejected
	// rather than resolved with a zero multiplier.
	ErrInvalidRange = errors.New("invalid bet range")

	// ErrInvalidInput covers remaining validation failures (bad amounts,
	// empty fields). Safe to retry after correcting the input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict means the entity is not in a state that allows the
	// operation, e.g. approving an already-reviewed task.
	ErrConflict = errors.New("conflict")

	// ErrOutOfStock means the reward has no remaining stock.
	ErrOutOfStock = errors.New("reward out of stock")

	// ErrUnauthorized means the credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")
)
