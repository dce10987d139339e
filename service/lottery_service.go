package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"teamcoin/events"
	"teamcoin/models"
)

// Draw domain for the range lottery
const (
	drawMin = 1
	drawMax = 1000
)

type lotteryService struct {
	uowFactory UnitOfWorkFactory
	houseEdge  float64
	// draw returns a uniformly random integer in [drawMin, drawMax].
	// Injected so tests can force an outcome; virtual coins do not need a
	// cryptographic source.
	draw func() int
}

// NewLotteryService creates a new lottery service. houseEdge must be below
// 1.0; it is the engine's statistical advantage over fair odds.
func NewLotteryService(uowFactory UnitOfWorkFactory, houseEdge float64) LotteryService {
	return &lotteryService{
		uowFactory: uowFactory,
		houseEdge:  houseEdge,
		draw: func() int {
			return rand.IntN(drawMax) + drawMin
		},
	}
}

// Multiplier returns the payout multiplier for a bet on [low, high]:
// (1000 / (high-low)) * houseEdge, rounded to 2 decimal places. Degenerate
// ranges yield 0; PlayLottery rejects them before this matters.
func (s *lotteryService) Multiplier(low, high int) float64 {
	span := high - low
	if span <= 0 {
		return 0
	}
	return math.Round(float64(drawMax)/float64(span)*s.houseEdge*100) / 100
}

// PlayLottery resolves a range bet: the stake is debited, a number is drawn
// in [1,1000], and a win pays floor(stake * multiplier) back. The multiplier
// is rounded to 2 decimals before the product is floored; that ordering
// keeps payouts reproducible. The debit, payout, log append, monthly fold
// and campaign recompute all commit or roll back together.
func (s *lotteryService) PlayLottery(ctx context.Context, userID int64, low, high int, stake int64) (*models.LotteryResult, error) {
	// Validate inputs before touching any state
	if stake <= 0 {
		return nil, fmt.Errorf("stake must be positive: %w", ErrInvalidInput)
	}
	if low < drawMin || high > drawMax || high <= low {
		return nil, fmt.Errorf("bet range %d-%d outside draw domain [%d,%d]: %w",
			low, high, drawMin, drawMax, ErrInvalidRange)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	// Upfront admission gate: reject rather than transiently overdraw
	if user.Coins < stake {
		return nil, fmt.Errorf("have %d, need %d: %w", user.Coins, stake, ErrInsufficientFunds)
	}

	// Stake goes at risk before the draw. The conditional update inside
	// DeductCoins re-checks the balance server-side, so a concurrent bet
	// racing this one cannot drive the balance negative.
	if err := uow.UserRepository().DeductCoins(ctx, userID, stake); err != nil {
		return nil, fmt.Errorf("failed to debit stake: %w", err)
	}

	drawn := s.draw()
	won := low <= drawn && drawn <= high
	multiplier := s.Multiplier(low, high)

	var payout int64
	netGain := -stake

	if won {
		payout = int64(math.Floor(float64(stake) * multiplier))
		if payout > 0 {
			if err := uow.UserRepository().AddCoins(ctx, userID, payout); err != nil {
				return nil, fmt.Errorf("failed to credit payout: %w", err)
			}
		}
		netGain = payout - stake
	}

	newBalance := user.Coins - stake + payout

	game, err := uow.GameRepository().GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	var gameID *int64
	if game != nil {
		gameID = &game.ID
	}

	var entryType models.TransactionType
	var description string
	if won {
		entryType = models.TransactionTypeLotteryWin
		description = fmt.Sprintf("Lottery win! Range %d-%d, number %d, %+d coins", low, high, drawn, netGain)
	} else {
		entryType = models.TransactionTypeLotteryLose
		description = fmt.Sprintf("Lottery lose. Range %d-%d, number %d, -%d coins", low, high, drawn, stake)
	}

	entry := &models.Transaction{
		UserID:      userID,
		GameID:      gameID,
		Amount:      netGain,
		Type:        entryType,
		Description: description,
	}

	if err := RecordTransaction(ctx, uow, entry, newBalance); err != nil {
		return nil, fmt.Errorf("failed to record wager outcome: %w", err)
	}

	if game != nil {
		if _, err := uow.GameRepository().RecomputeCurrentCoins(ctx, game.ID); err != nil {
			return nil, fmt.Errorf("failed to recompute team total: %w", err)
		}
	}

	uow.EventBus().Publish(events.LotteryPlayedEvent{
		UserID:  userID,
		Stake:   stake,
		Won:     won,
		Drawn:   drawn,
		NetGain: netGain,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.LotteryResult{
		Drawn:      drawn,
		Won:        won,
		LowBound:   low,
		HighBound:  high,
		Stake:      stake,
		Multiplier: multiplier,
		Payout:     payout,
		NetGain:    netGain,
		NewBalance: newBalance,
	}, nil
}
