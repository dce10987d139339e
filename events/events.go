package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"teamcoin/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeCoinChange     EventType = "coin_change"
	EventTypeUserCreated    EventType = "user_created"
	EventTypeLotteryPlayed  EventType = "lottery_played"
	EventTypeTaskReviewed   EventType = "task_reviewed"
	EventTypeRedemption     EventType = "redemption"
	EventTypeCampaignEnded  EventType = "campaign_ended"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CoinChangeEvent is emitted for every transaction appended to the ledger log
type CoinChangeEvent struct {
	UserID          int64
	Amount          int64
	NewBalance      int64
	TransactionType models.TransactionType
}

func (e CoinChangeEvent) Type() EventType {
	return EventTypeCoinChange
}

// UserCreatedEvent is emitted when a new account is registered
type UserCreatedEvent struct {
	UserID        int64
	Nickname      string
	StartingCoins int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// LotteryPlayedEvent is emitted after a lottery bet resolves
type LotteryPlayedEvent struct {
	UserID  int64
	Stake   int64
	Won     bool
	Drawn   int
	NetGain int64
}

func (e LotteryPlayedEvent) Type() EventType {
	return EventTypeLotteryPlayed
}

// TaskReviewedEvent is emitted when a manager approves or rejects a task
type TaskReviewedEvent struct {
	TaskID     int64
	UserID     int64
	ReviewerID int64
	Approved   bool
	Reward     int64
}

func (e TaskReviewedEvent) Type() EventType {
	return EventTypeTaskReviewed
}

// RedemptionEvent is emitted when a redemption is created, fulfilled or cancelled
type RedemptionEvent struct {
	RedemptionID int64
	RewardID     int64
	UserID       int64
	Status       models.RedemptionStatus
}

func (e RedemptionEvent) Type() EventType {
	return EventTypeRedemption
}

// CampaignEndedEvent is emitted when a campaign closes and bonuses are paid
type CampaignEndedEvent struct {
	GameID     int64
	FinalCoins int64
}

func (e CampaignEndedEvent) Type() EventType {
	return EventTypeCampaignEnded
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the request path
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// forwards them to the real bus only after the database commit succeeds.
// Rolled-back work never produces observable events.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus backed by the given bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush delivers all pending events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	for _, e := range b.pending {
		b.real.Emit(ctx, e)
	}
	b.pending = nil
}

// Discard drops all pending events; called on rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
