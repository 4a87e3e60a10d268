package entity

import (
	"encoding/json"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// EventType names a committed ledger change
type EventType string

// Ledger event types
const (
	EventDepositRequested    EventType = "deposit.requested"
	EventDepositApproved     EventType = "deposit.approved"
	EventDepositRejected     EventType = "deposit.rejected"
	EventWithdrawalRequested EventType = "withdrawal.requested"
	EventWithdrawalProcessed EventType = "withdrawal.processed"
	EventWithdrawalRejected  EventType = "withdrawal.rejected"
	EventRoundCreated        EventType = "round.created"
	EventBetPlaced           EventType = "bet.placed"
	EventRoundSettled        EventType = "round.settled"
)

// OutboxStatus tracks delivery of a ledger event
type OutboxStatus string

// Outbox statuses
const (
	OutboxPending OutboxStatus = "pending"
	OutboxSent    OutboxStatus = "sent"
	OutboxFailed  OutboxStatus = "failed"
)

// LedgerEvent is written in the same transaction as the change it describes
// and delivered afterwards by the outbox dispatcher
type LedgerEvent struct {
	ID          string
	Type        EventType
	AggregateID string
	UserID      string
	Payload     []byte
	Status      OutboxStatus
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	SentAt      *time.Time
}

// NewLedgerEvent creates a pending event with a JSON payload
func NewLedgerEvent(
	id string,
	eventType EventType,
	aggregateID string,
	userID string,
	payload any,
	timeProvider coreport.TimeProvider,
) (*LedgerEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s payload: %s", errs.ErrInternalServer, eventType, err.Error())
	}
	return &LedgerEvent{
		ID:          id,
		Type:        eventType,
		AggregateID: aggregateID,
		UserID:      userID,
		Payload:     body,
		Status:      OutboxPending,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// MarkSent records a successful delivery
func (e *LedgerEvent) MarkSent(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	e.Status = OutboxSent
	e.SentAt = &now
	e.LastError = ""
}

// MarkAttemptFailed records a failed delivery; the event gives up after maxAttempts
func (e *LedgerEvent) MarkAttemptFailed(cause error, maxAttempts int) {
	e.Attempts++
	e.LastError = cause.Error()
	if maxAttempts > 0 && e.Attempts >= maxAttempts {
		e.Status = OutboxFailed
	}
}
