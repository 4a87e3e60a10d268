package outbox

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
)

// Recorder appends ledger events to the outbox inside the caller's transaction,
// so an event exists if and only if the change it describes was committed
type Recorder struct {
	uow          persistence.UnitOfWork
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
}

// NewRecorder creates a new outbox recorder
func NewRecorder(uow persistence.UnitOfWork, idGenerator coreport.IDGenerator, timeProvider coreport.TimeProvider) *Recorder {
	return &Recorder{
		uow:          uow,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
	}
}

// Record appends one event; txCtx must carry an open transaction
func (r *Recorder) Record(txCtx context.Context, eventType entity.EventType, aggregateID, userID string, payload any) error {
	event, err := entity.NewLedgerEvent(r.idGenerator.NewID(), eventType, aggregateID, userID, payload, r.timeProvider)
	if err != nil {
		return err
	}
	return r.uow.GetOutboxRepository(txCtx).Append(txCtx, event)
}

// DepositPayload describes a deposit request change
type DepositPayload struct {
	DepositID  string               `json:"deposit_id"`
	UserID     string               `json:"user_id"`
	Amount     int64                `json:"amount"`
	Status     entity.RequestStatus `json:"status"`
	Balance    *int64               `json:"balance,omitempty"`
	ResolvedBy string               `json:"resolved_by,omitempty"`
}

// WithdrawalPayload describes a withdrawal request change
type WithdrawalPayload struct {
	WithdrawalID string               `json:"withdrawal_id"`
	UserID       string               `json:"user_id"`
	Amount       int64                `json:"amount"`
	Status       entity.RequestStatus `json:"status"`
	Balance      int64                `json:"balance"`
	ResolvedBy   string               `json:"resolved_by,omitempty"`
}

// RoundPayload describes a round being opened
type RoundPayload struct {
	RoundID   string    `json:"round_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BetPayload describes a placed bet
type BetPayload struct {
	BetID   string `json:"bet_id"`
	RoundID string `json:"round_id"`
	UserID  string `json:"user_id"`
	Color   string `json:"color"`
	Amount  int64  `json:"amount"`
	Balance int64  `json:"balance"`
}

// SettlementPayload describes a settled round
type SettlementPayload struct {
	RoundID     string    `json:"round_id"`
	ResultColor string    `json:"result_color"`
	BetsSettled int       `json:"bets_settled"`
	Winners     int       `json:"winners"`
	TotalStaked int64     `json:"total_staked"`
	TotalPayout int64     `json:"total_payout"`
	FailedBets  []string  `json:"failed_bets,omitempty"`
	SettledAt   time.Time `json:"settled_at"`
}
