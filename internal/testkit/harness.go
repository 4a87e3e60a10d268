// Package testkit wires the use cases' collaborators around an in-memory store
// for tests that exercise real transactions instead of mocked repositories.
package testkit

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/memstore"
	timeprovider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
	coremocks "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
)

// SequentialIDs hands out predictable identifiers: <prefix>-1, <prefix>-2, ...
type SequentialIDs struct {
	prefix string
	next   atomic.Int64
}

// NewSequentialIDs creates a generator with the given prefix
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// NewID returns the next identifier
func (g *SequentialIDs) NewID() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1))
}

// Harness bundles a memstore with the transaction manager and outbox recorder built on it
type Harness struct {
	Store     *memstore.Store
	UoW       persistence.UnitOfWork
	TxManager *transaction.TransactionManager
	Recorder  *outbox.Recorder
	IDs       *SequentialIDs
	Clock     coreport.TimeProvider
	Logger    coreport.Logger
	Metrics   *coremocks.MockMetrics
}

// NewHarness builds a fresh, empty harness. Metrics calls are accepted but not required.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	log := logger.NewNoopLogger()
	clock := timeprovider.NewRealTimeProvider()

	metrics := coremocks.NewMockMetrics(t)
	metrics.EXPECT().RecordOperation(mock.Anything, mock.Anything, mock.Anything).Maybe()
	metrics.EXPECT().RecordSettlement(mock.Anything, mock.Anything, mock.Anything).Maybe()
	metrics.EXPECT().RecordOutboxDelivery(mock.Anything, mock.Anything).Maybe()

	store := memstore.NewStore(log, clock)
	uow := store.NewUnitOfWork()
	ids := NewSequentialIDs("id")

	policy := transaction.DefaultRetryPolicy()
	policy.BaseInterval = coreport.Millisecond

	return &Harness{
		Store:     store,
		UoW:       uow,
		TxManager: transaction.NewTransactionManager(uow, log, clock, metrics, policy),
		Recorder:  outbox.NewRecorder(uow, ids, clock),
		IDs:       ids,
		Clock:     clock,
		Logger:    log,
		Metrics:   metrics,
	}
}

// SeedAccount stores an account with the given balance directly, bypassing the deposit flow
func (h *Harness) SeedAccount(t *testing.T, id string, balance int64, admin bool) *entity.Account {
	t.Helper()

	now := h.Clock.Now()
	account := entity.RestoreAccount(id, "user-"+id, "hash", balance, admin, now, now)
	require.NoError(t, h.UoW.GetAccountRepository(context.Background()).Create(context.Background(), account))
	return account
}

// SeedRound stores an open round
func (h *Harness) SeedRound(t *testing.T, id string) *entity.Round {
	t.Helper()

	round := entity.NewRound(id, "admin", h.Clock)
	require.NoError(t, h.UoW.GetRoundRepository(context.Background()).Create(context.Background(), round))
	return round
}

// Balance reads the committed balance of an account
func (h *Harness) Balance(t *testing.T, id string) int64 {
	t.Helper()

	account, err := h.UoW.GetAccountRepository(context.Background()).GetByID(context.Background(), id)
	require.NoError(t, err)
	return account.Balance()
}

// PendingEvents returns the committed, undelivered ledger events in recording order
func (h *Harness) PendingEvents(t *testing.T) []*entity.LedgerEvent {
	t.Helper()

	events, err := h.UoW.GetOutboxRepository(context.Background()).FetchPending(context.Background(), 0)
	require.NoError(t, err)
	return events
}

// EventTypes lists the types of PendingEvents
func (h *Harness) EventTypes(t *testing.T) []entity.EventType {
	t.Helper()

	var types []entity.EventType
	for _, e := range h.PendingEvents(t) {
		types = append(types, e.Type)
	}
	return types
}

// Admin and User build actors for tests
func Admin(id string) entity.Actor { return entity.Actor{UserID: id, IsAdmin: true} }

func User(id string) entity.Actor { return entity.Actor{UserID: id} }

// Eventually polls cond until it holds or the timeout expires
func Eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
