package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/memstore"
	timeprovider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
	mockcore "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
	mockevent "github.com/amirhossein-jamali/wager-ledger/mocks/port/event"
	mockpersistence "github.com/amirhossein-jamali/wager-ledger/mocks/port/persistence"
)

type counterIDs struct{ n int }

func (c *counterIDs) NewID() string {
	c.n++
	return "evt-" + string(rune('a'+c.n-1))
}

func newOutbox(t *testing.T) (persistence.UnitOfWork, *Recorder, coreport.TimeProvider) {
	clock := timeprovider.NewRealTimeProvider()
	store := memstore.NewStore(logger.NewNoopLogger(), clock)
	uow := store.NewUnitOfWork()
	return uow, NewRecorder(uow, &counterIDs{}, clock), clock
}

func record(t *testing.T, uow persistence.UnitOfWork, rec *Recorder, n int) {
	t.Helper()
	ctx := context.Background()
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, rec.Record(txCtx, entity.EventRoundCreated, "r1", "admin", RoundPayload{RoundID: "r1"}))
	}
	require.NoError(t, uow.Commit(txCtx))
}

func TestRecorder_OnlyCommittedEventsAreVisible(t *testing.T) {
	ctx := context.Background()
	uow, rec, _ := newOutbox(t)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, rec.Record(txCtx, entity.EventBetPlaced, "b1", "u1", BetPayload{BetID: "b1", Amount: 5}))
	require.NoError(t, uow.Rollback(txCtx))

	pending, err := uow.GetOutboxRepository(ctx).FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	record(t, uow, rec, 1)
	pending, err = uow.GetOutboxRepository(ctx).FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.OutboxPending, pending[0].Status)
	assert.JSONEq(t, `{"round_id":"r1","created_by":"","created_at":"0001-01-01T00:00:00Z"}`, string(pending[0].Payload))
}

func TestDispatcher_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes pending events oldest first and marks them sent", func(t *testing.T) {
		uow, rec, clock := newOutbox(t)
		record(t, uow, rec, 3)

		publisher := mockevent.NewMockPublisher(t)
		var order []string
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, e *entity.LedgerEvent) error {
			order = append(order, e.ID)
			return nil
		}).Times(3)
		metrics := mockcore.NewMockMetrics(t)
		metrics.EXPECT().RecordOutboxDelivery(coreport.ResultSuccess, 3).Once()

		d := NewDispatcher(uow, publisher, logger.NewNoopLogger(), clock, metrics, DispatcherConfig{MaxAttempts: 3})
		sent, err := d.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, sent)
		assert.Equal(t, []string{"evt-a", "evt-b", "evt-c"}, order)

		pending, err := uow.GetOutboxRepository(ctx).FetchPending(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Failed publish stays pending until max attempts", func(t *testing.T) {
		uow, rec, clock := newOutbox(t)
		record(t, uow, rec, 1)

		publisher := mockevent.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Times(2)
		metrics := mockcore.NewMockMetrics(t)
		metrics.EXPECT().RecordOutboxDelivery(coreport.ResultFail, 1).Times(2)

		d := NewDispatcher(uow, publisher, logger.NewNoopLogger(), clock, metrics, DispatcherConfig{MaxAttempts: 2})

		sent, err := d.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent)
		pending, err := uow.GetOutboxRepository(ctx).FetchPending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 1, pending[0].Attempts)
		assert.Equal(t, "broker down", pending[0].LastError)

		_, err = d.RunOnce(ctx)
		require.NoError(t, err)
		pending, err = uow.GetOutboxRepository(ctx).FetchPending(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)

		_, err = d.RunOnce(ctx)
		require.NoError(t, err)
	})

	t.Run("Batch size bounds one poll", func(t *testing.T) {
		uow, rec, clock := newOutbox(t)
		record(t, uow, rec, 5)

		publisher := mockevent.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(2)
		metrics := mockcore.NewMockMetrics(t)
		metrics.EXPECT().RecordOutboxDelivery(coreport.ResultSuccess, 2).Once()

		d := NewDispatcher(uow, publisher, logger.NewNoopLogger(), clock, metrics, DispatcherConfig{BatchSize: 2})
		sent, err := d.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
	})
}

func TestDispatcher_StartStop(t *testing.T) {
	uow, rec, clock := newOutbox(t)
	record(t, uow, rec, 2)

	delivered := make(chan string, 2)
	publisher := mockevent.NewMockPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, e *entity.LedgerEvent) error {
		delivered <- e.ID
		return nil
	}).Times(2)
	metrics := mockcore.NewMockMetrics(t)
	metrics.EXPECT().RecordOutboxDelivery(mock.Anything, mock.Anything).Maybe()

	d := NewDispatcher(uow, publisher, logger.NewNoopLogger(), clock, metrics, DispatcherConfig{PollInterval: 5 * coreport.Millisecond})
	d.Start(context.Background())
	d.Start(context.Background())

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("event was not delivered")
		}
	}
	d.Stop()
	d.Stop()
}

func TestDispatcher_StopWithoutStart(t *testing.T) {
	uow, _, clock := newOutbox(t)
	d := NewDispatcher(uow, mockevent.NewMockPublisher(t), logger.NewNoopLogger(), clock, mockcore.NewMockMetrics(t), DispatcherConfig{})
	assert.NotPanics(t, d.Stop)
}

type txMarker struct{}

func TestRecorder_AppendsThroughTransactionRepository(t *testing.T) {
	txCtx := context.WithValue(context.Background(), txMarker{}, "tx")
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ids := mockcore.NewMockIDGenerator(t)
	ids.EXPECT().NewID().Return("evt-1").Once()
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(now)

	repo := mockpersistence.NewMockOutboxRepository(t)
	repo.EXPECT().Append(txCtx, mock.MatchedBy(func(e *entity.LedgerEvent) bool {
		return e.ID == "evt-1" &&
			e.Type == entity.EventDepositApproved &&
			e.AggregateID == "d1" &&
			e.UserID == "u1" &&
			e.Status == entity.OutboxPending &&
			e.CreatedAt.Equal(now)
	})).Return(nil).Once()

	uow := mockpersistence.NewMockUnitOfWork(t)
	uow.EXPECT().GetOutboxRepository(txCtx).Return(repo).Once()

	rec := NewRecorder(uow, ids, clock)
	err := rec.Record(txCtx, entity.EventDepositApproved, "d1", "u1", DepositPayload{DepositID: "d1", UserID: "u1", Amount: 50})
	require.NoError(t, err)
}

func TestRecorder_PropagatesAppendFailure(t *testing.T) {
	ctx := context.Background()
	ids := mockcore.NewMockIDGenerator(t)
	ids.EXPECT().NewID().Return("evt-2")
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(time.Now())

	appendErr := errors.New("outbox table missing")
	repo := mockpersistence.NewMockOutboxRepository(t)
	repo.EXPECT().Append(ctx, mock.Anything).Return(appendErr)
	uow := mockpersistence.NewMockUnitOfWork(t)
	uow.EXPECT().GetOutboxRepository(ctx).Return(repo)

	err := NewRecorder(uow, ids, clock).Record(ctx, entity.EventBetPlaced, "b1", "u1", BetPayload{BetID: "b1"})
	assert.ErrorIs(t, err, appendErr)
}
