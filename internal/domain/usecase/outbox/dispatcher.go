package outbox

import (
	"context"
	"sync"
	"sync/atomic"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/event"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
)

// DispatcherConfig controls outbox polling
type DispatcherConfig struct {
	PollInterval coreport.Duration
	BatchSize    int
	MaxAttempts  int
}

// Dispatcher polls pending ledger events and hands them to the publisher.
// Delivery is at-least-once: an event whose status update fails after a
// successful publish is sent again on the next poll.
type Dispatcher struct {
	uow       persistence.UnitOfWork
	publisher event.Publisher
	logger    coreport.Logger
	clock     coreport.TimeProvider
	metrics   coreport.Metrics
	config    DispatcherConfig

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// NewDispatcher creates a new outbox dispatcher
func NewDispatcher(
	uow persistence.UnitOfWork,
	publisher event.Publisher,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	config DispatcherConfig,
) *Dispatcher {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.PollInterval <= 0 {
		config.PollInterval = coreport.Second
	}
	return &Dispatcher{
		uow:       uow,
		publisher: publisher,
		logger:    logger,
		clock:     timeProvider,
		metrics:   metrics,
		config:    config,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start polls until ctx is canceled or Stop is called
func (d *Dispatcher) Start(ctx context.Context) {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(d.done)
		d.logger.Info("Outbox dispatcher started", map[string]any{
			"poll_interval_ms": d.config.PollInterval.Milliseconds(),
			"batch_size":       d.config.BatchSize,
		})

		for {
			select {
			case <-ctx.Done():
				d.logger.Info("Outbox dispatcher stopped by context", nil)
				return
			case <-d.stopCh:
				d.logger.Info("Outbox dispatcher stopped", nil)
				return
			case <-d.clock.After(d.config.PollInterval):
				if _, err := d.RunOnce(ctx); err != nil {
					d.logger.Error("Outbox poll failed", map[string]any{"error": err.Error()})
				}
			}
		}
	}()
}

// Stop ends polling and waits for the current batch to finish
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
	})
	if d.started.Load() {
		<-d.done
	}
}

// RunOnce delivers one batch of pending events and returns how many were sent
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	repo := d.uow.GetOutboxRepository(ctx)

	events, err := repo.FetchPending(ctx, d.config.BatchSize)
	if err != nil {
		return 0, err
	}

	sent, failed := 0, 0
	for _, e := range events {
		if ctx.Err() != nil {
			break
		}

		if pubErr := d.publisher.Publish(ctx, e); pubErr != nil {
			e.MarkAttemptFailed(pubErr, d.config.MaxAttempts)
			failed++
			d.logger.Warn("Failed to publish ledger event", map[string]any{
				"event_id":   e.ID,
				"event_type": string(e.Type),
				"attempts":   e.Attempts,
				"status":     string(e.Status),
				"error":      pubErr.Error(),
			})
		} else {
			e.MarkSent(d.clock)
			sent++
		}

		if err := repo.UpdateDelivery(ctx, e); err != nil {
			d.logger.Error("Failed to record ledger event delivery", map[string]any{
				"event_id": e.ID,
				"error":    err.Error(),
			})
		}
	}

	if sent > 0 {
		d.metrics.RecordOutboxDelivery(coreport.ResultSuccess, sent)
	}
	if failed > 0 {
		d.metrics.RecordOutboxDelivery(coreport.ResultFail, failed)
	}
	return sent, nil
}
