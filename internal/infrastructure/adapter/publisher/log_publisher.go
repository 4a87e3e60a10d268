package publisher

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/event"
)

// LogPublisher writes events to the log; used when no broker is configured
type LogPublisher struct {
	logger coreport.Logger
}

// NewLogPublisher creates a publisher that only logs
func NewLogPublisher(logger coreport.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level
func (p *LogPublisher) Publish(ctx context.Context, evt *entity.LedgerEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.logger.Info("Ledger event", map[string]any{
		"event_id":     evt.ID,
		"event_type":   string(evt.Type),
		"aggregate_id": evt.AggregateID,
		"user_id":      evt.UserID,
		"payload":      string(evt.Payload),
	})
	return nil
}

func (p *LogPublisher) Close() error { return nil }

var _ event.Publisher = (*LogPublisher)(nil)
