package event

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// Publisher delivers committed ledger events to downstream consumers
type Publisher interface {
	// Publish sends one event; an error leaves the event pending for redelivery
	Publish(ctx context.Context, event *entity.LedgerEvent) error
	// Close releases the underlying transport
	Close() error
}
