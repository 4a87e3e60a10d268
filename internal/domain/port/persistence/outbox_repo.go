package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// OutboxRepository stores ledger events awaiting delivery
type OutboxRepository interface {
	// Append stores a pending event in the current transaction
	Append(ctx context.Context, event *entity.LedgerEvent) error

	// FetchPending returns up to limit pending events, oldest first
	FetchPending(ctx context.Context, limit int) ([]*entity.LedgerEvent, error)

	// UpdateDelivery persists status, attempts, last error and sent time
	UpdateDelivery(ctx context.Context, event *entity.LedgerEvent) error
}
