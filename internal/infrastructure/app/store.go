// Package app holds the wiring shared by the service binaries.
package app

import (
	"context"
	"fmt"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/memstore"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/config"
)

// Store is an opened transactional store and its release function
type Store struct {
	UoW   persistence.UnitOfWork
	Close func() error
}

// OpenStore connects the configured driver. Postgres is migrated before use;
// the memory driver starts empty and loses its state on exit.
func OpenStore(ctx context.Context, cfg *config.Config, logger coreport.Logger, tp coreport.TimeProvider, metrics coreport.Metrics) (*Store, error) {
	dbConfig := database.CreateConfigFromAppConfig(cfg)

	switch dbConfig.Driver {
	case database.DriverMemory:
		logger.Warn("Using in-memory store; balances are not persisted", nil)
		store := memstore.NewStore(logger, tp)
		return &Store{UoW: store.NewUnitOfWork(), Close: func() error { return nil }}, nil

	case database.DriverPostgres:
		manager := database.NewManager(dbConfig, logger, tp, metrics)
		if _, err := manager.Connect(ctx); err != nil {
			return nil, err
		}
		if err := manager.Migrate(ctx); err != nil {
			_ = manager.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return &Store{UoW: manager.CreateUnitOfWork(), Close: manager.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", dbConfig.Driver)
	}
}

// RetryPolicy converts the transaction settings
func RetryPolicy(cfg config.TransactionConfig) transaction.RetryPolicy {
	policy := transaction.DefaultRetryPolicy()
	policy.MaxRetries = cfg.MaxRetries
	if cfg.BaseIntervalMs > 0 {
		policy.BaseInterval = coreport.Duration(cfg.BaseIntervalMs) * coreport.Millisecond
	}
	if cfg.MaxIntervalMs > 0 {
		policy.MaxInterval = coreport.Duration(cfg.MaxIntervalMs) * coreport.Millisecond
	}
	if cfg.JitterFactor >= 0 && cfg.JitterFactor <= 1 {
		policy.JitterFactor = cfg.JitterFactor
	}
	return policy
}
