package migration

import (
	"context"
	"fmt"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
)

// EnsureBootstrapAdmin creates or promotes the configured admin account.
// An empty username disables the bootstrap.
func EnsureBootstrapAdmin(ctx context.Context, accounts usecase.AccountUseCase, logger coreport.Logger, username, password string) error {
	if username == "" {
		return nil
	}

	account, created, err := accounts.EnsureAdmin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("bootstrap admin %q: %w", username, err)
	}

	logger.Info("Bootstrap admin ensured", map[string]any{
		"user_id":  account.ID,
		"username": account.Username,
		"created":  created,
	})
	return nil
}
