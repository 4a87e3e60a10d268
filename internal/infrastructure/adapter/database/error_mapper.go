package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps errors raised by transaction control statements
// (BEGIN, COMMIT, SAVEPOINT) to domain errors. Row-level errors are mapped
// by the repositories themselves.
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a transaction control error. A serialization failure at
// COMMIT is retryable exactly like one raised by a statement.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case m.classifier.IsConflictError(err):
		return fmt.Errorf("%w: %s: %s", errs.ErrStoreConflict, operation, err.Error())
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return fmt.Errorf("%w: %s: transaction is no longer usable", errs.ErrStoreFailure, operation)
	case m.classifier.IsConnectionError(err) || isTimeout(err):
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrStoreFailure, operation, err.Error())
	}
}

// IsAlreadyFinished reports errors raised when a transaction was already
// committed or rolled back
func (m *ErrorMapper) IsAlreadyFinished(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrInvalidTransaction) ||
		strings.Contains(err.Error(), "already been committed or rolled back") ||
		strings.Contains(err.Error(), "tx is closed")
}

func isTimeout(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "canceling statement")
}
