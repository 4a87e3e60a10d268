package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	ConflictError     ErrorType = "conflict"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
	OverflowError     ErrorType = "overflow"
)

// Postgres SQLSTATE codes the ledger reacts to
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
	sqlStateForeignKeyViolation  = "23503"
	sqlStateCheckViolation       = "23514"
	sqlStateNumericOutOfRange    = "22003"
)

// ErrorClassifier provides methods to classify database errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsConflictError(err):
		return ConflictError
	case c.IsOverflowError(err):
		return OverflowError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsConnectionError(err):
		return ConnectionError
	}
	return ""
}

// IsDuplicateKeyError checks if the error is a unique violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == sqlStateUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// IsConflictError reports serialization failures and deadlocks, which are
// resolved by replaying the whole transaction
func (c *ErrorClassifier) IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	switch sqlState(err) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

// IsOverflowError checks for arithmetic that left the bigint range
func (c *ErrorClassifier) IsOverflowError(err error) bool {
	if err == nil {
		return false
	}
	return sqlState(err) == sqlStateNumericOutOfRange || strings.Contains(err.Error(), "out of range")
}

// IsForeignKeyError checks for a reference to a missing row
func (c *ErrorClassifier) IsForeignKeyError(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrForeignKeyViolated) || sqlState(err) == sqlStateForeignKeyViolation)
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	switch sqlState(err) {
	case sqlStateCheckViolation, sqlStateForeignKeyViolation:
		return true
	}
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "timeout")
}

// MapError translates a driver error into the ledger's error taxonomy.
// notFound is returned for gorm.ErrRecordNotFound and for foreign key
// violations, which here always mean the referenced owner does not exist.
func (c *ErrorClassifier) MapError(err error, operation string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	switch c.Classify(err) {
	case DuplicateKeyError:
		return fmt.Errorf("%w: %s: %s", errs.ErrConflict, operation, err.Error())
	case ConflictError:
		return fmt.Errorf("%w: %s: %s", errs.ErrStoreConflict, operation, err.Error())
	case OverflowError:
		return errs.ErrAmountOverflow
	case ConstraintError:
		if c.IsForeignKeyError(err) && notFound != nil {
			return notFound
		}
		return fmt.Errorf("%w: %s: %s", errs.ErrInvalidInput, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
	}
}
