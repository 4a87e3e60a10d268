package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	assert.NoError(t, mapper.MapError(nil, "commit"))

	serialization := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	err := mapper.MapError(serialization, "commit")
	assert.ErrorIs(t, err, errs.ErrStoreConflict)
	assert.True(t, errs.IsRetryable(err))

	err = mapper.MapError(errors.New("dial tcp: connection refused"), "begin")
	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	assert.False(t, errs.IsRetryable(err))

	err = mapper.MapError(gorm.ErrInvalidTransaction, "savepoint bet_1")
	assert.ErrorIs(t, err, errs.ErrStoreFailure)

	err = mapper.MapError(errors.New("something odd"), "commit")
	assert.ErrorIs(t, err, errs.ErrStoreFailure)
	assert.NotErrorIs(t, err, errs.ErrStoreConflict)
}

func TestErrorMapper_IsAlreadyFinished(t *testing.T) {
	mapper := NewErrorMapper()

	assert.True(t, mapper.IsAlreadyFinished(gorm.ErrInvalidTransaction))
	assert.True(t, mapper.IsAlreadyFinished(errors.New("sql: transaction has already been committed or rolled back")))
	assert.False(t, mapper.IsAlreadyFinished(errors.New("connection reset")))
	assert.False(t, mapper.IsAlreadyFinished(nil))
}
