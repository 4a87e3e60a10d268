package idgen

import (
	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// UUIDGenerator issues random (version 4) UUIDs
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUID generator
func NewUUIDGenerator() coreport.IDGenerator {
	return UUIDGenerator{}
}

// NewID returns a new UUID in canonical string form
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
