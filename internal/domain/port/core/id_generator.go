package core

// IDGenerator produces globally unique identifiers for new records
type IDGenerator interface {
	NewID() string
}
