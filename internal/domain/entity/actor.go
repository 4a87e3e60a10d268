package entity

import (
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
)

// Actor is the authenticated caller of a domain operation
type Actor struct {
	UserID  string
	IsAdmin bool
}

// RequireAdmin fails with ErrForbidden for non-admin callers
func (a Actor) RequireAdmin() error {
	if !a.IsAdmin {
		return errs.ErrForbidden
	}
	return nil
}

// CanAccess reports whether the actor may read data owned by userID
func (a Actor) CanAccess(userID string) bool {
	return a.IsAdmin || a.UserID == userID
}
