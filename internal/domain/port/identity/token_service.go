package identity

import (
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// Token is a signed identity token and its expiry
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService issues and verifies identity tokens
type TokenService interface {
	// Issue signs a token for the account
	Issue(account *entity.Account) (*Token, error)
	// Verify checks the signature and expiry and returns the caller it names.
	// Failures unwrap to errs.ErrUnauthorized.
	Verify(token string) (entity.Actor, error)
}
