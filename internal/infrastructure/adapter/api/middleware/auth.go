package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/identity"
)

const actorKey = "actor"

// Authenticate verifies the bearer token and stores the caller on the context
func Authenticate(tokens identity.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, errs.ErrUnauthorized)
			return
		}

		actor, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abort(c, errs.ErrUnauthorized)
			return
		}
		if err := actor.RequireAdmin(); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// ActorFrom returns the caller stored by Authenticate
func ActorFrom(c *gin.Context) (entity.Actor, bool) {
	value, ok := c.Get(actorKey)
	if !ok {
		return entity.Actor{}, false
	}
	actor, ok := value.(entity.Actor)
	return actor, ok
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusCode(err), ErrorResponse(err))
}
