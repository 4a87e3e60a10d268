package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/middleware"
)

// fail hands err to the ErrorHandler middleware
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, &middleware.BindError{Err: err})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		fail(c, &middleware.BindError{Err: err})
		return false
	}
	return true
}

// actor returns the authenticated caller; routes without Authenticate have none
func actor(c *gin.Context) (entity.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		fail(c, errs.ErrUnauthorized)
	}
	return a, ok
}

func pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		fail(c, errs.ErrInvalidInput)
		return "", false
	}
	return id, true
}
