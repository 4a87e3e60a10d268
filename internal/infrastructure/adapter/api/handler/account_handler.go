package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/dto"
)

// AccountHandler serves balance reads
type AccountHandler struct {
	accounts usecase.AccountUseCase
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// GetBalance handles GET /api/users/:userId/balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	view, err := h.accounts.GetBalance(c.Request.Context(), caller, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBalanceResponse(view))
}
