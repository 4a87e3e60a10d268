package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/dto"
)

// LedgerHandler handles deposit and withdrawal requests and their resolution
type LedgerHandler struct {
	ledger usecase.LedgerUseCase
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledger usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// RequestDeposit handles POST /api/deposits
func (h *LedgerHandler) RequestDeposit(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ledger.RequestDeposit(c.Request.Context(), caller, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RequestWithBalanceResponse{
		Request: dto.NewDepositResponse(result.Deposit),
		Balance: result.Balance,
	})
}

// ListOwnDeposits handles GET /api/deposits
func (h *LedgerHandler) ListOwnDeposits(c *gin.Context) {
	h.listDeposits(c, true)
}

// ListAllDeposits handles GET /api/admin/deposits
func (h *LedgerHandler) ListAllDeposits(c *gin.Context) {
	h.listDeposits(c, false)
}

func (h *LedgerHandler) listDeposits(c *gin.Context, ownOnly bool) {
	caller, filter, ok := requestFilter(c, ownOnly)
	if !ok {
		return
	}

	deposits, err := h.ledger.ListDeposits(c.Request.Context(), caller, filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDepositList(deposits))
}

// ApproveDeposit handles POST /api/admin/deposits/:id/approve
func (h *LedgerHandler) ApproveDeposit(c *gin.Context) {
	h.resolveDeposit(c, h.ledger.ApproveDeposit)
}

// RejectDeposit handles POST /api/admin/deposits/:id/reject
func (h *LedgerHandler) RejectDeposit(c *gin.Context) {
	h.resolveDeposit(c, h.ledger.RejectDeposit)
}

func (h *LedgerHandler) resolveDeposit(c *gin.Context, resolve func(ctx context.Context, a entity.Actor, id string) (*usecase.DepositResult, error)) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := resolve(c.Request.Context(), caller, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RequestWithBalanceResponse{
		Request: dto.NewDepositResponse(result.Deposit),
		Balance: result.Balance,
	})
}

// RequestWithdrawal handles POST /api/withdraws
func (h *LedgerHandler) RequestWithdrawal(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ledger.RequestWithdrawal(c.Request.Context(), caller, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RequestWithBalanceResponse{
		Request: dto.NewWithdrawalResponse(result.Withdrawal),
		Balance: result.Balance,
	})
}

// ListOwnWithdrawals handles GET /api/withdraws
func (h *LedgerHandler) ListOwnWithdrawals(c *gin.Context) {
	h.listWithdrawals(c, true)
}

// ListAllWithdrawals handles GET /api/admin/withdraws
func (h *LedgerHandler) ListAllWithdrawals(c *gin.Context) {
	h.listWithdrawals(c, false)
}

func (h *LedgerHandler) listWithdrawals(c *gin.Context, ownOnly bool) {
	caller, filter, ok := requestFilter(c, ownOnly)
	if !ok {
		return
	}

	withdrawals, err := h.ledger.ListWithdrawals(c.Request.Context(), caller, filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalList(withdrawals))
}

// ResolveWithdrawal handles POST /api/admin/withdraws/:id/:action
func (h *LedgerHandler) ResolveWithdrawal(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	decision, err := entity.ParseWithdrawalDecision(c.Param("action"))
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.ledger.ResolveWithdrawal(c.Request.Context(), caller, id, decision)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RequestWithBalanceResponse{
		Request: dto.NewWithdrawalResponse(result.Withdrawal),
		Balance: result.Balance,
	})
}

func requestFilter(c *gin.Context, ownOnly bool) (entity.Actor, entity.RequestFilter, bool) {
	caller, ok := actor(c)
	if !ok {
		return caller, entity.RequestFilter{}, false
	}
	var query dto.ListRequestsQuery
	if !bindQuery(c, &query) {
		return caller, entity.RequestFilter{}, false
	}

	filter := entity.RequestFilter{Status: entity.RequestStatus(query.Status), Limit: query.Limit}
	if ownOnly {
		filter.UserID = caller.UserID
	}
	return caller, filter, true
}
