package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/dto"
)

// RoundHandler handles rounds, bets and settlement
type RoundHandler struct {
	rounds     usecase.RoundUseCase
	settlement usecase.SettlementUseCase
	logger     coreport.Logger
}

// NewRoundHandler creates a new round handler instance
func NewRoundHandler(rounds usecase.RoundUseCase, settlement usecase.SettlementUseCase, logger coreport.Logger) *RoundHandler {
	return &RoundHandler{rounds: rounds, settlement: settlement, logger: logger}
}

// CreateRound handles POST /api/admin/rounds/create
func (h *RoundHandler) CreateRound(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}

	round, err := h.rounds.CreateRound(c.Request.Context(), caller)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRoundResponse(round))
}

// ListRounds handles GET /api/rounds
func (h *RoundHandler) ListRounds(c *gin.Context) {
	var query dto.LimitQuery
	if !bindQuery(c, &query) {
		return
	}

	rounds, err := h.rounds.ListRounds(c.Request.Context(), query.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoundList(rounds))
}

// GetRound handles GET /api/rounds/:id
func (h *RoundHandler) GetRound(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	round, err := h.rounds.GetRound(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoundResponse(round))
}

// PlaceBet handles POST /api/bets
func (h *RoundHandler) PlaceBet(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req dto.PlaceBetRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.rounds.PlaceBet(c.Request.Context(), caller, req.RoundID, req.Color, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PlaceBetResponse{
		Bet:     dto.NewBetResponse(result.Bet),
		Balance: result.Balance,
	})
}

// ListOwnBets handles GET /api/bets/user
func (h *RoundHandler) ListOwnBets(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var query dto.LimitQuery
	if !bindQuery(c, &query) {
		return
	}

	bets, err := h.rounds.ListBetsForUser(c.Request.Context(), caller, query.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBetList(bets))
}

// SettleRound handles POST /api/admin/rounds/:id/settle
func (h *RoundHandler) SettleRound(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SettleRoundRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.settlement.SettleRound(c.Request.Context(), caller, id, req.ResultColor)
	if err != nil {
		fail(c, err)
		return
	}

	if len(report.Failures) > 0 {
		h.logger.Warn("Round settled with failed payouts", map[string]any{
			"round_id":   id,
			"failures":   len(report.Failures),
			"request_id": coreport.RequestIDFrom(c.Request.Context()),
		})
	}
	c.JSON(http.StatusOK, dto.NewSettlementResponse(report, errs.ErrorCode))
}
