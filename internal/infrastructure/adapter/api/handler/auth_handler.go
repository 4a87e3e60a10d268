package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/identity"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/dto"
)

// AuthHandler handles registration, login and the caller's profile
type AuthHandler struct {
	accounts usecase.AccountUseCase
	tokens   identity.TokenService
	logger   coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(accounts usecase.AccountUseCase, tokens identity.TokenService, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, logger: logger}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountResponse(account))
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Warn("Login failed", map[string]any{
			"username":   req.Username,
			"request_id": coreport.RequestIDFrom(c.Request.Context()),
		})
		fail(c, err)
		return
	}

	token, err := h.tokens.Issue(account)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      dto.NewAccountResponse(account),
	})
}

// Me handles GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}

	account, err := h.accounts.GetProfile(c.Request.Context(), caller)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}
