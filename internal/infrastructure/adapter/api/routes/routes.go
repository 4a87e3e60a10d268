package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/identity"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Auth    *handler.AuthHandler
	Account *handler.AccountHandler
	Ledger  *handler.LedgerHandler
	Round   *handler.RoundHandler
	Health  *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, tokens identity.TokenService) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		api.GET("/rounds", h.Round.ListRounds)
		api.GET("/rounds/:id", h.Round.GetRound)
	}

	user := api.Group("", middleware.Authenticate(tokens))
	{
		user.GET("/me", h.Auth.Me)
		user.GET("/users/:userId/balance", h.Account.GetBalance)

		user.POST("/deposits", h.Ledger.RequestDeposit)
		user.GET("/deposits", h.Ledger.ListOwnDeposits)
		user.POST("/withdraws", h.Ledger.RequestWithdrawal)
		user.GET("/withdraws", h.Ledger.ListOwnWithdrawals)

		user.POST("/bets", h.Round.PlaceBet)
		user.GET("/bets/user", h.Round.ListOwnBets)
	}

	admin := api.Group("/admin", middleware.Authenticate(tokens), middleware.RequireAdmin())
	{
		admin.GET("/deposits", h.Ledger.ListAllDeposits)
		admin.POST("/deposits/:id/approve", h.Ledger.ApproveDeposit)
		admin.POST("/deposits/:id/reject", h.Ledger.RejectDeposit)

		admin.GET("/withdraws", h.Ledger.ListAllWithdrawals)
		admin.POST("/withdraws/:id/:action", h.Ledger.ResolveWithdrawal)

		admin.POST("/rounds/create", h.Round.CreateRound)
		admin.POST("/rounds/:id/settle", h.Round.SettleRound)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	recorder middleware.HTTPRecorder,
	corsOrigins []string,
) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.Metrics(recorder, timeProvider))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(corsOrigins))
}

// MountMetrics exposes a Prometheus handler at path
func MountMetrics(router *gin.Engine, path string, h http.Handler) {
	router.GET(path, gin.WrapH(h))
}
