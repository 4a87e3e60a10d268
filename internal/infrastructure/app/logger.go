package app

import (
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/config"
)

// NewLogger builds the zap logger for the environment; production and json
// format select the JSON encoder
func NewLogger(cfg *config.Config, service string) (coreport.Logger, error) {
	return logger.NewZapLogger(logger.Options{
		Production: cfg.Environment == config.Production || cfg.Logger.Format == "json",
		Level:      cfg.Logger.Level,
		Service:    service,
	})
}
