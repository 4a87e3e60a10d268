package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes that gorm tags cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

var advancedIndexes = []indexStatement{
	{
		// admin queues list pending requests newest first
		name: "idx_deposit_requests_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_deposit_requests_pending
			ON deposit_requests (created_at DESC) WHERE status = 'pending'`,
	},
	{
		name: "idx_withdrawal_requests_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_pending
			ON withdrawal_requests (created_at DESC) WHERE status = 'pending'`,
	},
	{
		name: "idx_deposit_requests_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_deposit_requests_user_created
			ON deposit_requests (user_id, created_at DESC)`,
	},
	{
		name: "idx_withdrawal_requests_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_withdrawal_requests_user_created
			ON withdrawal_requests (user_id, created_at DESC)`,
	},
	{
		// settlement walks a round's bets in placement order
		name: "idx_bets_round_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_bets_round_created
			ON bets (round_id, created_at, id)`,
	},
	{
		name: "idx_bets_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_bets_user_created
			ON bets (user_id, created_at DESC)`,
	},
	{
		name: "idx_rounds_open",
		sql: `CREATE INDEX IF NOT EXISTS idx_rounds_open
			ON rounds (created_at DESC) WHERE result_color IS NULL`,
	},
	{
		name: "idx_outbox_events_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
			ON outbox_events (created_at, id) WHERE status = 'pending'`,
	},
	{
		name: "idx_outbox_events_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_outbox_events_created_at_brin
			ON outbox_events USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
}

// CreateAdvancedIndexes creates partial and BRIN indexes for the hot queries
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, idx := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies storage settings; failures are logged, not fatal
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// balance updates rewrite the same rows constantly; leave room for HOT updates
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE accounts SET (fillfactor = 80)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for accounts table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE bets ALTER COLUMN round_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for bets.round_id", map[string]any{
			"error": err.Error(),
		})
	}
}
