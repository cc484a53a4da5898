// Package surrealdb implements the storage interfaces on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
)

// Table names. One table per entity, all schemaless.
const (
	tableUser      = "user"
	tablePortfolio = "portfolio"
	tableHolding   = "holding"
	tableTrade     = "trade"
	tableAlert     = "alert"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore      *UserStore
	portfolioStore *PortfolioStore
	holdingStore   *HoldingStore
	tradeStore     *TradeStore
	alertStore     *AlertStore
}

// NewManager connects to SurrealDB and prepares all stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	m, err := newManagerWithDB(ctx, db, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// newManagerWithDB wraps an already-connected database. Tests use it to
// point the manager at a per-test database.
func newManagerWithDB(ctx context.Context, db *surrealdb.DB, logger *common.Logger) (*Manager, error) {
	// Define tables up front; SurrealDB v3 errors on querying tables that
	// do not exist yet.
	tables := []string{tableUser, tablePortfolio, tableHolding, tableTrade, tableAlert}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}
	m.userStore = NewUserStore(db, logger)
	m.portfolioStore = NewPortfolioStore(db, logger)
	m.holdingStore = NewHoldingStore(db, logger)
	m.tradeStore = NewTradeStore(db, logger)
	m.alertStore = NewAlertStore(db, logger)

	return m, nil
}

func (m *Manager) Users() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) Portfolios() interfaces.PortfolioStore {
	return m.portfolioStore
}

func (m *Manager) Holdings() interfaces.HoldingStore {
	return m.holdingStore
}

func (m *Manager) Trades() interfaces.TradeStore {
	return m.tradeStore
}

func (m *Manager) Alerts() interfaces.AlertStore {
	return m.alertStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
