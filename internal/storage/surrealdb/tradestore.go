package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/models"
)

// TradeStore implements interfaces.TradeStore using SurrealDB.
type TradeStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(db *surrealdb.DB, logger *common.Logger) *TradeStore {
	return &TradeStore{db: db, logger: logger}
}

func (s *TradeStore) Save(ctx context.Context, t *models.Trade) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID(tableTrade, t.ID),
		"record": t,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save trade after retries: %w", lastErr)
}

func (s *TradeStore) Get(ctx context.Context, id string) (*models.Trade, error) {
	record, err := surrealdb.Select[models.Trade](ctx, s.db, surrealmodels.NewRecordID(tableTrade, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select trade: %w", err)
	}
	if record == nil || record.ID == "" {
		return nil, nil
	}
	return record, nil
}

func (s *TradeStore) ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Trade, error) {
	sql := "SELECT * FROM trade WHERE portfolio_id = $portfolio_id ORDER BY trade_date ASC, trade_id ASC"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	items := make([]*models.Trade, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}
	return items, nil
}

func (s *TradeStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Trade](ctx, s.db, surrealmodels.NewRecordID(tableTrade, id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

func (s *TradeStore) DeleteByPortfolio(ctx context.Context, portfolioID string) (int, error) {
	sql := "DELETE trade WHERE portfolio_id = $portfolio_id RETURN BEFORE"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to delete trades by portfolio: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}

// Compile-time check
var _ interfaces.TradeStore = (*TradeStore)(nil)
