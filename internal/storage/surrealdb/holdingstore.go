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

// HoldingStore implements interfaces.HoldingStore using SurrealDB.
type HoldingStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewHoldingStore creates a new HoldingStore.
func NewHoldingStore(db *surrealdb.DB, logger *common.Logger) *HoldingStore {
	return &HoldingStore{db: db, logger: logger}
}

func (s *HoldingStore) Save(ctx context.Context, h *models.Holding) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID(tableHolding, h.ID),
		"record": h,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save holding after retries: %w", lastErr)
}

func (s *HoldingStore) Get(ctx context.Context, id string) (*models.Holding, error) {
	record, err := surrealdb.Select[models.Holding](ctx, s.db, surrealmodels.NewRecordID(tableHolding, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select holding: %w", err)
	}
	if record == nil || record.ID == "" {
		return nil, nil
	}
	return record, nil
}

func (s *HoldingStore) ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	sql := "SELECT * FROM holding WHERE portfolio_id = $portfolio_id ORDER BY symbol ASC, holding_id ASC"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	items := make([]*models.Holding, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}
	return items, nil
}

func (s *HoldingStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Holding](ctx, s.db, surrealmodels.NewRecordID(tableHolding, id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

func (s *HoldingStore) DeleteByPortfolio(ctx context.Context, portfolioID string) (int, error) {
	sql := "DELETE holding WHERE portfolio_id = $portfolio_id RETURN BEFORE"
	vars := map[string]any{"portfolio_id": portfolioID}

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holdings by portfolio: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}

// Compile-time check
var _ interfaces.HoldingStore = (*HoldingStore)(nil)
