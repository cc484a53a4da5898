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

// PortfolioStore implements interfaces.PortfolioStore using SurrealDB.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewPortfolioStore creates a new PortfolioStore.
func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{db: db, logger: logger}
}

func (s *PortfolioStore) Save(ctx context.Context, p *models.Portfolio) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID(tablePortfolio, p.ID),
		"record": p,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save portfolio after retries: %w", lastErr)
}

func (s *PortfolioStore) Get(ctx context.Context, id string) (*models.Portfolio, error) {
	record, err := surrealdb.Select[models.Portfolio](ctx, s.db, surrealmodels.NewRecordID(tablePortfolio, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}
	if record == nil || record.ID == "" {
		return nil, nil
	}
	return record, nil
}

func (s *PortfolioStore) ListByUser(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	sql := "SELECT * FROM portfolio WHERE user_id = $user_id ORDER BY created_at ASC, portfolio_id ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Portfolio](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	items := make([]*models.Portfolio, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}
	return items, nil
}

func (s *PortfolioStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Portfolio](ctx, s.db, surrealmodels.NewRecordID(tablePortfolio, id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.PortfolioStore = (*PortfolioStore)(nil)
