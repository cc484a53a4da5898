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

// AlertStore implements interfaces.AlertStore using SurrealDB.
type AlertStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewAlertStore creates a new AlertStore.
func NewAlertStore(db *surrealdb.DB, logger *common.Logger) *AlertStore {
	return &AlertStore{db: db, logger: logger}
}

func (s *AlertStore) Save(ctx context.Context, a *models.Alert) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID(tableAlert, a.ID),
		"record": a,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Alert](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save alert after retries: %w", lastErr)
}

func (s *AlertStore) Get(ctx context.Context, id string) (*models.Alert, error) {
	record, err := surrealdb.Select[models.Alert](ctx, s.db, surrealmodels.NewRecordID(tableAlert, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select alert: %w", err)
	}
	if record == nil || record.ID == "" {
		return nil, nil
	}
	return record, nil
}

func (s *AlertStore) ListByUser(ctx context.Context, userID string) ([]*models.Alert, error) {
	sql := "SELECT * FROM alert WHERE user_id = $user_id ORDER BY created_at ASC, alert_id ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Alert](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	items := make([]*models.Alert, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}
	return items, nil
}

func (s *AlertStore) ListActive(ctx context.Context) ([]*models.Alert, error) {
	sql := "SELECT * FROM alert WHERE status = $status ORDER BY created_at ASC, alert_id ASC"
	vars := map[string]any{"status": models.AlertActive}

	results, err := surrealdb.Query[[]models.Alert](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	items := make([]*models.Alert, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}
	return items, nil
}

func (s *AlertStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Alert](ctx, s.db, surrealmodels.NewRecordID(tableAlert, id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.AlertStore = (*AlertStore)(nil)
