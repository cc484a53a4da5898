// Package interfaces defines contracts between folio's layers.
//
// Store Get methods return (nil, nil) when no record exists; errors are
// reserved for storage failures.
package interfaces

import (
	"context"

	"github.com/arjunmehra/folio/internal/models"
)

// UserStore persists user accounts.
type UserStore interface {
	Save(ctx context.Context, user *models.User) error
	Get(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
}

// PortfolioStore persists portfolios.
type PortfolioStore interface {
	Save(ctx context.Context, p *models.Portfolio) error
	Get(ctx context.Context, id string) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Portfolio, error)
	Delete(ctx context.Context, id string) error
}

// HoldingStore persists holdings.
type HoldingStore interface {
	Save(ctx context.Context, h *models.Holding) error
	Get(ctx context.Context, id string) (*models.Holding, error)
	ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Holding, error)
	Delete(ctx context.Context, id string) error
	DeleteByPortfolio(ctx context.Context, portfolioID string) (int, error)
}

// TradeStore persists trade records. Trades are append-only; there is no
// update operation.
type TradeStore interface {
	Save(ctx context.Context, t *models.Trade) error
	Get(ctx context.Context, id string) (*models.Trade, error)
	ListByPortfolio(ctx context.Context, portfolioID string) ([]*models.Trade, error)
	Delete(ctx context.Context, id string) error
	DeleteByPortfolio(ctx context.Context, portfolioID string) (int, error)
}

// AlertStore persists alerts.
type AlertStore interface {
	Save(ctx context.Context, a *models.Alert) error
	Get(ctx context.Context, id string) (*models.Alert, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Alert, error)
	ListActive(ctx context.Context) ([]*models.Alert, error)
	Delete(ctx context.Context, id string) error
}

// StorageManager provides access to all stores.
type StorageManager interface {
	Users() UserStore
	Portfolios() PortfolioStore
	Holdings() HoldingStore
	Trades() TradeStore
	Alerts() AlertStore
	Close() error
}
