package interfaces

import (
	"context"

	"github.com/arjunmehra/folio/internal/models"
)

// MarketDataClient supplies prices, volumes and index levels. The engines
// never generate market data themselves; anything stochastic lives behind
// this interface.
type MarketDataClient interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	GetHistoricalPrices(ctx context.Context, symbol string, days int) ([]models.PricePoint, error)
	GetBenchmarkSeries(ctx context.Context, name string, days int) ([]models.PricePoint, error)
}

// Notifier delivers alert and account notifications over email.
// Implementations must be safe to call when unconfigured: delivery is then
// logged rather than sent, and no error is returned.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
	Configured() bool
}
