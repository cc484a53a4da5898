package interfaces

import (
	"context"

	"github.com/arjunmehra/folio/internal/models"
)

// AnalyticsService computes portfolio metrics from holdings and trades.
type AnalyticsService interface {
	// ComputeMetrics refreshes prices and derives the full metrics snapshot.
	// benchmark may be empty to use the configured default index.
	ComputeMetrics(ctx context.Context, portfolioID, benchmark string) (*models.MetricsSnapshot, error)

	// CompareBenchmark contrasts portfolio return with an index over a window.
	CompareBenchmark(ctx context.Context, portfolioID, benchmark string, days int) (*models.BenchmarkComparison, error)

	// RenderComparisonChart renders a PNG of portfolio versus benchmark.
	RenderComparisonChart(ctx context.Context, portfolioID, benchmark string, days int) ([]byte, error)

	// RefreshPrices updates holding prices from market data and returns the
	// number of holdings updated.
	RefreshPrices(ctx context.Context, portfolioID string) (int, error)
}

// TaxService estimates capital gains tax.
type TaxService interface {
	// Report computes the tax view for one financial year, e.g. "FY 2025-2026".
	// An empty year means the current financial year.
	Report(ctx context.Context, portfolioID, financialYear string) (*models.TaxReport, error)

	// FYWiseReports returns reports for the current and two prior years.
	FYWiseReports(ctx context.Context, portfolioID string) ([]*models.TaxReport, error)
}

// AlertEvaluation summarizes one evaluation batch.
type AlertEvaluation struct {
	Evaluated int `json:"evaluated"`
	Triggered int `json:"triggered"`
	Failed    int `json:"failed"`
}

// AlertService evaluates alert conditions against market data.
type AlertService interface {
	// EvaluateAll runs every active alert. Individual failures are logged
	// and counted, never propagated.
	EvaluateAll(ctx context.Context) (*AlertEvaluation, error)

	// EvaluateAlert checks a single alert, returning whether it fired.
	EvaluateAlert(ctx context.Context, alert *models.Alert) (bool, error)
}
