// Package analytics computes portfolio metrics, benchmark comparisons and
// growth charts from holdings, trades and market data.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/formulas"
	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/models"
)

const defaultBenchmarkDays = 30

// Service implements interfaces.AnalyticsService.
type Service struct {
	storage          interfaces.StorageManager
	market           interfaces.MarketDataClient
	logger           *common.Logger
	defaultBenchmark string
}

// NewService creates the analytics service.
func NewService(storage interfaces.StorageManager, market interfaces.MarketDataClient, logger *common.Logger, defaultBenchmark string) *Service {
	if defaultBenchmark == "" {
		defaultBenchmark = "NIFTY50"
	}
	return &Service{
		storage:          storage,
		market:           market,
		logger:           logger,
		defaultBenchmark: defaultBenchmark,
	}
}

// ComputeMetrics refreshes prices, replays trades and derives the snapshot.
func (s *Service) ComputeMetrics(ctx context.Context, portfolioID, benchmark string) (*models.MetricsSnapshot, error) {
	holdings, err := s.refreshHoldings(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	trades, err := s.storage.Trades().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	lastCloses := s.fetchLastCloses(ctx, holdings)
	snap := computeSnapshot(holdings, trades, lastCloses, time.Now())

	if snap.TotalHoldings > 0 {
		if benchmark == "" {
			benchmark = s.defaultBenchmark
		}
		cmp, err := s.compareBenchmark(ctx, holdings, benchmark, defaultBenchmarkDays)
		if err != nil {
			// Benchmark data is additive; the snapshot stands without it.
			s.logger.Warn().Err(err).Str("benchmark", benchmark).Msg("Benchmark comparison unavailable")
		} else {
			snap.Benchmark = cmp
		}
	}

	s.logger.Debug().
		Str("portfolio_id", portfolioID).
		Int("holdings", snap.TotalHoldings).
		Float64("current_value", snap.CurrentValue).
		Msg("Metrics computed")

	return snap, nil
}

// CompareBenchmark contrasts portfolio return with an index over a window.
func (s *Service) CompareBenchmark(ctx context.Context, portfolioID, benchmark string, days int) (*models.BenchmarkComparison, error) {
	if benchmark == "" {
		benchmark = s.defaultBenchmark
	}
	if days <= 0 {
		days = defaultBenchmarkDays
	}

	holdings, err := s.storage.Holdings().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	return s.compareBenchmark(ctx, holdings, benchmark, days)
}

func (s *Service) compareBenchmark(ctx context.Context, holdings []*models.Holding, benchmark string, days int) (*models.BenchmarkComparison, error) {
	series, err := s.market.GetBenchmarkSeries(ctx, benchmark, days)
	if err != nil {
		return nil, fmt.Errorf("benchmark series: %w", err)
	}

	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	benchmarkReturn := formulas.SeriesReturn(closes)

	var invested, current float64
	for _, h := range holdings {
		invested += models.InvestedValue(h)
		current += models.CurrentValue(h)
	}
	var portfolioReturn float64
	if invested != 0 {
		portfolioReturn = (current - invested) / invested * 100
	}

	return &models.BenchmarkComparison{
		Benchmark:       benchmark,
		Days:            days,
		PortfolioReturn: round2(portfolioReturn),
		BenchmarkReturn: round2(benchmarkReturn),
		Alpha:           round2(portfolioReturn - benchmarkReturn),
	}, nil
}

// RenderComparisonChart renders portfolio versus benchmark as a PNG.
func (s *Service) RenderComparisonChart(ctx context.Context, portfolioID, benchmark string, days int) ([]byte, error) {
	if benchmark == "" {
		benchmark = s.defaultBenchmark
	}
	if days <= 0 {
		days = defaultBenchmarkDays
	}

	holdings, err := s.storage.Holdings().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	series, err := s.market.GetBenchmarkSeries(ctx, benchmark, days)
	if err != nil {
		return nil, fmt.Errorf("benchmark series: %w", err)
	}

	cmp, err := s.compareBenchmark(ctx, holdings, benchmark, days)
	if err != nil {
		return nil, err
	}

	return renderComparisonChart(series, cmp.PortfolioReturn, benchmark)
}

// RefreshPrices updates holding prices from market data.
func (s *Service) RefreshPrices(ctx context.Context, portfolioID string) (int, error) {
	holdings, err := s.refreshHoldings(ctx, portfolioID)
	if err != nil {
		return 0, err
	}
	return len(holdings), nil
}

// refreshHoldings pulls current prices and persists the updated holdings.
// A symbol with no quote keeps its last known price.
func (s *Service) refreshHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	holdings, err := s.storage.Holdings().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	now := time.Now()
	for _, h := range holdings {
		price, err := s.market.GetCurrentPrice(ctx, h.Symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", h.Symbol).Msg("Price refresh failed, keeping last price")
			continue
		}
		h.CurrentPrice = price
		h.LastUpdated = now
		h.UpdatedAt = now
		if err := s.storage.Holdings().Save(ctx, h); err != nil {
			return nil, fmt.Errorf("save holding %s: %w", h.Symbol, err)
		}
	}

	return holdings, nil
}

// fetchLastCloses collects the last two closes per symbol for day P&L.
func (s *Service) fetchLastCloses(ctx context.Context, holdings []*models.Holding) map[string][]models.PricePoint {
	closes := make(map[string][]models.PricePoint, len(holdings))
	for _, h := range holdings {
		if _, ok := closes[h.Symbol]; ok {
			continue
		}
		pts, err := s.market.GetHistoricalPrices(ctx, h.Symbol, 2)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", h.Symbol).Msg("Historical prices unavailable")
			continue
		}
		closes[h.Symbol] = pts
	}
	return closes
}

// Compile-time check
var _ interfaces.AnalyticsService = (*Service)(nil)
