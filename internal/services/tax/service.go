// Package tax estimates Indian capital gains tax on realized and
// unrealized gains, bucketed by financial year.
package tax

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/models"
)

// Flat tax rates on realized gains. The equity LTCG exemption applies to
// the first 1,00,000 of long-term equity gains per financial year.
const (
	rateEquitySTCG    = 0.15
	rateEquityLTCG    = 0.10
	rateNonEquitySTCG = 0.30
	rateNonEquityLTCG = 0.20

	equityLTCGExemption = 100000
)

// priorFYCount is how many completed years FYWiseReports includes on top
// of the current one.
const priorFYCount = 2

// Service implements interfaces.TaxService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates the tax service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// Report computes the tax view for one financial year. An empty year means
// the current financial year. Unrealized gains are reported only for the
// current year since past positions cannot be reconstructed.
func (s *Service) Report(ctx context.Context, portfolioID, financialYear string) (*models.TaxReport, error) {
	now := time.Now()
	if financialYear == "" {
		financialYear = CurrentFY(now)
	}
	start, end, err := FYWindow(financialYear)
	if err != nil {
		return nil, err
	}

	trades, err := s.storage.Trades().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	holdings, err := s.storage.Holdings().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	report := buildReport(trades, holdings, financialYear, start, end, now)

	s.logger.Debug().
		Str("portfolio_id", portfolioID).
		Str("financial_year", financialYear).
		Float64("total_tax", report.Liability.TotalTax).
		Msg("Tax report computed")

	return report, nil
}

// FYWiseReports returns the current financial year and the two before it.
func (s *Service) FYWiseReports(ctx context.Context, portfolioID string) ([]*models.TaxReport, error) {
	now := time.Now()
	startYear := now.Year()
	if now.Month() < time.April {
		startYear--
	}

	reports := make([]*models.TaxReport, 0, priorFYCount+1)
	for y := startYear; y >= startYear-priorFYCount; y-- {
		report, err := s.Report(ctx, portfolioID, FYLabel(y))
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// buildReport assembles the report from raw trades and holdings. Lots are
// replayed over the full history so cost bases are correct, then details
// are filtered to sells dated inside the year's window.
func buildReport(trades []*models.Trade, holdings []*models.Holding, financialYear string, start, end, now time.Time) *models.TaxReport {
	assetTypes := make(map[string]models.AssetType, len(holdings))
	for _, h := range holdings {
		assetTypes[h.Symbol] = h.AssetType
	}

	var details []models.RealizedGainDetail
	for _, d := range matchSells(trades, assetTypes) {
		if inWindow(d.SellDate, start, end) {
			details = append(details, d)
		}
	}
	if details == nil {
		details = []models.RealizedGainDetail{}
	}

	var realized models.GainBuckets
	for _, d := range details {
		addToBucket(&realized, assetTypeFor(assetTypes, d.Symbol), d.Type, d.Gain)
	}

	var unrealized models.GainBuckets
	if inWindow(now, start, end) {
		unrealized = unrealizedBuckets(holdings, now)
	}

	return &models.TaxReport{
		FinancialYear:   financialYear,
		Realized:        roundBuckets(realized),
		RealizedDetails: details,
		Unrealized:      roundBuckets(unrealized),
		Liability:       computeLiability(realized),
		ComputedAt:      now,
	}
}

// unrealizedBuckets classifies open positions as if sold today.
func unrealizedBuckets(holdings []*models.Holding, now time.Time) models.GainBuckets {
	var buckets models.GainBuckets
	for _, h := range holdings {
		days := holdingPeriodDays(h.PurchaseDate, now)
		addToBucket(&buckets, h.AssetType, gainType(h.AssetType, days), models.UnrealizedPL(h))
	}
	return buckets
}

func addToBucket(b *models.GainBuckets, asset models.AssetType, term string, gain float64) {
	switch {
	case asset.IsEquity() && term == models.GainShortTerm:
		b.EquitySTCG += gain
	case asset.IsEquity():
		b.EquityLTCG += gain
	case term == models.GainShortTerm:
		b.NonEquitySTCG += gain
	default:
		b.NonEquityLTCG += gain
	}
	b.Total += gain
}

// computeLiability applies the flat rates to positive realized buckets.
// Losses reduce nothing here; loss offsetting is not modelled.
func computeLiability(realized models.GainBuckets) models.TaxLiability {
	var l models.TaxLiability

	if realized.EquitySTCG > 0 {
		l.EquitySTCGTax = realized.EquitySTCG * rateEquitySTCG
	}
	if realized.EquityLTCG > equityLTCGExemption {
		l.EquityLTCGTax = (realized.EquityLTCG - equityLTCGExemption) * rateEquityLTCG
	}
	if realized.NonEquitySTCG > 0 {
		l.NonEquitySTCGTax = realized.NonEquitySTCG * rateNonEquitySTCG
	}
	if realized.NonEquityLTCG > 0 {
		l.NonEquityLTCGTax = realized.NonEquityLTCG * rateNonEquityLTCG
	}

	l.TotalTax = l.EquitySTCGTax + l.EquityLTCGTax + l.NonEquitySTCGTax + l.NonEquityLTCGTax
	if realized.Total > 0 {
		l.EffectiveTaxRate = l.TotalTax / realized.Total * 100
	}

	l.EquitySTCGTax = round2(l.EquitySTCGTax)
	l.EquityLTCGTax = round2(l.EquityLTCGTax)
	l.NonEquitySTCGTax = round2(l.NonEquitySTCGTax)
	l.NonEquityLTCGTax = round2(l.NonEquityLTCGTax)
	l.TotalTax = round2(l.TotalTax)
	l.EffectiveTaxRate = round2(l.EffectiveTaxRate)
	return l
}

func roundBuckets(b models.GainBuckets) models.GainBuckets {
	b.EquitySTCG = round2(b.EquitySTCG)
	b.EquityLTCG = round2(b.EquityLTCG)
	b.NonEquitySTCG = round2(b.NonEquitySTCG)
	b.NonEquityLTCG = round2(b.NonEquityLTCG)
	b.Total = round2(b.Total)
	return b
}

// Compile-time check
var _ interfaces.TaxService = (*Service)(nil)
