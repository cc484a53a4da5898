package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/arjunmehra/folio/internal/formulas"
	"github.com/arjunmehra/folio/internal/models"
)

const (
	daysPerYear = 365.25

	// Returns over windows shorter than this are reported unannualized.
	minAnnualizeYears = 0.1

	// The valuation peak is approximated at 10% above current value and
	// the live drawdown is capped at 5% of current value. Historical
	// valuation series would replace both; see the drawdown fields.
	peakFactor         = 1.1
	currentDrawdownCap = 0.05

	topHoldingsCount = 5
)

// emptySnapshot is the canonical response for a portfolio with no holdings:
// every numeric field zero, risk floor of 1.
func emptySnapshot(now time.Time) *models.MetricsSnapshot {
	return &models.MetricsSnapshot{
		RiskScore:        1,
		AssetAllocation:  []models.AllocationSlice{},
		SectorAllocation: []models.AllocationSlice{},
		TopHoldings:      []models.TopHolding{},
		ComputedAt:       now,
	}
}

// computeSnapshot derives the full metrics view from holdings, trades and
// the last two closes per symbol. It is a pure function; all market data
// comes in through its arguments.
func computeSnapshot(holdings []*models.Holding, trades []*models.Trade, lastCloses map[string][]models.PricePoint, now time.Time) *models.MetricsSnapshot {
	if len(holdings) == 0 {
		return emptySnapshot(now)
	}

	realized := RealizedPL(trades)

	var totalInvested, currentValue float64
	for _, h := range holdings {
		totalInvested += models.InvestedValue(h)
		currentValue += models.CurrentValue(h)
	}

	unrealized := currentValue - totalInvested
	var unrealizedPct float64
	if totalInvested != 0 {
		unrealizedPct = unrealized / totalInvested * 100
	}

	dayPL, dayPLPct := computeDayPL(holdings, lastCloses)
	maxDD, maxDDPct, currentDD := computeDrawdown(currentValue)
	vol := computeVolatility(holdings)

	snap := &models.MetricsSnapshot{
		TotalInvested:       round2(totalInvested),
		CurrentValue:        round2(currentValue),
		UnrealizedPL:        round2(unrealized),
		UnrealizedPLPercent: round2(unrealizedPct),
		RealizedPL:          round2(realized),
		DayPL:               round2(dayPL),
		DayPLPercent:        round2(dayPLPct),
		CAGR:                round2(computeCAGR(totalInvested, currentValue, holdings, now)),
		XIRR:                round2(computeXIRR(totalInvested, currentValue, holdings, now)),
		Volatility:          round2(vol),
		RiskScore:           computeRiskScore(vol, maxDDPct),
		MaxDrawdown:         round2(maxDD),
		MaxDrawdownPercent:  round2(maxDDPct),
		CurrentDrawdown:     round2(currentDD),
		AssetAllocation:     assetAllocation(holdings, currentValue),
		SectorAllocation:    sectorAllocation(holdings, currentValue),
		TopHoldings:         topHoldings(holdings, currentValue),
		TotalHoldings:       len(holdings),
		ComputedAt:          now,
	}
	return snap
}

// computeDayPL sums each position's move between the last two closes.
func computeDayPL(holdings []*models.Holding, lastCloses map[string][]models.PricePoint) (float64, float64) {
	var dayPL, prevValue float64
	for _, h := range holdings {
		pts := lastCloses[h.Symbol]
		if len(pts) < 2 {
			prevValue += models.CurrentValue(h)
			continue
		}
		last := pts[len(pts)-1].Close
		prev := pts[len(pts)-2].Close
		dayPL += h.Quantity * (last - prev)
		prevValue += h.Quantity * prev
	}

	var pct float64
	if prevValue != 0 {
		pct = dayPL / prevValue * 100
	}
	return dayPL, pct
}

// computeDrawdown approximates drawdown without a valuation history.
func computeDrawdown(currentValue float64) (maxDD, maxDDPct, currentDD float64) {
	peak := currentValue * peakFactor
	maxDD = peak - currentValue
	if peak != 0 {
		maxDDPct = maxDD / peak * 100
	}
	currentDD = math.Min(maxDD, currentValue*currentDrawdownCap)
	return maxDD, maxDDPct, currentDD
}

// computeCAGR annualizes growth from the oldest purchase date.
func computeCAGR(totalInvested, currentValue float64, holdings []*models.Holding, now time.Time) float64 {
	if totalInvested == 0 || len(holdings) == 0 {
		return 0
	}

	oldest := holdings[0].PurchaseDate
	for _, h := range holdings[1:] {
		if h.PurchaseDate.Before(oldest) {
			oldest = h.PurchaseDate
		}
	}

	years := now.Sub(oldest).Hours() / 24 / daysPerYear
	if years < minAnnualizeYears {
		return 0
	}

	return (math.Pow(currentValue/totalInvested, 1/years) - 1) * 100
}

// computeXIRR approximates the money-weighted return by annualizing total
// return over the mean holding age. A dated-cashflow solver is deliberately
// out of scope.
func computeXIRR(totalInvested, currentValue float64, holdings []*models.Holding, now time.Time) float64 {
	if totalInvested == 0 || len(holdings) == 0 {
		return 0
	}

	totalReturn := (currentValue - totalInvested) / totalInvested * 100

	ages := make([]float64, 0, len(holdings))
	for _, h := range holdings {
		ages = append(ages, now.Sub(h.PurchaseDate).Hours()/24)
	}
	years := formulas.Mean(ages) / daysPerYear
	if years < minAnnualizeYears {
		return totalReturn
	}

	return (math.Pow(1+totalReturn/100, 1/years) - 1) * 100
}

// computeVolatility weights per-class volatility assumptions by position value.
func computeVolatility(holdings []*models.Holding) float64 {
	values := make([]float64, 0, len(holdings))
	vols := make([]float64, 0, len(holdings))
	for _, h := range holdings {
		values = append(values, models.CurrentValue(h))
		vols = append(vols, h.AssetType.VolatilityEstimate())
	}
	return formulas.WeightedMean(vols, values)
}

// computeRiskScore maps volatility and drawdown onto a 1..10 integer.
func computeRiskScore(volatility, maxDDPct float64) int {
	volScore := math.Min(volatility/10, 5)
	ddScore := math.Min(maxDDPct/10, 5)
	score := int(math.Round(volScore + ddScore))
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// assetAllocation breaks current value down by asset type, sorted by value.
func assetAllocation(holdings []*models.Holding, totalValue float64) []models.AllocationSlice {
	byType := make(map[string]float64)
	for _, h := range holdings {
		byType[string(h.AssetType)] += models.CurrentValue(h)
	}
	return toSlices(byType, totalValue)
}

// sectorAllocation breaks equity value down by sector. Percentages use the
// whole portfolio as denominator, so with non-equity holdings present they
// sum to less than 100.
func sectorAllocation(holdings []*models.Holding, totalValue float64) []models.AllocationSlice {
	bySector := make(map[string]float64)
	for _, h := range holdings {
		if !h.AssetType.IsEquity() {
			continue
		}
		sector := h.Sector
		if sector == "" {
			sector = "Other"
		}
		bySector[sector] += models.CurrentValue(h)
	}
	return toSlices(bySector, totalValue)
}

func toSlices(byLabel map[string]float64, totalValue float64) []models.AllocationSlice {
	slices := make([]models.AllocationSlice, 0, len(byLabel))
	for label, value := range byLabel {
		var pct float64
		if totalValue != 0 {
			pct = value / totalValue * 100
		}
		slices = append(slices, models.AllocationSlice{
			Label:   label,
			Value:   round2(value),
			Percent: round2(pct),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}

// topHoldings returns the largest positions by current value.
func topHoldings(holdings []*models.Holding, totalValue float64) []models.TopHolding {
	sorted := make([]*models.Holding, len(holdings))
	copy(sorted, holdings)
	sort.Slice(sorted, func(i, j int) bool {
		return models.CurrentValue(sorted[i]) > models.CurrentValue(sorted[j])
	})

	n := topHoldingsCount
	if len(sorted) < n {
		n = len(sorted)
	}

	top := make([]models.TopHolding, 0, n)
	for _, h := range sorted[:n] {
		value := models.CurrentValue(h)
		var pct float64
		if totalValue != 0 {
			pct = value / totalValue * 100
		}
		top = append(top, models.TopHolding{
			Symbol:  h.Symbol,
			Name:    h.Name,
			Value:   round2(value),
			Percent: round2(pct),
		})
	}
	return top
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
