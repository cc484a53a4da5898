package models

import "time"

// AllocationSlice is one segment of an allocation breakdown.
type AllocationSlice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// TopHolding is a ranked position in the top-holdings list.
type TopHolding struct {
	Symbol  string  `json:"symbol"`
	Name    string  `json:"name,omitempty"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// BenchmarkComparison contrasts portfolio return with an index over a window.
type BenchmarkComparison struct {
	Benchmark       string  `json:"benchmark"`
	Days            int     `json:"days"`
	PortfolioReturn float64 `json:"portfolio_return"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	Alpha           float64 `json:"alpha"`
}

// MetricsSnapshot is the computed analytics view of a portfolio at a point
// in time. It is derived on request and never persisted.
type MetricsSnapshot struct {
	TotalInvested       float64 `json:"total_invested"`
	CurrentValue        float64 `json:"current_value"`
	UnrealizedPL        float64 `json:"unrealized_pl"`
	UnrealizedPLPercent float64 `json:"unrealized_pl_percent"`
	RealizedPL          float64 `json:"realized_pl"`
	DayPL               float64 `json:"day_pl"`
	DayPLPercent        float64 `json:"day_pl_percent"`

	CAGR       float64 `json:"cagr"`
	XIRR       float64 `json:"xirr"`
	Volatility float64 `json:"volatility"`
	RiskScore  int     `json:"risk_score"`

	MaxDrawdown        float64 `json:"max_drawdown"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
	CurrentDrawdown    float64 `json:"current_drawdown"`

	AssetAllocation  []AllocationSlice `json:"asset_allocation"`
	SectorAllocation []AllocationSlice `json:"sector_allocation"`
	TopHoldings      []TopHolding      `json:"top_holdings"`

	Benchmark *BenchmarkComparison `json:"benchmark,omitempty"`

	TotalHoldings int       `json:"total_holdings"`
	ComputedAt    time.Time `json:"computed_at"`
}
