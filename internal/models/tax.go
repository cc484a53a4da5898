package models

import "time"

// Gain classifications.
const (
	GainShortTerm = "STCG"
	GainLongTerm  = "LTCG"
)

// RealizedGainDetail records one sell matched against its FIFO cost basis.
type RealizedGainDetail struct {
	Symbol            string    `json:"symbol"`
	SellDate          time.Time `json:"sell_date"`
	PurchaseDate      time.Time `json:"purchase_date"`
	Quantity          float64   `json:"quantity"`
	SellValue         float64   `json:"sell_value"`
	CostBasis         float64   `json:"cost_basis"`
	Gain              float64   `json:"gain"`
	HoldingPeriodDays int       `json:"holding_period_days"`
	Type              string    `json:"type"`
}

// GainBuckets splits gains by equity treatment and holding term.
type GainBuckets struct {
	EquitySTCG    float64 `json:"equity_stcg"`
	EquityLTCG    float64 `json:"equity_ltcg"`
	NonEquitySTCG float64 `json:"non_equity_stcg"`
	NonEquityLTCG float64 `json:"non_equity_ltcg"`
	Total         float64 `json:"total"`
}

// TaxLiability is the estimated tax on realized gains.
type TaxLiability struct {
	EquitySTCGTax    float64 `json:"equity_stcg_tax"`
	EquityLTCGTax    float64 `json:"equity_ltcg_tax"`
	NonEquitySTCGTax float64 `json:"non_equity_stcg_tax"`
	NonEquityLTCGTax float64 `json:"non_equity_ltcg_tax"`
	TotalTax         float64 `json:"total_tax"`
	EffectiveTaxRate float64 `json:"effective_tax_rate"`
}

// TaxReport is the capital gains view for one financial year.
// Unrealized buckets are informational and attract no liability.
type TaxReport struct {
	FinancialYear   string               `json:"financial_year"`
	Realized        GainBuckets          `json:"realized"`
	RealizedDetails []RealizedGainDetail `json:"realized_details"`
	Unrealized      GainBuckets          `json:"unrealized"`
	Liability       TaxLiability         `json:"liability"`
	ComputedAt      time.Time            `json:"computed_at"`
}
