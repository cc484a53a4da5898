package models

import "time"

// AssetType classifies a holding for volatility and tax treatment.
type AssetType string

const (
	AssetEquity     AssetType = "Equity"
	AssetMutualFund AssetType = "Mutual Fund"
	AssetCrypto     AssetType = "Crypto"
	AssetUSStock    AssetType = "US Stock"
)

// IsEquity reports whether the asset class receives equity tax treatment.
func (a AssetType) IsEquity() bool {
	switch a {
	case AssetEquity, AssetUSStock:
		return true
	case AssetMutualFund, AssetCrypto:
		return false
	}
	return false
}

// Valid reports whether a is a known asset type.
func (a AssetType) Valid() bool {
	switch a {
	case AssetEquity, AssetMutualFund, AssetCrypto, AssetUSStock:
		return true
	}
	return false
}

// VolatilityEstimate returns the annualized volatility assumption (in percent)
// for the asset class. Unknown classes get a middle-of-the-road 20.
func (a AssetType) VolatilityEstimate() float64 {
	switch a {
	case AssetEquity:
		return 25
	case AssetMutualFund:
		return 15
	case AssetCrypto:
		return 60
	case AssetUSStock:
		return 30
	}
	return 20
}

// Trade sides.
const (
	TradeBuy  = "BUY"
	TradeSell = "SELL"
)

// Portfolio groups holdings and trades under a user account.
type Portfolio struct {
	ID          string    `json:"portfolio_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Holding is a current position in a portfolio. Quantity and AvgBuyPrice
// describe the position; CurrentPrice is refreshed from market data.
type Holding struct {
	ID           string    `json:"holding_id"`
	PortfolioID  string    `json:"portfolio_id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name,omitempty"`
	AssetType    AssetType `json:"asset_type"`
	Sector       string    `json:"sector,omitempty"`
	Quantity     float64   `json:"quantity"`
	AvgBuyPrice  float64   `json:"avg_buy_price"`
	CurrentPrice float64   `json:"current_price"`
	PurchaseDate time.Time `json:"purchase_date"`
	LastUpdated  time.Time `json:"last_updated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Trade is an immutable buy or sell record.
type Trade struct {
	ID          string    `json:"trade_id"`
	PortfolioID string    `json:"portfolio_id"`
	Symbol      string    `json:"symbol"`
	TradeType   string    `json:"trade_type"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Charges     float64   `json:"charges"`
	TradeDate   time.Time `json:"trade_date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TotalValue returns the gross trade value including charges.
func (t *Trade) TotalValue() float64 {
	return t.Quantity*t.Price + t.Charges
}

// Derived holding values. Free functions rather than entity methods so the
// arithmetic stays in one place and entities remain plain data.

// InvestedValue returns quantity times average buy price.
func InvestedValue(h *Holding) float64 {
	return h.Quantity * h.AvgBuyPrice
}

// CurrentValue returns quantity times current price.
func CurrentValue(h *Holding) float64 {
	return h.Quantity * h.CurrentPrice
}

// UnrealizedPL returns the open profit or loss on the position.
func UnrealizedPL(h *Holding) float64 {
	return CurrentValue(h) - InvestedValue(h)
}

// UnrealizedPLPercent returns the open P&L as a percentage of invested
// value, or 0 when nothing is invested.
func UnrealizedPLPercent(h *Holding) float64 {
	invested := InvestedValue(h)
	if invested == 0 {
		return 0
	}
	return UnrealizedPL(h) / invested * 100
}
