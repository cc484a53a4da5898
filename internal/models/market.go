package models

import "time"

// Quote is the current market state for a symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Volume        int64     `json:"volume"`
	AverageVolume int64     `json:"average_volume"`
	AsOf          time.Time `json:"as_of"`
}

// PricePoint is one day in a historical close series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}
