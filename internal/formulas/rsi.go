// Package formulas holds the indicator and statistics helpers shared by
// the analytics and alert engines.
package formulas

import (
	"github.com/markcheno/go-talib"
)

// DefaultRSIPeriod is the standard Wilder smoothing period.
const DefaultRSIPeriod = 14

// RSI computes the Relative Strength Index over the close series and
// returns the latest value, or nil when the series is too short.
//
//	RSI = 100 - (100 / (1 + RS)), RS = avg gain / avg loss over N periods
func RSI(closes []float64, period int) *float64 {
	if len(closes) < period+1 {
		return nil
	}

	rsi := talib.Rsi(closes, period)
	if len(rsi) == 0 {
		return nil
	}

	last := rsi[len(rsi)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}

func isNaN(f float64) bool {
	return f != f
}
