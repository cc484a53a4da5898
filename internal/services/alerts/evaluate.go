package alerts

import (
	"math"

	"github.com/arjunmehra/folio/internal/formulas"
	"github.com/arjunmehra/folio/internal/models"
)

// rsiWindowDays is the history window fetched for RSI evaluation. It leaves
// enough closes for the default 14-period calculation.
const rsiWindowDays = 30

// neutralRSI stands in when the close history is too short to compute RSI,
// so such alerts neither fire nor error.
const neutralRSI = 50.0

// evaluatePriceBreakout fires when price crosses the target, boundary
// inclusive in the watched direction.
func evaluatePriceBreakout(price float64, cond models.PriceBreakoutCondition) bool {
	if cond.Direction == models.DirectionAbove {
		return price >= cond.TargetPrice
	}
	return price <= cond.TargetPrice
}

// evaluateVolumeSpike fires when current volume reaches the configured
// multiple of average volume.
func evaluateVolumeSpike(quote *models.Quote, cond models.VolumeSpikeCondition) bool {
	if quote.AverageVolume <= 0 {
		return false
	}
	return float64(quote.Volume)/float64(quote.AverageVolume) >= cond.Threshold
}

// evaluateRSI fires when the 14-period RSI crosses the level in the
// signalled direction.
func evaluateRSI(closes []float64, cond models.RSICondition) bool {
	rsi := formulas.RSI(closes, formulas.DefaultRSIPeriod)
	value := neutralRSI
	if rsi != nil {
		value = *rsi
	}

	if cond.Signal == models.RSIOverbought {
		return value >= cond.Level
	}
	return value <= cond.Level
}

// evaluatePercentMove fires when the magnitude of the move over the
// timeframe reaches the configured magnitude. Fewer than two prices in the
// window means no signal.
func evaluatePercentMove(closes []float64, cond models.PercentMoveCondition) bool {
	if len(closes) < 2 {
		return false
	}
	first := closes[0]
	if first == 0 {
		return false
	}
	actual := (closes[len(closes)-1] - first) / first * 100
	return math.Abs(actual) >= math.Abs(cond.PercentChange)
}
