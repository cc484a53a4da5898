package analytics

import (
	"sort"

	"github.com/arjunmehra/folio/internal/models"
)

// position tracks the running quantity and cost for one symbol during replay.
type position struct {
	quantity  float64
	totalCost float64
}

// RealizedPL replays trades chronologically with a running-average cost
// basis and returns the total realized profit or loss.
//
// Buys add quantity and cost (price plus charges). Sells realize the
// difference between net proceeds and the average cost of the quantity
// sold. A sell against a flat position carries a zero cost basis and so
// realizes its full net proceeds; trade history is taken as-is.
func RealizedPL(trades []*models.Trade) float64 {
	sorted := make([]*models.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TradeDate.Before(sorted[j].TradeDate)
	})

	positions := make(map[string]*position)
	var realized float64

	for _, t := range sorted {
		pos := positions[t.Symbol]
		if pos == nil {
			pos = &position{}
			positions[t.Symbol] = pos
		}

		switch t.TradeType {
		case models.TradeBuy:
			pos.quantity += t.Quantity
			pos.totalCost += t.Quantity*t.Price + t.Charges

		case models.TradeSell:
			var avgCost float64
			if pos.quantity > 0 {
				avgCost = pos.totalCost / pos.quantity
			}
			sellValue := t.Quantity*t.Price - t.Charges
			costBasis := t.Quantity * avgCost
			realized += sellValue - costBasis
			pos.quantity -= t.Quantity
			pos.totalCost -= costBasis
		}
	}

	return realized
}
