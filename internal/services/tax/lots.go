package tax

import (
	"math"
	"sort"
	"time"

	"github.com/arjunmehra/folio/internal/models"
)

// Holding period boundaries, in days. At or below the boundary a gain is
// short-term.
const (
	equitySTCGDays    = 365
	nonEquitySTCGDays = 1095
)

// lot is an open FIFO purchase tranche.
type lot struct {
	quantity float64
	price    float64
	date     time.Time
}

// matchSells replays the full trade history in date order, consuming buy
// lots first-in-first-out, and returns one gain detail per matched sell.
// Buy charges are excluded from cost basis; sell charges reduce the
// proceeds. A sell with no prior buys on record is skipped; a partially
// covered sell is matched for the quantity available.
func matchSells(trades []*models.Trade, assetTypes map[string]models.AssetType) []models.RealizedGainDetail {
	sorted := make([]*models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TradeDate.Before(sorted[j].TradeDate)
	})

	lots := make(map[string][]lot)
	var details []models.RealizedGainDetail

	for _, t := range sorted {
		switch t.TradeType {
		case models.TradeBuy:
			lots[t.Symbol] = append(lots[t.Symbol], lot{quantity: t.Quantity, price: t.Price, date: t.TradeDate})

		case models.TradeSell:
			open := lots[t.Symbol]
			if len(open) == 0 {
				continue
			}

			purchaseDate := open[0].date
			var matched, costBasis float64
			remaining := t.Quantity
			for remaining > 0 && len(open) > 0 {
				take := math.Min(remaining, open[0].quantity)
				costBasis += take * open[0].price
				matched += take
				remaining -= take
				open[0].quantity -= take
				if open[0].quantity <= 0 {
					open = open[1:]
				}
			}
			lots[t.Symbol] = open

			sellValue := matched*t.Price - t.Charges
			days := holdingPeriodDays(purchaseDate, t.TradeDate)
			details = append(details, models.RealizedGainDetail{
				Symbol:            t.Symbol,
				SellDate:          t.TradeDate,
				PurchaseDate:      purchaseDate,
				Quantity:          matched,
				SellValue:         round2(sellValue),
				CostBasis:         round2(costBasis),
				Gain:              round2(sellValue - costBasis),
				HoldingPeriodDays: days,
				Type:              gainType(assetTypeFor(assetTypes, t.Symbol), days),
			})
		}
	}

	return details
}

// holdingPeriodDays returns the calendar days between purchase and sale,
// rounded up so same-day round trips count as one day.
func holdingPeriodDays(purchase, sell time.Time) int {
	hours := math.Abs(sell.Sub(purchase).Hours())
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// assetTypeFor looks up a symbol's asset class. Symbols with no surviving
// holding default to equity treatment.
func assetTypeFor(assetTypes map[string]models.AssetType, symbol string) models.AssetType {
	if a, ok := assetTypes[symbol]; ok {
		return a
	}
	return models.AssetEquity
}

// gainType classifies a gain by asset class and holding period.
func gainType(asset models.AssetType, days int) string {
	boundary := nonEquitySTCGDays
	if asset.IsEquity() {
		boundary = equitySTCGDays
	}
	if days <= boundary {
		return models.GainShortTerm
	}
	return models.GainLongTerm
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
