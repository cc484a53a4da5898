package tax

import (
	"math"
	"testing"
	"time"

	"github.com/arjunmehra/folio/internal/models"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func day(n int) time.Time {
	return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func buy(symbol string, qty, price float64, d int) *models.Trade {
	return &models.Trade{Symbol: symbol, TradeType: models.TradeBuy, Quantity: qty, Price: price, Charges: 20, TradeDate: day(d)}
}

func sell(symbol string, qty, price float64, d int) *models.Trade {
	return &models.Trade{Symbol: symbol, TradeType: models.TradeSell, Quantity: qty, Price: price, Charges: 20, TradeDate: day(d)}
}

func equityTypes(symbols ...string) map[string]models.AssetType {
	m := make(map[string]models.AssetType)
	for _, s := range symbols {
		m[s] = models.AssetEquity
	}
	return m
}

func TestMatchSellsConsumesLotsFIFO(t *testing.T) {
	trades := []*models.Trade{
		buy("TCS", 10, 100, 0),
		buy("TCS", 10, 200, 30),
		sell("TCS", 15, 300, 60),
	}

	details := matchSells(trades, equityTypes("TCS"))
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}

	d := details[0]
	// 10@100 + 5@200 = 2000 basis; 15*300 less 20 charges = 4480 proceeds.
	// Buy charges never enter the basis.
	if !approxEqual(d.CostBasis, 2000, 1e-9) {
		t.Errorf("CostBasis = %v, want 2000", d.CostBasis)
	}
	if !approxEqual(d.SellValue, 4480, 1e-9) {
		t.Errorf("SellValue = %v, want 4480", d.SellValue)
	}
	if !approxEqual(d.Gain, 2480, 1e-9) {
		t.Errorf("Gain = %v, want 2480", d.Gain)
	}
	if !d.PurchaseDate.Equal(day(0)) {
		t.Errorf("PurchaseDate = %v, want oldest lot date %v", d.PurchaseDate, day(0))
	}
	if d.HoldingPeriodDays != 60 {
		t.Errorf("HoldingPeriodDays = %d, want 60", d.HoldingPeriodDays)
	}
}

func TestMatchSellsSkipsSellWithoutBuys(t *testing.T) {
	trades := []*models.Trade{
		sell("INFY", 5, 100, 0),
		buy("INFY", 5, 90, 10),
	}

	// The sell predates the buy, so at replay time no lots exist.
	details := matchSells(trades, equityTypes("INFY"))
	if len(details) != 0 {
		t.Fatalf("expected no details, got %d", len(details))
	}
}

func TestMatchSellsPartialCoverage(t *testing.T) {
	trades := []*models.Trade{
		buy("SBIN", 5, 100, 0),
		sell("SBIN", 8, 120, 10),
	}

	details := matchSells(trades, equityTypes("SBIN"))
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	if details[0].Quantity != 5 {
		t.Errorf("Quantity = %v, want 5 (matched portion only)", details[0].Quantity)
	}
	// 5*120 less 20 charges = 580 proceeds against a 500 basis.
	if !approxEqual(details[0].SellValue, 580, 1e-9) {
		t.Errorf("SellValue = %v, want 580", details[0].SellValue)
	}
	if !approxEqual(details[0].Gain, 80, 1e-9) {
		t.Errorf("Gain = %v, want 80", details[0].Gain)
	}
}

func TestMatchSellsSortsByDate(t *testing.T) {
	trades := []*models.Trade{
		sell("A", 10, 150, 20),
		buy("A", 10, 100, 0),
	}

	details := matchSells(trades, equityTypes("A"))
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	if !approxEqual(details[0].Gain, 480, 1e-9) {
		t.Errorf("Gain = %v, want 480", details[0].Gain)
	}
}

func TestMatchSellsDeductsSellCharges(t *testing.T) {
	trades := []*models.Trade{
		{Symbol: "ITC", TradeType: models.TradeBuy, Quantity: 10, Price: 100, Charges: 15, TradeDate: day(0)},
		{Symbol: "ITC", TradeType: models.TradeSell, Quantity: 10, Price: 200, Charges: 500, TradeDate: day(30)},
	}

	details := matchSells(trades, equityTypes("ITC"))
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	if !approxEqual(details[0].SellValue, 1500, 1e-9) {
		t.Errorf("SellValue = %v, want 1500 after charges", details[0].SellValue)
	}
	if !approxEqual(details[0].Gain, 500, 1e-9) {
		t.Errorf("Gain = %v, want 500", details[0].Gain)
	}
}

func TestGainTypeBoundaries(t *testing.T) {
	cases := []struct {
		asset models.AssetType
		days  int
		want  string
	}{
		{models.AssetEquity, 365, models.GainShortTerm},
		{models.AssetEquity, 366, models.GainLongTerm},
		{models.AssetUSStock, 366, models.GainLongTerm},
		{models.AssetMutualFund, 365, models.GainShortTerm},
		{models.AssetMutualFund, 1095, models.GainShortTerm},
		{models.AssetMutualFund, 1096, models.GainLongTerm},
		{models.AssetCrypto, 1095, models.GainShortTerm},
	}
	for _, c := range cases {
		if got := gainType(c.asset, c.days); got != c.want {
			t.Errorf("gainType(%s, %d) = %s, want %s", c.asset, c.days, got, c.want)
		}
	}
}

func TestHoldingPeriodRoundsUp(t *testing.T) {
	purchase := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	sellAt := purchase.Add(36 * time.Hour)
	if got := holdingPeriodDays(purchase, sellAt); got != 2 {
		t.Errorf("holdingPeriodDays = %d, want 2", got)
	}
	if got := holdingPeriodDays(purchase, purchase); got != 1 {
		t.Errorf("same-day holding period = %d, want 1", got)
	}
}

func TestAssetTypeDefaultsToEquity(t *testing.T) {
	if got := assetTypeFor(nil, "UNKNOWN"); got != models.AssetEquity {
		t.Errorf("assetTypeFor = %s, want Equity", got)
	}
}
