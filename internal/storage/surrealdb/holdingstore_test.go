package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/arjunmehra/folio/internal/models"
)

func testHolding(id, portfolioID, symbol string) *models.Holding {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Holding{
		ID:           id,
		PortfolioID:  portfolioID,
		Symbol:       symbol,
		Name:         symbol + " Ltd",
		AssetType:    models.AssetEquity,
		Sector:       "IT",
		Quantity:     10,
		AvgBuyPrice:  1500,
		CurrentPrice: 1600,
		PurchaseDate: now.AddDate(-1, 0, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestHoldingStoreSaveAndGet(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	h := testHolding("hld_1", "pf_1", "TCS")
	if err := m.Holdings().Save(ctx, h); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := m.Holdings().Get(ctx, "hld_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing holding")
	}
	if got.Symbol != "TCS" || got.Quantity != 10 || got.AssetType != models.AssetEquity {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestHoldingStoreListByPortfolioSortedBySymbol(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	for _, h := range []*models.Holding{
		testHolding("hld_1", "pf_1", "TCS"),
		testHolding("hld_2", "pf_1", "INFY"),
		testHolding("hld_3", "pf_other", "SBIN"),
	} {
		if err := m.Holdings().Save(ctx, h); err != nil {
			t.Fatalf("Save %s: %v", h.ID, err)
		}
	}

	list, err := m.Holdings().ListByPortfolio(ctx, "pf_1")
	if err != nil {
		t.Fatalf("ListByPortfolio: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d holdings, want 2", len(list))
	}
	if list[0].Symbol != "INFY" || list[1].Symbol != "TCS" {
		t.Errorf("unexpected order: %s, %s", list[0].Symbol, list[1].Symbol)
	}
}

func TestHoldingStoreDeleteByPortfolio(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	for _, h := range []*models.Holding{
		testHolding("hld_1", "pf_1", "TCS"),
		testHolding("hld_2", "pf_1", "INFY"),
		testHolding("hld_3", "pf_keep", "SBIN"),
	} {
		if err := m.Holdings().Save(ctx, h); err != nil {
			t.Fatalf("Save %s: %v", h.ID, err)
		}
	}

	count, err := m.Holdings().DeleteByPortfolio(ctx, "pf_1")
	if err != nil {
		t.Fatalf("DeleteByPortfolio: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted %d holdings, want 2", count)
	}

	kept, err := m.Holdings().ListByPortfolio(ctx, "pf_keep")
	if err != nil {
		t.Fatalf("ListByPortfolio: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("other portfolio should keep its holding, got %d", len(kept))
	}
}
