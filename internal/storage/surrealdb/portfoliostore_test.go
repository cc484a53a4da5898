package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/arjunmehra/folio/internal/models"
)

func TestPortfolioStoreSaveAndGet(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	p := &models.Portfolio{
		ID:          "pf_1",
		UserID:      "usr_1",
		Name:        "Long Term",
		Description: "Retirement corpus",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := m.Portfolios().Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := m.Portfolios().Get(ctx, "pf_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Name != "Long Term" || got.UserID != "usr_1" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestPortfolioStoreGetMissing(t *testing.T) {
	m := testManager(t)

	got, err := m.Portfolios().Get(context.Background(), "pf_missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing portfolio, got %+v", got)
	}
}

func TestPortfolioStoreListByUser(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"pf_a", "pf_b"} {
		p := &models.Portfolio{
			ID:        id,
			UserID:    "usr_1",
			Name:      id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := m.Portfolios().Save(ctx, p); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	other := &models.Portfolio{ID: "pf_x", UserID: "usr_2", Name: "other", CreatedAt: base}
	if err := m.Portfolios().Save(ctx, other); err != nil {
		t.Fatalf("Save other: %v", err)
	}

	list, err := m.Portfolios().ListByUser(ctx, "usr_1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d portfolios, want 2", len(list))
	}
	if list[0].ID != "pf_a" || list[1].ID != "pf_b" {
		t.Errorf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestPortfolioStoreListByUserEmpty(t *testing.T) {
	m := testManager(t)

	list, err := m.Portfolios().ListByUser(context.Background(), "usr_none")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty (non-nil) list, got %v", list)
	}
}

func TestPortfolioStoreDelete(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	p := &models.Portfolio{ID: "pf_1", UserID: "usr_1", Name: "tmp"}
	if err := m.Portfolios().Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Portfolios().Delete(ctx, "pf_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := m.Portfolios().Get(ctx, "pf_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("portfolio still present after delete")
	}
}
