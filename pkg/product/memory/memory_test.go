package memory

import (
	"context"
	"testing"

	"shopflow/pkg/product"
)

func TestFindAllByID(t *testing.T) {
	ctx := context.Background()
	repo := New()
	repo.Add(product.Product{ID: "P1", UnitPrice: 5.00, AvailableQuantity: 10})
	repo.Add(product.Product{ID: "P2", UnitPrice: 2.50, AvailableQuantity: 3})

	found, err := repo.FindAllByID(ctx, []string{"P2", "P9", "P1"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 products, got %d", len(found))
	}
	if found[0].ID != "P2" || found[1].ID != "P1" {
		t.Fatalf("request order not preserved: %+v", found)
	}
}

func TestUpdateQuantities(t *testing.T) {
	ctx := context.Background()
	repo := New()
	repo.Add(product.Product{ID: "P1", AvailableQuantity: 10})
	repo.Add(product.Product{ID: "P2", AvailableQuantity: 3})

	err := repo.UpdateQuantities(ctx, []product.QuantityUpdate{
		{ID: "P1", ExpectedQuantity: 10, NewQuantity: 6},
		{ID: "P2", ExpectedQuantity: 3, NewQuantity: 0},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p, _ := repo.Get("P1"); p.AvailableQuantity != 6 {
		t.Fatalf("P1 not updated: %d", p.AvailableQuantity)
	}
	if p, _ := repo.Get("P2"); p.AvailableQuantity != 0 {
		t.Fatalf("P2 not updated: %d", p.AvailableQuantity)
	}
}

func TestUpdateQuantitiesConflict(t *testing.T) {
	ctx := context.Background()
	repo := New()
	repo.Add(product.Product{ID: "P1", AvailableQuantity: 10})
	repo.Add(product.Product{ID: "P2", AvailableQuantity: 3})

	cases := []struct {
		name    string
		updates []product.QuantityUpdate
	}{
		{"stale expected", []product.QuantityUpdate{{ID: "P1", ExpectedQuantity: 9, NewQuantity: 5}}},
		{"negative new", []product.QuantityUpdate{{ID: "P1", ExpectedQuantity: 10, NewQuantity: -1}}},
		{"unknown product", []product.QuantityUpdate{{ID: "P9", ExpectedQuantity: 1, NewQuantity: 0}}},
		{"partial conflict", []product.QuantityUpdate{
			{ID: "P1", ExpectedQuantity: 10, NewQuantity: 6},
			{ID: "P2", ExpectedQuantity: 2, NewQuantity: 0},
		}},
	}
	for _, tc := range cases {
		if err := repo.UpdateQuantities(ctx, tc.updates); err != product.ErrStockConflict {
			t.Fatalf("%s: expected ErrStockConflict, got %v", tc.name, err)
		}
	}
	// A rejected batch writes nothing, even for the entries that matched.
	if p, _ := repo.Get("P1"); p.AvailableQuantity != 10 {
		t.Fatalf("P1 mutated by rejected batch: %d", p.AvailableQuantity)
	}
	if p, _ := repo.Get("P2"); p.AvailableQuantity != 3 {
		t.Fatalf("P2 mutated by rejected batch: %d", p.AvailableQuantity)
	}
}
