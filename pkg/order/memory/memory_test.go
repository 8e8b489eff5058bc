package memory

import (
	"context"
	"testing"

	"shopflow/pkg/order"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	o := order.Order{
		CustomerID: "C1",
		Lines:      []order.OrderLine{{ProductID: "P1", Quantity: 2, UnitPrice: 5.00}},
	}
	created, err := repo.Create(ctx, o)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Lines[0].ID == "" {
		t.Fatalf("ids not generated: %+v", created)
	}
	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerID != "C1" || len(got.Lines) != 1 || got.Lines[0].UnitPrice != 5.00 {
		t.Fatalf("unexpected order: %+v", got)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); err != order.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRepositoryRejectsEmptyOrder(t *testing.T) {
	ctx := context.Background()
	repo := New()
	if _, err := repo.Create(ctx, order.Order{CustomerID: "C1"}); err != order.ErrNoLines {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
	if list, _ := repo.List(ctx); len(list) != 0 {
		t.Fatalf("empty order stored")
	}
}
