package memory

import (
	"context"
	"testing"

	"shopflow/pkg/customer"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	repo.Add(customer.Customer{ID: "C1", Name: "Ada", Email: "ada@example.com"})

	c, err := repo.FindByID(ctx, "C1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if c.Name != "Ada" {
		t.Fatalf("unexpected customer: %+v", c)
	}
	if _, err := repo.FindByID(ctx, "C9"); err != customer.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
