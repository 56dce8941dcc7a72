package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/morph/pkg/adapters/memory"
	"github.com/aretw0/morph/pkg/persistence/middleware"
	"github.com/aretw0/morph/pkg/value"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	store := middleware.NewPIIMiddleware([]string{"(?i)password", "^token$"})(underlyingStore)

	ctx := context.Background()
	original := value.Map{
		"user":     value.Text("alice"),
		"Password": value.Text("hunter2"),
		"token":    value.Integer(42),
		"db": value.Mapping(value.Map{
			"host":        value.Text("localhost"),
			"db_password": value.Text("s3cret"),
		}),
		"replicas": value.Sequence(value.Mapping(value.Map{"password": value.Text("x")})),
	}

	if err := store.Save(ctx, "cfg", original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, err := underlyingStore.Load(ctx, "cfg")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := value.Map{
		"user":     value.Text("alice"),
		"Password": value.Text(middleware.Mask),
		"token":    value.Text(middleware.Mask),
		"db": value.Mapping(value.Map{
			"host":        value.Text("localhost"),
			"db_password": value.Text(middleware.Mask),
		}),
		"replicas": value.Sequence(value.Mapping(value.Map{"password": value.Text(middleware.Mask)})),
	}
	if !want.Equal(saved) {
		t.Errorf("saved %s, want %s", saved, want)
	}

	if !value.Equal(value.Text("hunter2"), original["Password"]) {
		t.Error("Save must not modify the caller's result")
	}
}

func TestChain_Order(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()

	store := middleware.Chain(underlyingStore,
		middleware.NewPIIMiddleware([]string{"secret"}),
	)
	if err := store.Save(ctx, "r", value.Map{"secret": value.Text("x")}); err != nil {
		t.Fatal(err)
	}

	names, err := store.List(ctx)
	if err != nil || len(names) != 1 || names[0] != "r" {
		t.Fatalf("List() = %v, %v", names, err)
	}
}
