package catalog

import (
	"context"
	"testing"

	"cafeteria/internal/kv"
	"cafeteria/internal/models"
)

func newTestStore() *Store {
	return New(kv.NewMemoryStore(), "")
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	prev := 0
	for _, name := range []string{"Tea", "Toast", "Samosa", "Juice"} {
		item, err := store.Add(ctx, models.MenuItem{Name: name, Price: 10})
		if err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
		if item.ID <= prev {
			t.Errorf("Add(%s) id = %d, want > %d", name, item.ID, prev)
		}
		prev = item.ID
	}
}

func TestAddThenRemoveScenario(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	tea, err := store.Add(ctx, models.MenuItem{Name: "Tea", Price: 20})
	if err != nil {
		t.Fatalf("Add(Tea) failed: %v", err)
	}
	if tea.ID != 1 || tea.Name != "Tea" || tea.Price != 20 {
		t.Errorf("Add(Tea) = %+v, want {ID:1 Name:Tea Price:20}", tea)
	}

	toast, err := store.Add(ctx, models.MenuItem{Name: "Toast", Price: 15})
	if err != nil {
		t.Fatalf("Add(Toast) failed: %v", err)
	}
	if toast.ID != 2 {
		t.Errorf("Add(Toast) id = %d, want 2", toast.ID)
	}

	ok, err := store.Remove(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("Remove(1) = %v, %v, want true, nil", ok, err)
	}
	ok, err = store.Remove(ctx, 1)
	if err != nil {
		t.Fatalf("second Remove(1) failed: %v", err)
	}
	if ok {
		t.Error("second Remove(1) = true, want false")
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("List after removal = %+v, want only item 2", items)
	}
}

// Removing the highest-id item and re-adding reissues the removed id. This
// frontier reuse is intentional behavior, not a bug.
func TestIDReuseAtFrontier(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	store.Add(ctx, models.MenuItem{Name: "Tea", Price: 20})
	highest, _ := store.Add(ctx, models.MenuItem{Name: "Toast", Price: 15})

	if ok, _ := store.Remove(ctx, highest.ID); !ok {
		t.Fatalf("Remove(%d) failed", highest.ID)
	}
	readd, err := store.Add(ctx, models.MenuItem{Name: "Idli", Price: 25})
	if err != nil {
		t.Fatalf("Add after removal failed: %v", err)
	}
	if readd.ID != highest.ID {
		t.Errorf("re-add id = %d, want reused frontier id %d", readd.ID, highest.ID)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	item, _ := store.Add(ctx, models.MenuItem{Name: "Tea", Price: 20, Category: "Beverages"})

	newPrice := 25.0
	ok, err := store.Update(ctx, item.ID, ItemPatch{Price: &newPrice})
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v, want true, nil", ok, err)
	}

	items, _ := store.List(ctx)
	got := items[0]
	if got.Price != 25 {
		t.Errorf("price after update = %v, want 25", got.Price)
	}
	if got.Name != "Tea" || got.Category != "Beverages" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.ID != item.ID {
		t.Errorf("id changed on update: %d -> %d", item.ID, got.ID)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	name := "Ghost"
	ok, err := store.Update(ctx, 99, ItemPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if ok {
		t.Error("Update(99) = true on empty catalog, want false")
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	items, _ := store.List(ctx)
	if len(items) != 6 {
		t.Fatalf("seeded catalog has %d items, want 6", len(items))
	}
	if items[0].Name != "Burger" || items[0].Price != 50 {
		t.Errorf("first seeded item = %+v, want Burger at 50", items[0])
	}

	// Seeding again, or after edits, must not overwrite.
	store.Remove(ctx, 1)
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	items, _ = store.List(ctx)
	if len(items) != 5 {
		t.Errorf("Seed overwrote an existing catalog: %d items, want 5", len(items))
	}
}
