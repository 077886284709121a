package ledger

import (
	"context"
	"reflect"
	"testing"
	"time"

	"cafeteria/internal/cart"
	"cafeteria/internal/kv"
	"cafeteria/internal/models"
)

func newTestLedger() (*Ledger, *cart.Store) {
	store := kv.NewMemoryStore()
	cartStore := cart.New(store, "")
	return New(store, "", cartStore), cartStore
}

var fries = models.MenuItem{ID: 5, Name: "French Fries", Price: 30}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	if err := cartStore.Add(ctx, fries, 2); err != nil {
		t.Fatalf("cart add failed: %v", err)
	}
	lines, _ := cartStore.Get(ctx)

	order, ok, err := l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)
	if err != nil || !ok {
		t.Fatalf("PlaceOrder = %v, %v, want true, nil", ok, err)
	}

	if order.OrderID != 1 {
		t.Errorf("orderId = %d, want 1", order.OrderID)
	}
	if order.Total != 60 {
		t.Errorf("total = %v, want 60", order.Total)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %q, want Pending", order.Status)
	}
	if order.User.RollNo != "R1" || order.User.Mobile != "M1" {
		t.Errorf("purchaser stamp = %+v, want {R1 M1}", order.User)
	}
	if len(order.Items) != 1 || order.Items[0].ID != 5 || order.Items[0].Qty != 2 {
		t.Errorf("items = %+v, want the cart lines", order.Items)
	}
	if _, err := time.Parse(time.RFC3339, order.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", order.Timestamp, err)
	}

	// Successful placement clears the cart and appends exactly one order.
	after, _ := cartStore.Get(ctx)
	if len(after) != 0 {
		t.Errorf("cart after placement = %+v, want empty", after)
	}
	orders, _ := l.ListAll(ctx)
	if len(orders) != 1 {
		t.Errorf("ledger has %d orders, want 1", len(orders))
	}
}

func TestPlaceOrderFailureHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	cartStore.Add(ctx, fries, 1)
	lines, _ := cartStore.Get(ctx)

	cases := []struct {
		name  string
		user  models.User
		lines []models.CartLine
	}{
		{"missing rollNo and mobile", models.User{Role: models.RoleStudent}, lines},
		{"missing mobile", models.User{Role: models.RoleStudent, RollNo: "R1"}, lines},
		{"empty cart", models.NewStudent("R1", "M1"), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, err := l.PlaceOrder(ctx, tc.user, tc.lines)
			if err != nil {
				t.Fatalf("PlaceOrder errored: %v", err)
			}
			if ok {
				t.Fatal("PlaceOrder succeeded, want failure")
			}
			orders, _ := l.ListAll(ctx)
			if len(orders) != 0 {
				t.Errorf("ledger gained orders on failed placement: %+v", orders)
			}
			after, _ := cartStore.Get(ctx)
			if !reflect.DeepEqual(after, lines) {
				t.Errorf("cart mutated on failed placement: %+v", after)
			}
		})
	}
}

func TestPlaceOrderItemsAreDeepCopied(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	cartStore.Add(ctx, fries, 2)
	lines, _ := cartStore.Get(ctx)

	order, ok, err := l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)
	if err != nil || !ok {
		t.Fatalf("PlaceOrder failed: %v %v", ok, err)
	}

	// Mutating the caller's slice must not reach into the stored order.
	lines[0].Price = 999
	lines[0].Qty = 999

	stored, found, _ := l.GetByID(ctx, order.OrderID)
	if !found {
		t.Fatal("placed order not found")
	}
	if stored.Items[0].Price != 30 || stored.Items[0].Qty != 2 {
		t.Errorf("order items changed through the cart slice: %+v", stored.Items[0])
	}
}

func TestOrderIDsIncrement(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	for want := 1; want <= 3; want++ {
		cartStore.Add(ctx, fries, 1)
		lines, _ := cartStore.Get(ctx)
		order, ok, err := l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)
		if err != nil || !ok {
			t.Fatalf("PlaceOrder #%d failed: %v %v", want, ok, err)
		}
		if order.OrderID != want {
			t.Errorf("orderId = %d, want %d", order.OrderID, want)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	cartStore.Add(ctx, fries, 1)
	lines, _ := cartStore.Get(ctx)
	order, _, _ := l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)

	ok, err := l.UpdateStatus(ctx, order.OrderID, models.OrderStatusAccepted)
	if err != nil || !ok {
		t.Fatalf("UpdateStatus = %v, %v, want true, nil", ok, err)
	}
	got, _, _ := l.GetByID(ctx, order.OrderID)
	if got.Status != models.OrderStatusAccepted {
		t.Errorf("status = %q, want Accepted", got.Status)
	}

	// Only status changes; everything else is immutable.
	if got.Total != order.Total || got.Timestamp != order.Timestamp || !reflect.DeepEqual(got.Items, order.Items) {
		t.Errorf("UpdateStatus touched immutable fields: %+v", got)
	}
}

func TestUpdateStatusUnknownOrderLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	cartStore.Add(ctx, fries, 1)
	lines, _ := cartStore.Get(ctx)
	l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)
	before, _ := l.ListAll(ctx)

	ok, err := l.UpdateStatus(ctx, 404, models.OrderStatusAccepted)
	if err != nil {
		t.Fatalf("UpdateStatus errored: %v", err)
	}
	if ok {
		t.Error("UpdateStatus(404) = true, want false")
	}

	after, _ := l.ListAll(ctx)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("ledger changed under failed update:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUpdateStatusIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	cartStore.Add(ctx, fries, 1)
	lines, _ := cartStore.Get(ctx)
	order, _, _ := l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)

	l.UpdateStatus(ctx, order.OrderID, models.OrderStatusAccepted)
	once, _, _ := l.GetByID(ctx, order.OrderID)

	ok, err := l.UpdateStatus(ctx, order.OrderID, models.OrderStatusAccepted)
	if err != nil || !ok {
		t.Fatalf("repeated UpdateStatus = %v, %v, want true, nil", ok, err)
	}
	twice, _, _ := l.GetByID(ctx, order.OrderID)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("repeated update changed the record:\nonce  %+v\ntwice %+v", once, twice)
	}
}

func TestListByPurchaser(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	for _, roll := range []string{"R1", "R2", "R1"} {
		cartStore.Add(ctx, fries, 1)
		lines, _ := cartStore.Get(ctx)
		if _, ok, err := l.PlaceOrder(ctx, models.NewStudent(roll, "M"), lines); err != nil || !ok {
			t.Fatalf("PlaceOrder for %s failed: %v %v", roll, ok, err)
		}
	}

	r1, err := l.ListByPurchaser(ctx, "R1")
	if err != nil {
		t.Fatalf("ListByPurchaser failed: %v", err)
	}
	if len(r1) != 2 {
		t.Errorf("R1 has %d orders, want 2", len(r1))
	}
	for _, o := range r1 {
		if o.User.RollNo != "R1" {
			t.Errorf("foreign order in R1 listing: %+v", o)
		}
	}

	none, err := l.ListByPurchaser(ctx, "R404")
	if err != nil {
		t.Fatalf("ListByPurchaser failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown purchaser has %d orders, want 0", len(none))
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	cartStore.Add(ctx, fries, 1)
	lines, _ := cartStore.Get(ctx)
	order, _, _ := l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)

	got, found, err := l.GetByID(ctx, order.OrderID)
	if err != nil || !found {
		t.Fatalf("GetByID = %v, %v, want true, nil", found, err)
	}
	if got.OrderID != order.OrderID {
		t.Errorf("GetByID returned order %d, want %d", got.OrderID, order.OrderID)
	}

	_, found, err = l.GetByID(ctx, 404)
	if err != nil {
		t.Fatalf("GetByID errored: %v", err)
	}
	if found {
		t.Error("GetByID(404) found an order, want none")
	}
}

func TestSeedCreatesEmptyCollectionOnce(t *testing.T) {
	ctx := context.Background()
	l, cartStore := newTestLedger()

	if err := l.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	orders, _ := l.ListAll(ctx)
	if len(orders) != 0 {
		t.Errorf("fresh ledger has %d orders, want 0", len(orders))
	}

	cartStore.Add(ctx, fries, 1)
	lines, _ := cartStore.Get(ctx)
	l.PlaceOrder(ctx, models.NewStudent("R1", "M1"), lines)

	if err := l.Seed(ctx); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	orders, _ = l.ListAll(ctx)
	if len(orders) != 1 {
		t.Errorf("Seed wiped placed orders: %d, want 1", len(orders))
	}
}
