// Package ledger owns the collection of placed orders. Orders are appended
// at placement and never deleted; after creation only the status field
// changes. Every write is a read-all, mutate, write-all replace of the whole
// collection document.
package ledger

import (
	"context"
	"time"

	"cafeteria/internal/cart"
	"cafeteria/internal/kv"
	"cafeteria/internal/models"
)

const baseKey = "orders"

// Ledger provides append-only creation, status transition, and read access
// over the order collection.
type Ledger struct {
	kv   kv.Store
	key  string
	cart *cart.Store
}

// New creates a ledger over the given backend. The cart store is consumed at
// placement time: a successful PlaceOrder clears it.
func New(store kv.Store, scope string, cartStore *cart.Store) *Ledger {
	return &Ledger{kv: store, key: kv.Key(scope, baseKey), cart: cartStore}
}

// Seed ensures the order collection exists as an empty sequence. An existing
// collection is left alone.
func (l *Ledger) Seed(ctx context.Context) error {
	var orders []models.Order
	found, err := l.kv.Get(ctx, l.key, &orders)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return l.kv.Set(ctx, l.key, []models.Order{})
}

// ListAll returns every order. The ledger imposes no ordering beyond what
// storage preserves; recency sorting is the reader's concern.
func (l *Ledger) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	found, err := l.kv.Get(ctx, l.key, &orders)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Order{}, nil
	}
	return orders, nil
}

// ListByPurchaser returns the orders stamped with the given roll number.
func (l *Ledger) ListByPurchaser(ctx context.Context, rollNo string) ([]models.Order, error) {
	orders, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Order{}
	for _, o := range orders {
		if o.User.RollNo == rollNo {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// GetByID returns a single order, with false when no order carries that id.
func (l *Ledger) GetByID(ctx context.Context, orderID int) (models.Order, bool, error) {
	orders, err := l.ListAll(ctx)
	if err != nil {
		return models.Order{}, false, err
	}
	for _, o := range orders {
		if o.OrderID == orderID {
			return o, true, nil
		}
	}
	return models.Order{}, false, nil
}

// UpdateStatus overwrites the status of the order with the given id and
// persists the collection. Returns false, with the ledger untouched, when the
// id is unknown. The overwrite is unconditional: the ledger does not enforce
// the workflow adjacency graph, which is the caller's policy. Writing the
// status an order already has is an idempotent success.
func (l *Ledger) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (bool, error) {
	orders, err := l.ListAll(ctx)
	if err != nil {
		return false, err
	}
	for i := range orders {
		if orders[i].OrderID != orderID {
			continue
		}
		orders[i].Status = status
		if err := l.kv.Set(ctx, l.key, orders); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// PlaceOrder materializes an order from the given purchaser and cart lines.
// It fails (false) without side effects when the purchaser lacks a roll
// number or mobile, or when the lines are empty. On success the order is
// appended with a fresh id (max existing + 1, or 1 on an empty ledger),
// status Pending, a creation timestamp, and a total of Σ price × qty over a
// deep copy of the lines; the cart is then cleared.
func (l *Ledger) PlaceOrder(ctx context.Context, user models.User, lines []models.CartLine) (models.Order, bool, error) {
	if !user.CanOrder() || len(lines) == 0 {
		return models.Order{}, false, nil
	}

	orders, err := l.ListAll(ctx)
	if err != nil {
		return models.Order{}, false, err
	}

	total := 0.0
	for _, line := range lines {
		total += line.LineTotal()
	}

	items := make([]models.CartLine, len(lines))
	copy(items, lines)

	order := models.Order{
		OrderID:   nextOrderID(orders),
		User:      models.OrderUser{RollNo: user.RollNo, Mobile: user.Mobile},
		Items:     items,
		Status:    models.OrderStatusPending,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Total:     total,
	}

	orders = append(orders, order)
	if err := l.kv.Set(ctx, l.key, orders); err != nil {
		return models.Order{}, false, err
	}
	if err := l.cart.Clear(ctx); err != nil {
		return models.Order{}, false, err
	}
	return order, true, nil
}

func nextOrderID(orders []models.Order) int {
	max := 0
	for _, o := range orders {
		if o.OrderID > max {
			max = o.OrderID
		}
	}
	return max + 1
}
