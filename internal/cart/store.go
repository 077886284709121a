// Package cart owns the pending-order line items of a session. Lines copy
// name and price from the menu item at add time; the cart never checks back
// against the live catalog.
package cart

import (
	"context"

	"cafeteria/internal/kv"
	"cafeteria/internal/models"
)

const baseKey = "cafeteria_cart"

// Store provides access to the session's cart lines.
type Store struct {
	kv  kv.Store
	key string
}

// New creates a cart store over the given backend, optionally scoped per
// session.
func New(store kv.Store, scope string) *Store {
	return &Store{kv: store, key: kv.Key(scope, baseKey)}
}

// Get returns the current line sequence. An absent cart reads as empty.
func (s *Store) Get(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine
	found, err := s.kv.Get(ctx, s.key, &lines)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.CartLine{}, nil
	}
	return lines, nil
}

// Add merges qty of the given menu item into the cart: an existing line for
// the same item id has its quantity incremented, otherwise a new line is
// appended.
func (s *Store) Add(ctx context.Context, item models.MenuItem, qty int) error {
	lines, err := s.Get(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, models.CartLine{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Qty:   qty,
		})
	}
	return s.kv.Set(ctx, s.key, lines)
}

// SetQty overwrites the quantity of the line for itemID. A quantity of zero
// or less removes the line. An item id not present in the cart is a no-op.
func (s *Store) SetQty(ctx context.Context, itemID, qty int) error {
	lines, err := s.Get(ctx)
	if err != nil {
		return err
	}

	for i := range lines {
		if lines[i].ID != itemID {
			continue
		}
		if qty <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Qty = qty
		}
		return s.kv.Set(ctx, s.key, lines)
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
