// Package catalog owns the menu collection. The store is pure storage
// mechanics: id assignment, merge, and persistence. Field validation is the
// calling layer's responsibility.
package catalog

import (
	"context"

	"cafeteria/internal/kv"
	"cafeteria/internal/models"
)

const baseKey = "menu"

// Store provides CRUD access to the menu collection.
type Store struct {
	kv  kv.Store
	key string
}

// New creates a catalog store over the given backend. scope isolates the
// collection key per session; pass "" for the default single-session layout.
func New(store kv.Store, scope string) *Store {
	return &Store{kv: store, key: kv.Key(scope, baseKey)}
}

// List returns all menu items in insertion order. An absent collection reads
// as empty.
func (s *Store) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	found, err := s.kv.Get(ctx, s.key, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.MenuItem{}, nil
	}
	return items, nil
}

// Add appends a new item, assigning id max(existing)+1 or 1 on an empty
// catalog. Deleting the highest-id item and re-adding can therefore reissue
// a previously used id; that reuse is part of the contract.
func (s *Store) Add(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}

	item.ID = nextID(items)
	items = append(items, item)
	if err := s.kv.Set(ctx, s.key, items); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// ItemPatch carries the fields of a partial update. Nil fields are left
// untouched on the stored item; the id is immutable.
type ItemPatch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// Update merges patch into the item with the given id. Returns false when no
// such item exists.
func (s *Store) Update(ctx context.Context, id int, patch ItemPatch) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		if patch.Name != nil {
			items[i].Name = *patch.Name
		}
		if patch.Price != nil {
			items[i].Price = *patch.Price
		}
		if patch.Description != nil {
			items[i].Description = *patch.Description
		}
		if patch.Category != nil {
			items[i].Category = *patch.Category
		}
		if patch.Image != nil {
			items[i].Image = *patch.Image
		}
		if err := s.kv.Set(ctx, s.key, items); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Remove deletes the item with the given id. Returns false, leaving the
// collection untouched, when no such item exists.
func (s *Store) Remove(ctx context.Context, id int) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := s.kv.Set(ctx, s.key, kept); err != nil {
		return false, err
	}
	return true, nil
}

func nextID(items []models.MenuItem) int {
	max := 0
	for _, item := range items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}
