package models

import (
	"fmt"
	"math"
)

// MenuItem represents a purchasable dish in the catalog.
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// ValidateMenuItem validates a menu item before it reaches the catalog.
// The catalog store itself performs no validation; callers run this first.
func ValidateMenuItem(item MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return fmt.Errorf("menu item price must be a finite number")
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item price must be greater than 0")
	}
	return nil
}

// IsInCategory checks if the item belongs to a specific category.
func (mi MenuItem) IsInCategory(category string) bool {
	return mi.Category == category
}
