package catalog

import (
	"context"

	"cafeteria/internal/models"
)

// starterMenu is written to an empty catalog on first use.
var starterMenu = []models.MenuItem{
	{ID: 1, Name: "Burger", Price: 50, Description: "Delicious beef burger with veggies", Category: "Fast Food", Image: "/placeholder.svg"},
	{ID: 2, Name: "Pasta", Price: 70, Description: "Creamy tomato pasta", Category: "Italian", Image: "/placeholder.svg"},
	{ID: 3, Name: "Pizza", Price: 120, Description: "Cheese and veggie pizza", Category: "Italian", Image: "/placeholder.svg"},
	{ID: 4, Name: "Sandwich", Price: 40, Description: "Grilled vegetable sandwich", Category: "Fast Food", Image: "/placeholder.svg"},
	{ID: 5, Name: "French Fries", Price: 30, Description: "Crispy golden fries", Category: "Snacks", Image: "/placeholder.svg"},
	{ID: 6, Name: "Coffee", Price: 25, Description: "Hot brewed coffee", Category: "Beverages", Image: "/placeholder.svg"},
}

// Seed populates an absent catalog with the starter menu. A catalog that
// already exists, even an empty one, is left alone.
func (s *Store) Seed(ctx context.Context) error {
	var items []models.MenuItem
	found, err := s.kv.Get(ctx, s.key, &items)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.kv.Set(ctx, s.key, starterMenu)
}
