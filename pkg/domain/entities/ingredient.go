package entities

import "fmt"

// Ingredient is an inventory snapshot of one ingredient. Stock fields are
// nullable because the backend may not track them or the fetch may fail;
// InventoryMissing marks the latter.
type Ingredient struct {
	ID               IngredientID `json:"id"`
	Name             string       `json:"name"`
	Unit             string       `json:"unit"`
	Category         string       `json:"category,omitempty"`
	MinStock         *float64     `json:"minStock,omitempty"`
	CurrentStock     *float64     `json:"currentStock,omitempty"`
	AvailableStock   *float64     `json:"availableStock,omitempty"`
	Active           bool         `json:"active"`
	InventoryMissing bool         `json:"inventoryMissing,omitempty"`
}

// NewIngredient creates a validated Ingredient
func NewIngredient(id IngredientID, name, unit string, minStock, currentStock, availableStock *float64) (*Ingredient, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("ingredient name cannot be empty")
	}

	return &Ingredient{
		ID:             id,
		Name:           name,
		Unit:           unit,
		MinStock:       minStock,
		CurrentStock:   currentStock,
		AvailableStock: availableStock,
		Active:         true,
	}, nil
}

// Min returns the configured minimum stock, 0 when absent
func (i Ingredient) Min() float64 {
	return ValueOr(i.MinStock, 0)
}

// Current returns the current stock, 0 when absent
func (i Ingredient) Current() float64 {
	return ValueOr(i.CurrentStock, 0)
}

// Available returns the available stock, falling back to current stock
func (i Ingredient) Available() float64 {
	return ValueOr(i.AvailableStock, i.Current())
}

// IngredientsByID indexes a snapshot by id. Later duplicates win.
func IngredientsByID(ingredients []Ingredient) map[IngredientID]Ingredient {
	byID := make(map[IngredientID]Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	return byID
}
