package entities

import "fmt"

// DishRecipeLine is one ingredient's required quantity for one dish
type DishRecipeLine struct {
	DishID         DishID       `json:"dishId"`
	IngredientID   IngredientID `json:"ingredientId"`
	IngredientName string       `json:"ingredientName,omitempty"`
	QuantityNeeded float64      `json:"quantityNeeded"`
	Unit           string       `json:"unit"`
	CostPerUnit    float64      `json:"costPerUnit"`
}

// NewDishRecipeLine creates a validated DishRecipeLine. These are the rules
// the entry forms enforce; planning code tolerates lines that break them.
func NewDishRecipeLine(dishID DishID, ingredientID IngredientID, quantityNeeded float64, unit string, costPerUnit float64) (*DishRecipeLine, error) {
	if string(dishID) == "" {
		return nil, fmt.Errorf("dish id cannot be empty")
	}
	if string(ingredientID) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if quantityNeeded <= 0 {
		return nil, fmt.Errorf("quantity needed must be positive, got %g", quantityNeeded)
	}
	if costPerUnit < 0 {
		return nil, fmt.Errorf("cost per unit cannot be negative, got %g", costPerUnit)
	}

	return &DishRecipeLine{
		DishID:         dishID,
		IngredientID:   ingredientID,
		QuantityNeeded: quantityNeeded,
		Unit:           unit,
		CostPerUnit:    costPerUnit,
	}, nil
}

// Contribution is the per-dish quantity used for planning; non-positive
// quantities contribute nothing.
func (l DishRecipeLine) Contribution() float64 {
	if l.QuantityNeeded <= 0 {
		return 0
	}
	return l.QuantityNeeded
}

// Dish is a menu item with its bill of materials
type Dish struct {
	ID       DishID           `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category,omitempty"`
	Price    float64          `json:"price"`
	Active   bool             `json:"active"`
	Recipe   []DishRecipeLine `json:"recipe"`
}

// RecipeCost is the ingredient cost of preparing one portion
func (d Dish) RecipeCost() float64 {
	var cost float64
	for _, line := range d.Recipe {
		cost += line.Contribution() * line.CostPerUnit
	}
	return cost
}
