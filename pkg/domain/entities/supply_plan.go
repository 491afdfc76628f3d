package entities

// SupplyPlanLine is the purchase recommendation for one ingredient.
// Lines are rebuilt on every planning run and never updated in place.
type SupplyPlanLine struct {
	IngredientID   IngredientID `json:"productId"`
	IngredientName string       `json:"productName"`
	Unit           string       `json:"unitMeasure"`
	TotalRequired  float64      `json:"totalRequired"`
	CurrentStock   float64      `json:"currentStock"`
	AvailableStock float64      `json:"availableStock"`
	QuantityToBuy  float64      `json:"quantityToBuy"`
}

// NeedsPurchase reports whether anything has to be bought
func (l SupplyPlanLine) NeedsPurchase() bool {
	return l.QuantityToBuy > 0
}
