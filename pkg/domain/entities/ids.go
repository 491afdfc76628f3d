package entities

// IngredientID identifies an ingredient (a product in the backend catalog)
type IngredientID string

// DishID identifies a menu dish
type DishID string
