package repositories

import "github.com/gestrest/supplyplan/pkg/domain/entities"

// IngredientRepository provides access to the ingredient inventory snapshot
type IngredientRepository interface {
	GetIngredient(id entities.IngredientID) (*entities.Ingredient, error)
	GetAllIngredients() ([]entities.Ingredient, error)
	LoadIngredients(ingredients []entities.Ingredient) error
}
