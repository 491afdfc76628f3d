package memory

import (
	"fmt"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
)

// IngredientRepository provides in-memory ingredient inventory storage
type IngredientRepository struct {
	ingredients    []entities.Ingredient
	ingredientsMap map[entities.IngredientID]int
}

// NewIngredientRepository creates a new in-memory ingredient repository
func NewIngredientRepository(expectedIngredients int) *IngredientRepository {
	return &IngredientRepository{
		ingredients:    make([]entities.Ingredient, 0, expectedIngredients),
		ingredientsMap: make(map[entities.IngredientID]int, expectedIngredients),
	}
}

// Verify interface compliance
var _ repositories.IngredientRepository = (*IngredientRepository)(nil)

// LoadIngredients loads ingredients into the repository
func (r *IngredientRepository) LoadIngredients(ingredients []entities.Ingredient) error {
	for _, ing := range ingredients {
		r.AddIngredient(ing)
	}
	return nil
}

// AddIngredient adds an ingredient, replacing any earlier snapshot with the same id
func (r *IngredientRepository) AddIngredient(ing entities.Ingredient) {
	if index, exists := r.ingredientsMap[ing.ID]; exists {
		r.ingredients[index] = ing
		return
	}
	r.ingredientsMap[ing.ID] = len(r.ingredients)
	r.ingredients = append(r.ingredients, ing)
}

// GetIngredient returns an ingredient by id
func (r *IngredientRepository) GetIngredient(id entities.IngredientID) (*entities.Ingredient, error) {
	index, exists := r.ingredientsMap[id]
	if !exists {
		return nil, fmt.Errorf("ingredient not found: %s: %w", id, repositories.ErrNotFound)
	}
	ing := r.ingredients[index]
	return &ing, nil
}

// GetAllIngredients returns all ingredients in load order
func (r *IngredientRepository) GetAllIngredients() ([]entities.Ingredient, error) {
	ingredients := make([]entities.Ingredient, len(r.ingredients))
	copy(ingredients, r.ingredients)
	return ingredients, nil
}
