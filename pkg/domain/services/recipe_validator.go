package services

import (
	"fmt"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// RecipeValidationResult contains the results of checking recipes against the ingredient catalog
type RecipeValidationResult struct {
	UnknownIngredients []entities.IngredientID
	InvalidLines       []entities.DishRecipeLine
	DuplicateLines     []entities.DishRecipeLine
	DishesWithoutLines []entities.DishID
	Warnings           []string
}

// IsClean reports whether nothing was flagged
func (r *RecipeValidationResult) IsClean() bool {
	return len(r.Warnings) == 0
}

// ValidateRecipes checks recipe lines against the ingredient catalog. The
// planner tolerates everything reported here; the result is advisory.
func ValidateRecipes(dishes []entities.Dish, ingredients []entities.Ingredient) *RecipeValidationResult {
	result := &RecipeValidationResult{
		UnknownIngredients: make([]entities.IngredientID, 0),
		InvalidLines:       make([]entities.DishRecipeLine, 0),
		DuplicateLines:     make([]entities.DishRecipeLine, 0),
		DishesWithoutLines: make([]entities.DishID, 0),
		Warnings:           make([]string, 0),
	}

	known := make(map[entities.IngredientID]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.ID] = true
	}

	reportedUnknown := make(map[entities.IngredientID]bool)
	for _, dish := range dishes {
		if len(dish.Recipe) == 0 {
			if dish.Active {
				result.DishesWithoutLines = append(result.DishesWithoutLines, dish.ID)
				result.Warnings = append(result.Warnings, fmt.Sprintf("active dish %s has no recipe lines", dish.ID))
			}
			continue
		}

		seen := make(map[entities.IngredientID]bool, len(dish.Recipe))
		for _, line := range dish.Recipe {
			if seen[line.IngredientID] {
				result.DuplicateLines = append(result.DuplicateLines, line)
				result.Warnings = append(result.Warnings, fmt.Sprintf("dish %s lists ingredient %s more than once", dish.ID, line.IngredientID))
			}
			seen[line.IngredientID] = true

			if line.QuantityNeeded <= 0 {
				result.InvalidLines = append(result.InvalidLines, line)
				result.Warnings = append(result.Warnings, fmt.Sprintf("dish %s ingredient %s has non-positive quantity %g", dish.ID, line.IngredientID, line.QuantityNeeded))
			} else if line.CostPerUnit < 0 {
				result.InvalidLines = append(result.InvalidLines, line)
				result.Warnings = append(result.Warnings, fmt.Sprintf("dish %s ingredient %s has negative cost %g", dish.ID, line.IngredientID, line.CostPerUnit))
			}

			if !known[line.IngredientID] && !reportedUnknown[line.IngredientID] {
				reportedUnknown[line.IngredientID] = true
				result.UnknownIngredients = append(result.UnknownIngredients, line.IngredientID)
				result.Warnings = append(result.Warnings, fmt.Sprintf("ingredient %s used by dish %s is not in the catalog", line.IngredientID, dish.ID))
			}
		}
	}

	return result
}
