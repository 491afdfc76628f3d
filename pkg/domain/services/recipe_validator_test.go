package services

import (
	"testing"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

func TestValidateRecipes_Clean(t *testing.T) {
	dishes := []entities.Dish{
		{ID: "D1", Active: true, Recipe: []entities.DishRecipeLine{
			{DishID: "D1", IngredientID: "I1", QuantityNeeded: 2},
		}},
	}
	ingredients := []entities.Ingredient{{ID: "I1", Name: "Papa"}}

	result := ValidateRecipes(dishes, ingredients)
	if !result.IsClean() {
		t.Errorf("Expected clean validation, got warnings: %v", result.Warnings)
	}
}

func TestValidateRecipes_Problems(t *testing.T) {
	dishes := []entities.Dish{
		{ID: "D1", Active: true, Recipe: []entities.DishRecipeLine{
			{DishID: "D1", IngredientID: "I1", QuantityNeeded: 2},
			{DishID: "D1", IngredientID: "I1", QuantityNeeded: 1},
			{DishID: "D1", IngredientID: "I2", QuantityNeeded: 0},
			{DishID: "D1", IngredientID: "I3", QuantityNeeded: 1, CostPerUnit: -1},
		}},
		{ID: "D2", Active: true},
		{ID: "D3", Active: false},
		{ID: "D4", Active: true, Recipe: []entities.DishRecipeLine{
			{DishID: "D4", IngredientID: "I9", QuantityNeeded: 1},
		}},
	}
	ingredients := []entities.Ingredient{{ID: "I1"}, {ID: "I2"}, {ID: "I3"}}

	result := ValidateRecipes(dishes, ingredients)

	if len(result.DuplicateLines) != 1 {
		t.Errorf("Expected 1 duplicate line, got %d", len(result.DuplicateLines))
	}
	if len(result.InvalidLines) != 2 {
		t.Errorf("Expected 2 invalid lines, got %d", len(result.InvalidLines))
	}
	if len(result.DishesWithoutLines) != 1 || result.DishesWithoutLines[0] != "D2" {
		t.Errorf("Expected only D2 flagged without lines, got %v", result.DishesWithoutLines)
	}
	if len(result.UnknownIngredients) != 1 || result.UnknownIngredients[0] != "I9" {
		t.Errorf("Expected I9 as unknown ingredient, got %v", result.UnknownIngredients)
	}
	if result.IsClean() {
		t.Error("Expected warnings")
	}
}
