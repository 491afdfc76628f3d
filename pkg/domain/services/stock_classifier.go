package services

import (
	"sort"
	"strings"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// nearMinFactor is the band above the minimum that still counts as near_min
const nearMinFactor = 1.3

// AllCategories disables category filtering in IngredientFilter
const AllCategories = "todos"

// ClassifyStock derives the stock status from current and minimum stock
func ClassifyStock(currentStock, minStock float64) entities.StockStatus {
	switch {
	case currentStock <= 0:
		return entities.StockNoStock
	case currentStock < minStock:
		return entities.StockBelowMin
	case currentStock < minStock*nearMinFactor:
		return entities.StockNearMin
	default:
		return entities.StockOK
	}
}

// ClassifyIngredient classifies an ingredient snapshot, defaulting missing stock fields to 0.
// An ingredient whose inventory could not be read is reported ok.
func ClassifyIngredient(ing entities.Ingredient) entities.StockStatus {
	if ing.InventoryMissing {
		return entities.StockOK
	}
	return ClassifyStock(ing.Current(), ing.Min())
}

// StockSummary holds the headline counts of the ingredients screen
type StockSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	NearMin  int `json:"nearMin"`
}

// SummarizeStock counts ingredients by risk level
func SummarizeStock(ingredients []entities.Ingredient) StockSummary {
	summary := StockSummary{Total: len(ingredients)}
	for _, ing := range ingredients {
		status := ClassifyIngredient(ing)
		switch {
		case status.IsCritical():
			summary.Critical++
		case status == entities.StockNearMin:
			summary.NearMin++
		}
	}
	return summary
}

// IngredientFilter selects ingredients for display
type IngredientFilter struct {
	Query        string
	Category     string
	OnlyCritical bool
}

// Matches reports whether the ingredient passes the filter
func (f IngredientFilter) Matches(ing entities.Ingredient) bool {
	if term := strings.ToLower(f.Query); term != "" {
		if !strings.Contains(strings.ToLower(ing.Name), term) &&
			!strings.Contains(strings.ToLower(ing.Category), term) {
			return false
		}
	}
	if f.Category != "" && f.Category != AllCategories && ing.Category != f.Category {
		return false
	}
	if f.OnlyCritical {
		return ClassifyIngredient(ing).IsCritical()
	}
	return true
}

// FilterIngredients returns the matching ingredients sorted by name
func FilterIngredients(ingredients []entities.Ingredient, filter IngredientFilter) []entities.Ingredient {
	filtered := make([]entities.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if filter.Matches(ing) {
			filtered = append(filtered, ing)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Name < filtered[j].Name
	})
	return filtered
}

// Categories returns the distinct non-empty categories in sorted order
func Categories(ingredients []entities.Ingredient) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, ing := range ingredients {
		if ing.Category != "" && !seen[ing.Category] {
			seen[ing.Category] = true
			categories = append(categories, ing.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
