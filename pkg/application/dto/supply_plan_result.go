package dto

import (
	"time"

	"github.com/gestrest/supplyplan/pkg/application/services/planning"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/services"
)

// SupplyPlanResult wraps one planning run with its run metadata
type SupplyPlanResult struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Plan        planning.Plan `json:"plan"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// StockItem is an ingredient with its stock status
type StockItem struct {
	entities.Ingredient
	Status entities.StockStatus `json:"status"`
}

// StockReport is the filtered ingredient table with its headline counts.
// The summary covers the whole snapshot, not only the filtered items.
type StockReport struct {
	Summary    services.StockSummary `json:"summary"`
	Categories []string              `json:"categories"`
	Items      []StockItem           `json:"items"`
}

// NewStockReport classifies the filtered ingredients
func NewStockReport(all []entities.Ingredient, filter services.IngredientFilter) StockReport {
	filtered := services.FilterIngredients(all, filter)
	items := make([]StockItem, 0, len(filtered))
	for _, ing := range filtered {
		items = append(items, StockItem{Ingredient: ing, Status: services.ClassifyIngredient(ing)})
	}
	return StockReport{
		Summary:    services.SummarizeStock(all),
		Categories: services.Categories(all),
		Items:      items,
	}
}
