package planning

import (
	"math"
	"sort"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/services"
)

// PlanSummary holds the headline figures of a supply plan
type PlanSummary struct {
	TotalDemand                float64 `json:"totalDemand"`
	IngredientsNeedingPurchase int     `json:"ingredientsNeedingPurchase"`
	DominantConfidence         *string `json:"dominantConfidence"`
}

// BuildPlan turns requirements and an inventory snapshot into one plan line
// per ingredient present in either input. Lines are ordered by ingredient id.
func BuildPlan(requirements Requirements, inventory map[entities.IngredientID]entities.Ingredient) []entities.SupplyPlanLine {
	return buildPlan(requirements, inventory, nil)
}

func buildPlan(requirements Requirements, inventory map[entities.IngredientID]entities.Ingredient, index *RecipeIndex) []entities.SupplyPlanLine {
	ids := make([]entities.IngredientID, 0, len(requirements)+len(inventory))
	seen := make(map[entities.IngredientID]bool, len(requirements)+len(inventory))
	for id := range requirements {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range inventory {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]entities.SupplyPlanLine, 0, len(ids))
	for _, id := range ids {
		line := entities.SupplyPlanLine{
			IngredientID:  id,
			TotalRequired: requirements[id],
		}

		if ing, ok := inventory[id]; ok {
			line.IngredientName = ing.Name
			line.Unit = ing.Unit
			line.CurrentStock = ing.Current()
			line.AvailableStock = ing.Available()
		}
		if index != nil && (line.IngredientName == "" || line.Unit == "") {
			if recipeLine, ok := index.describe(id); ok {
				if line.IngredientName == "" {
					line.IngredientName = recipeLine.IngredientName
				}
				if line.Unit == "" {
					line.Unit = recipeLine.Unit
				}
			}
		}

		line.QuantityToBuy = math.Max(0, line.TotalRequired-line.AvailableStock)
		lines = append(lines, line)
	}

	return lines
}

// Summarize computes the plan's headline figures. Total demand is counted
// at dish level from the forecasts, not from the ingredient lines.
func Summarize(forecasts []entities.DemandForecastPoint, lines []entities.SupplyPlanLine) PlanSummary {
	summary := PlanSummary{TotalDemand: TotalDemand(forecasts)}
	for _, line := range lines {
		if line.NeedsPurchase() {
			summary.IngredientsNeedingPurchase++
		}
	}
	if label, ok := services.DominantConfidence(forecasts); ok {
		summary.DominantConfidence = &label
	}
	return summary
}
