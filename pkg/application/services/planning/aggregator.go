package planning

import (
	"sort"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// Requirements maps each ingredient to the total quantity the forecasts need
type Requirements map[entities.IngredientID]float64

// Aggregate explodes dish forecasts through their recipes into per-ingredient
// totals. Forecasts for dishes without a recipe contribute nothing. The
// result does not depend on the order of forecasts: each ingredient's terms
// are summed in sorted order so permutations give bit-identical totals.
func Aggregate(forecasts []entities.DemandForecastPoint, index *RecipeIndex) Requirements {
	terms := make(map[entities.IngredientID][]float64)
	for _, f := range forecasts {
		for _, line := range index.linesByDish[f.DishID] {
			terms[line.IngredientID] = append(terms[line.IngredientID], f.PredictedDemand*line.Contribution())
		}
	}

	requirements := make(Requirements, len(terms))
	for id, values := range terms {
		requirements[id] = canonicalSum(values)
	}
	return requirements
}

// TotalDemand sums predicted demand at dish level
func TotalDemand(forecasts []entities.DemandForecastPoint) float64 {
	values := make([]float64, len(forecasts))
	for i, f := range forecasts {
		values[i] = f.PredictedDemand
	}
	return canonicalSum(values)
}

// ForecastsForWeek keeps the forecasts of a single target week
func ForecastsForWeek(forecasts []entities.DemandForecastPoint, week entities.Date) []entities.DemandForecastPoint {
	var out []entities.DemandForecastPoint
	for _, f := range forecasts {
		if f.WeekStart.Equal(week) {
			out = append(out, f)
		}
	}
	return out
}

// ForecastsForDish keeps the forecast horizon of a single dish
func ForecastsForDish(forecasts []entities.DemandForecastPoint, dish entities.DishID) []entities.DemandForecastPoint {
	var out []entities.DemandForecastPoint
	for _, f := range forecasts {
		if f.DishID == dish {
			out = append(out, f)
		}
	}
	return out
}

// EarliestWeek returns the first week present in the forecasts
func EarliestWeek(forecasts []entities.DemandForecastPoint) (entities.Date, bool) {
	var earliest entities.Date
	found := false
	for _, f := range forecasts {
		if f.WeekStart.IsZero() {
			continue
		}
		if !found || f.WeekStart.Before(earliest) {
			earliest = f.WeekStart
			found = true
		}
	}
	return earliest, found
}

// canonicalSum adds values in ascending order. It sorts its argument.
func canonicalSum(values []float64) float64 {
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}
