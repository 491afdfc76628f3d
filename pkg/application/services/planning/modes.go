package planning

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// Mode says how the forecast input of a plan was assembled
type Mode string

const (
	// ModeSingleDish plans one dish over a horizon of weeks
	ModeSingleDish Mode = "byDish"
	// ModeWeekly plans every active dish for one target week
	ModeWeekly Mode = "weekly"
)

// Plan is the complete output of one planning run
type Plan struct {
	Mode       Mode                           `json:"mode"`
	DishID     entities.DishID                `json:"dishId,omitempty"`
	RecipeCost float64                        `json:"recipeCost,omitempty"`
	WeekStart  entities.Date                  `json:"weekStart"`
	Forecasts  []entities.DemandForecastPoint `json:"dishes"`
	Lines      []entities.SupplyPlanLine      `json:"supplies"`
	Summary    PlanSummary                    `json:"summary"`
}

// SingleDishPlan plans one dish over its forecast horizon. Only the
// ingredients of the dish's recipe are considered from the inventory, so
// each line total is the summed demand times the quantity per dish.
func SingleDishPlan(dish entities.Dish, horizon []entities.DemandForecastPoint, inventory map[entities.IngredientID]entities.Ingredient) Plan {
	index := BuildRecipeIndex([]entities.Dish{dish})
	forecasts := ForecastsForDish(horizon, dish.ID)

	relevant := make(map[entities.IngredientID]entities.Ingredient, len(dish.Recipe))
	for _, line := range dish.Recipe {
		if ing, ok := inventory[line.IngredientID]; ok {
			relevant[line.IngredientID] = ing
		}
	}

	requirements := Aggregate(forecasts, index)
	for _, line := range dish.Recipe {
		if _, ok := requirements[line.IngredientID]; !ok {
			requirements[line.IngredientID] = 0
		}
	}
	lines := buildPlan(requirements, relevant, index)

	week, _ := EarliestWeek(forecasts)
	return Plan{
		Mode:       ModeSingleDish,
		DishID:     dish.ID,
		RecipeCost: dish.RecipeCost(),
		WeekStart:  week,
		Forecasts:  forecasts,
		Lines:      lines,
		Summary:    Summarize(forecasts, lines),
	}
}

// WeeklyPlan plans all active dishes for one week. A zero week selects the
// earliest week present in the forecasts. Forecasts of dishes known to be
// inactive are dropped; forecasts of unknown dishes count toward total
// demand but need no ingredients.
func WeeklyPlan(dishes []entities.Dish, forecasts []entities.DemandForecastPoint, week entities.Date, inventory map[entities.IngredientID]entities.Ingredient) Plan {
	inactive := make(map[entities.DishID]bool)
	active := make([]entities.Dish, 0, len(dishes))
	for _, dish := range dishes {
		if dish.Active {
			active = append(active, dish)
		} else {
			inactive[dish.ID] = true
		}
	}
	index := BuildRecipeIndex(active)

	if week.IsZero() {
		week, _ = EarliestWeek(forecasts)
	}

	var slice []entities.DemandForecastPoint
	for _, f := range ForecastsForWeek(forecasts, week) {
		if !inactive[f.DishID] || index.HasDish(f.DishID) {
			slice = append(slice, f)
		}
	}

	lines := buildPlan(Aggregate(slice, index), inventory, index)
	return Plan{
		Mode:      ModeWeekly,
		WeekStart: week,
		Forecasts: slice,
		Lines:     lines,
		Summary:   Summarize(slice, lines),
	}
}

// PlanDishes computes one single-dish plan per dish, running up to workers
// plans at a time. Plans come back in the order of dishes.
func PlanDishes(ctx context.Context, dishes []entities.Dish, horizon []entities.DemandForecastPoint, inventory map[entities.IngredientID]entities.Ingredient, workers int) ([]Plan, error) {
	if workers < 1 {
		workers = 1
	}

	plans := make([]Plan, len(dishes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, dish := range dishes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("planning dish %s: %w", dish.ID, err)
			}
			plans[i] = SingleDishPlan(dish, horizon, inventory)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
