package orchestration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestrest/supplyplan/pkg/application/dto"
	"github.com/gestrest/supplyplan/pkg/application/services/ledger"
	"github.com/gestrest/supplyplan/pkg/application/services/planning"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
	"github.com/gestrest/supplyplan/pkg/domain/services"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// PlanningOrchestrator reads a loaded snapshot from the repositories, runs
// the pure planning functions and announces the results
type PlanningOrchestrator struct {
	dishRepo       repositories.DishRepository
	ingredientRepo repositories.IngredientRepository
	forecastRepo   repositories.ForecastRepository
	ledgerRepo     repositories.LedgerRepository
	publisher      events.Publisher
	log            *logger.Logger
	workers        int
	now            func() time.Time
}

// NewPlanningOrchestrator creates a new planning orchestrator. A nil
// publisher or logger disables that concern.
func NewPlanningOrchestrator(
	dishRepo repositories.DishRepository,
	ingredientRepo repositories.IngredientRepository,
	forecastRepo repositories.ForecastRepository,
	ledgerRepo repositories.LedgerRepository,
	publisher events.Publisher,
	log *logger.Logger,
	workers int,
) *PlanningOrchestrator {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.Discard()
	}
	if workers < 1 {
		workers = 1
	}
	return &PlanningOrchestrator{
		dishRepo:       dishRepo,
		ingredientRepo: ingredientRepo,
		forecastRepo:   forecastRepo,
		ledgerRepo:     ledgerRepo,
		publisher:      publisher,
		log:            log.WithComponent("orchestrator"),
		workers:        workers,
		now:            time.Now,
	}
}

// PlanWeekly plans every active dish for the week. A zero week selects the
// earliest forecast week.
func (po *PlanningOrchestrator) PlanWeekly(ctx context.Context, week entities.Date) (*dto.SupplyPlanResult, error) {
	start := po.now()

	dishes, err := po.dishRepo.GetAllDishes()
	if err != nil {
		return nil, fmt.Errorf("failed to get dishes: %w", err)
	}
	inventory, err := po.inventory()
	if err != nil {
		return nil, err
	}
	var forecasts []entities.DemandForecastPoint
	if week.IsZero() {
		forecasts, err = po.forecastRepo.GetForecasts()
	} else {
		forecasts, err = po.forecastRepo.GetForecastsForWeek(week)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get forecasts: %w", err)
	}

	plan := planning.WeeklyPlan(dishes, forecasts, week, inventory)
	result := po.newResult(plan, po.warnings(dishes))
	po.announce(ctx, result)
	po.log.LogDuration("weekly plan", start, "plan_id", result.ID, "week", plan.WeekStart.String(), "lines", len(plan.Lines))
	return result, nil
}

// PlanDish plans one dish over every forecast week of its horizon
func (po *PlanningOrchestrator) PlanDish(ctx context.Context, id entities.DishID) (*dto.SupplyPlanResult, error) {
	start := po.now()

	dish, err := po.dishRepo.GetDish(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	inventory, err := po.inventory()
	if err != nil {
		return nil, err
	}
	horizon, err := po.forecastRepo.GetForecastsForDish(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecasts for dish %s: %w", id, err)
	}

	plan := planning.SingleDishPlan(*dish, horizon, inventory)
	result := po.newResult(plan, po.warnings([]entities.Dish{*dish}))
	po.announce(ctx, result)
	po.log.LogDuration("dish plan", start, "plan_id", result.ID, "dish_id", string(id), "lines", len(plan.Lines))
	return result, nil
}

// PlanAllDishes computes a single-dish plan for every active dish
// concurrently
func (po *PlanningOrchestrator) PlanAllDishes(ctx context.Context) ([]*dto.SupplyPlanResult, error) {
	dishes, err := po.dishRepo.GetActiveDishes()
	if err != nil {
		return nil, fmt.Errorf("failed to get active dishes: %w", err)
	}
	inventory, err := po.inventory()
	if err != nil {
		return nil, err
	}
	forecasts, err := po.forecastRepo.GetForecasts()
	if err != nil {
		return nil, fmt.Errorf("failed to get forecasts: %w", err)
	}

	plans, err := planning.PlanDishes(ctx, dishes, forecasts, inventory, po.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to plan dishes: %w", err)
	}

	results := make([]*dto.SupplyPlanResult, 0, len(plans))
	for i, plan := range plans {
		result := po.newResult(plan, po.warnings(dishes[i:i+1]))
		po.announce(ctx, result)
		results = append(results, result)
	}
	return results, nil
}

// StockReport classifies the inventory snapshot
func (po *PlanningOrchestrator) StockReport(filter services.IngredientFilter) (dto.StockReport, error) {
	ingredients, err := po.ingredientRepo.GetAllIngredients()
	if err != nil {
		return dto.StockReport{}, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return dto.NewStockReport(ingredients, filter), nil
}

// Purchases pages the purchase history
func (po *PlanningOrchestrator) Purchases(req ledger.Request) (ledger.Page[entities.InventoryTransaction], error) {
	if po.ledgerRepo == nil {
		return ledger.QueryPurchases(nil, req), nil
	}
	transactions, err := po.ledgerRepo.GetTransactions()
	if err != nil {
		return ledger.Page[entities.InventoryTransaction]{}, fmt.Errorf("failed to get transactions: %w", err)
	}
	return ledger.QueryPurchases(transactions, req), nil
}

// Sales pages the sales history
func (po *PlanningOrchestrator) Sales(req ledger.Request) (ledger.Page[entities.Sale], error) {
	if po.ledgerRepo == nil {
		return ledger.QuerySales(nil, req), nil
	}
	sales, err := po.ledgerRepo.GetSales()
	if err != nil {
		return ledger.Page[entities.Sale]{}, fmt.Errorf("failed to get sales: %w", err)
	}
	return ledger.QuerySales(sales, req), nil
}

// ValidateRecipes checks every recipe against the ingredient catalog
func (po *PlanningOrchestrator) ValidateRecipes() (*services.RecipeValidationResult, error) {
	dishes, err := po.dishRepo.GetAllDishes()
	if err != nil {
		return nil, fmt.Errorf("failed to get dishes: %w", err)
	}
	ingredients, err := po.ingredientRepo.GetAllIngredients()
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return services.ValidateRecipes(dishes, ingredients), nil
}

func (po *PlanningOrchestrator) inventory() (map[entities.IngredientID]entities.Ingredient, error) {
	ingredients, err := po.ingredientRepo.GetAllIngredients()
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	return entities.IngredientsByID(ingredients), nil
}

// warnings reports recipe problems for the planned dishes only
func (po *PlanningOrchestrator) warnings(dishes []entities.Dish) []string {
	ingredients, err := po.ingredientRepo.GetAllIngredients()
	if err != nil || len(ingredients) == 0 {
		return nil
	}
	return services.ValidateRecipes(dishes, ingredients).Warnings
}

func (po *PlanningOrchestrator) newResult(plan planning.Plan, warnings []string) *dto.SupplyPlanResult {
	return &dto.SupplyPlanResult{
		ID:          uuid.New().String(),
		GeneratedAt: po.now(),
		Plan:        plan,
		Warnings:    warnings,
	}
}

// announce publishes the plan; a failed publish never fails planning
func (po *PlanningOrchestrator) announce(ctx context.Context, result *dto.SupplyPlanResult) {
	event := events.NewSupplyPlanBuilt(events.SupplyPlanBuilt{
		PlanID:          result.ID,
		Mode:            string(result.Plan.Mode),
		WeekStart:       result.Plan.WeekStart,
		DishID:          result.Plan.DishID,
		Lines:           result.Plan.Lines,
		NeedingPurchase: result.Plan.Summary.IngredientsNeedingPurchase,
		TotalDemand:     result.Plan.Summary.TotalDemand,
		At:              result.GeneratedAt,
	})
	if err := po.publisher.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		po.log.Warn("failed to publish plan", "plan_id", result.ID, "error", err)
	}
}
