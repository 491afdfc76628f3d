package api

import (
	"fmt"

	"github.com/gestrest/supplyplan/pkg/application/services/orchestration"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/infrastructure/repositories/memory"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// Snapshot is the planning data a request carries. Handlers keep no state
// between requests.
type Snapshot struct {
	Dishes       []entities.Dish                 `json:"dishes"`
	Ingredients  []entities.Ingredient           `json:"ingredients"`
	Forecasts    []entities.DemandForecastPoint  `json:"forecasts"`
	Transactions []entities.InventoryTransaction `json:"transactions"`
	Sales        []entities.Sale                 `json:"sales"`
}

// WeeklyPlanRequest is the body of POST /plans/weekly
type WeeklyPlanRequest struct {
	Snapshot
	Week entities.Date `json:"week"`
}

// DishPlanRequest is the body of POST /plans/dish
type DishPlanRequest struct {
	Snapshot
	DishID entities.DishID `json:"dishId" binding:"required"`
}

// StockRequest is the body of POST /stock/status
type StockRequest struct {
	Snapshot
	Query        string `json:"query"`
	Category     string `json:"category"`
	OnlyCritical bool   `json:"onlyCritical"`
}

// LedgerRequest is the body of the ledger endpoints
type LedgerRequest struct {
	Snapshot
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

func (s Snapshot) orchestrator(publisher events.Publisher, log *logger.Logger, workers int) (*orchestration.PlanningOrchestrator, error) {
	dishes := memory.NewDishRepository(len(s.Dishes))
	ingredients := memory.NewIngredientRepository(len(s.Ingredients))
	forecasts := memory.NewForecastRepository()
	ledger := memory.NewLedgerRepository()

	if err := ingredients.LoadIngredients(s.Ingredients); err != nil {
		return nil, fmt.Errorf("invalid ingredients: %w", err)
	}
	if err := dishes.LoadDishes(s.Dishes); err != nil {
		return nil, fmt.Errorf("invalid dishes: %w", err)
	}
	if err := forecasts.LoadForecasts(s.Forecasts); err != nil {
		return nil, fmt.Errorf("invalid forecasts: %w", err)
	}
	if err := ledger.LoadTransactions(s.Transactions); err != nil {
		return nil, fmt.Errorf("invalid transactions: %w", err)
	}
	if err := ledger.LoadSales(s.Sales); err != nil {
		return nil, fmt.Errorf("invalid sales: %w", err)
	}

	return orchestration.NewPlanningOrchestrator(dishes, ingredients, forecasts, ledger, publisher, log, workers), nil
}
