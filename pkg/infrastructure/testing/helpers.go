package testing

import (
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/repositories/memory"
)

// Weeks of the restaurant scenario
var (
	Week1 = entities.MustParseDate("2025-01-27")
	Week2 = entities.MustParseDate("2025-02-03")
)

// Repositories bundles the memory repositories of a test scenario
type Repositories struct {
	Dishes      *memory.DishRepository
	Ingredients *memory.IngredientRepository
	Forecasts   *memory.ForecastRepository
	Ledger      *memory.LedgerRepository
}

// BuildRestaurantTestData builds a small menu of three dishes (one
// inactive), five ingredients and two weeks of forecasts
func BuildRestaurantTestData() *Repositories {
	repos := &Repositories{
		Dishes:      memory.NewDishRepository(3),
		Ingredients: memory.NewIngredientRepository(5),
		Forecasts:   memory.NewForecastRepository(),
		Ledger:      memory.NewLedgerRepository(),
	}

	ingredients := []entities.Ingredient{
		ingredient("I1", "Papa", "kg", "Verduras", 10, 25, 20),
		ingredient("I2", "Carne de res", "kg", "Carnes", 5, 4, 4),
		ingredient("I3", "Arroz", "kg", "Abarrotes", 20, 100, 100),
		ingredient("I4", "Pollo", "kg", "Carnes", 8, 10, 6),
		ingredient("I5", "Sal", "kg", "Abarrotes", 1, 0, 0),
	}
	if err := repos.Ingredients.LoadIngredients(ingredients); err != nil {
		panic(err)
	}

	dishes := []entities.Dish{
		{ID: "D1", Name: "Lomo saltado", Category: "Fondos", Price: 32.5, Active: true},
		{ID: "D2", Name: "Arroz con pollo", Category: "Fondos", Price: 24, Active: true},
		{ID: "D3", Name: "Seco de cabrito", Category: "Fondos", Price: 38, Active: false},
	}
	if err := repos.Dishes.LoadDishes(dishes); err != nil {
		panic(err)
	}

	lines := []entities.DishRecipeLine{
		recipeLine("D1", "I1", "Papa", 2, "kg", 1.5),
		recipeLine("D1", "I2", "Carne de res", 0.25, "kg", 28),
		recipeLine("D2", "I3", "Arroz", 0.5, "kg", 4),
		recipeLine("D2", "I4", "Pollo", 0.5, "kg", 12),
		recipeLine("D3", "I3", "Arroz", 0.5, "kg", 4),
	}
	for _, line := range lines {
		if err := repos.Dishes.AddRecipeLine(line); err != nil {
			panic(err)
		}
	}

	forecasts := []entities.DemandForecastPoint{
		{DishID: "D1", DishName: "Lomo saltado", WeekStart: Week1, PredictedDemand: 10, Confidence: "high"},
		{DishID: "D1", DishName: "Lomo saltado", WeekStart: Week2, PredictedDemand: 15, Confidence: "medium"},
		{DishID: "D2", DishName: "Arroz con pollo", WeekStart: Week1, PredictedDemand: 20, Confidence: "high"},
		{DishID: "D2", DishName: "Arroz con pollo", WeekStart: Week2, PredictedDemand: 18, Confidence: "low"},
		{DishID: "D3", DishName: "Seco de cabrito", WeekStart: Week1, PredictedDemand: 7, Confidence: "low"},
	}
	if err := repos.Forecasts.LoadForecasts(forecasts); err != nil {
		panic(err)
	}

	transactions := []entities.InventoryTransaction{
		{ID: "T1", ProductID: "I1", ProductName: "Papa", TransactionType: entities.TransactionInbound, Quantity: 50, UnitCost: entities.Float(1.5), SupplierName: "Mercado Central", TransactionDate: "2025-01-20"},
		{ID: "T2", ProductID: "I2", ProductName: "Carne de res", TransactionType: entities.TransactionInbound, Quantity: 10, TotalCost: entities.Float(280), SupplierName: "Frigorífico Lima", ReferenceNumber: "F-104", TransactionDate: "2025-01-22"},
		{ID: "T3", ProductID: "I1", ProductName: "Papa", TransactionType: "outbound", Quantity: 25, TransactionDate: "2025-01-23"},
	}
	sales := []entities.Sale{
		{ID: "S1", SaleDate: "2025-01-24", SaleTime: "13:05", TotalAmount: entities.Float(65), Items: []entities.SaleItem{
			{DishID: "D1", DishName: "Lomo saltado", Quantity: 2, UnitPrice: entities.Float(32.5)},
		}},
		{ID: "S2", SaleDate: "2025-01-24", SaleTime: "20:40", Items: []entities.SaleItem{
			{DishID: "D2", DishName: "Arroz con pollo", Quantity: 1, UnitPrice: entities.Float(24)},
		}},
	}
	if err := repos.Ledger.LoadTransactions(transactions); err != nil {
		panic(err)
	}
	if err := repos.Ledger.LoadSales(sales); err != nil {
		panic(err)
	}

	return repos
}

func ingredient(id entities.IngredientID, name, unit, category string, minStock, current, available float64) entities.Ingredient {
	ing, err := entities.NewIngredient(id, name, unit, entities.Float(minStock), entities.Float(current), entities.Float(available))
	if err != nil {
		panic(err)
	}
	ing.Category = category
	return *ing
}

func recipeLine(dish entities.DishID, id entities.IngredientID, name string, qty float64, unit string, cost float64) entities.DishRecipeLine {
	line, err := entities.NewDishRecipeLine(dish, id, qty, unit, cost)
	if err != nil {
		panic(err)
	}
	line.IngredientName = name
	return *line
}
