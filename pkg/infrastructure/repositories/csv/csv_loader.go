package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// Scenario file names inside a scenario directory
const (
	IngredientsFile = "ingredients.csv"
	DishesFile      = "dishes.csv"
	RecipesFile     = "recipes.csv"
	ForecastsFile   = "forecasts.csv"
	PurchasesFile   = "purchases.csv"
	SalesFile       = "sales.csv"
)

var (
	ingredientsHeader = []string{"id", "name", "unit", "category", "min_stock", "current_stock", "available_stock"}
	dishesHeader      = []string{"id", "name", "category", "price", "active"}
	recipesHeader     = []string{"dish_id", "ingredient_id", "ingredient_name", "quantity_needed", "unit", "cost_per_unit"}
	forecastsHeader   = []string{"dish_id", "dish_name", "week_start", "predicted_demand", "confidence"}
	purchasesHeader   = []string{"id", "product_id", "product_name", "transaction_type", "quantity", "unit_cost", "total_cost", "supplier_name", "reference_number", "transaction_date"}
	salesHeader       = []string{"sale_id", "sale_date", "sale_time", "total_amount", "dish_id", "dish_name", "quantity", "unit_price", "item_total"}
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Scenario is the full planning input read from a directory
type Scenario struct {
	Ingredients  []entities.Ingredient
	Dishes       []entities.Dish
	Forecasts    []entities.DemandForecastPoint
	Transactions []entities.InventoryTransaction
	Sales        []entities.Sale
}

// LoadScenario reads every scenario file in dir. The ledger files are
// optional; the planning files are required.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	var s Scenario
	var err error

	if s.Ingredients, err = l.LoadIngredients(filepath.Join(dir, IngredientsFile)); err != nil {
		return nil, err
	}
	if s.Dishes, err = l.LoadDishes(filepath.Join(dir, DishesFile), filepath.Join(dir, RecipesFile)); err != nil {
		return nil, err
	}
	if s.Forecasts, err = l.LoadForecasts(filepath.Join(dir, ForecastsFile)); err != nil {
		return nil, err
	}

	purchases := filepath.Join(dir, PurchasesFile)
	if exists(purchases) {
		if s.Transactions, err = l.LoadPurchases(purchases); err != nil {
			return nil, err
		}
	}
	sales := filepath.Join(dir, SalesFile)
	if exists(sales) {
		if s.Sales, err = l.LoadSales(sales); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// LoadIngredients loads the inventory snapshot from a CSV file
func (l *Loader) LoadIngredients(filename string) ([]entities.Ingredient, error) {
	records, err := readRecords(filename, "ingredients", ingredientsHeader)
	if err != nil {
		return nil, err
	}

	ingredients := make([]entities.Ingredient, 0, len(records))
	for i, record := range records {
		ing, err := parseIngredient(record)
		if err != nil {
			return nil, fmt.Errorf("ingredients CSV row %d: %w", i+2, err)
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, nil
}

// LoadDishes loads dishes and attaches the recipe lines from the recipes file
func (l *Loader) LoadDishes(dishesFile, recipesFile string) ([]entities.Dish, error) {
	dishRecords, err := readRecords(dishesFile, "dishes", dishesHeader)
	if err != nil {
		return nil, err
	}

	dishes := make([]entities.Dish, 0, len(dishRecords))
	index := make(map[entities.DishID]int, len(dishRecords))
	for i, record := range dishRecords {
		dish, err := parseDish(record)
		if err != nil {
			return nil, fmt.Errorf("dishes CSV row %d: %w", i+2, err)
		}
		if _, dup := index[dish.ID]; dup {
			return nil, fmt.Errorf("dishes CSV row %d: duplicate dish id %s", i+2, dish.ID)
		}
		index[dish.ID] = len(dishes)
		dishes = append(dishes, dish)
	}

	recipeRecords, err := readRecords(recipesFile, "recipes", recipesHeader)
	if err != nil {
		return nil, err
	}
	for i, record := range recipeRecords {
		line, err := parseRecipeLine(record)
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: %w", i+2, err)
		}
		pos, ok := index[line.DishID]
		if !ok {
			return nil, fmt.Errorf("recipes CSV row %d: unknown dish %s", i+2, line.DishID)
		}
		dishes[pos].Recipe = append(dishes[pos].Recipe, line)
	}
	return dishes, nil
}

// LoadForecasts loads dish demand forecasts from a CSV file
func (l *Loader) LoadForecasts(filename string) ([]entities.DemandForecastPoint, error) {
	records, err := readRecords(filename, "forecasts", forecastsHeader)
	if err != nil {
		return nil, err
	}

	forecasts := make([]entities.DemandForecastPoint, 0, len(records))
	for i, record := range records {
		f, err := parseForecast(record)
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: %w", i+2, err)
		}
		forecasts = append(forecasts, f)
	}
	return forecasts, nil
}

// LoadPurchases loads inventory transactions from a CSV file
func (l *Loader) LoadPurchases(filename string) ([]entities.InventoryTransaction, error) {
	records, err := readRecords(filename, "purchases", purchasesHeader)
	if err != nil {
		return nil, err
	}

	transactions := make([]entities.InventoryTransaction, 0, len(records))
	for i, record := range records {
		tx, err := parseTransaction(record)
		if err != nil {
			return nil, fmt.Errorf("purchases CSV row %d: %w", i+2, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// LoadSales loads sales from a CSV file with one row per sale item.
// Rows sharing a sale_id form one ticket; the first row carries its header.
func (l *Loader) LoadSales(filename string) ([]entities.Sale, error) {
	records, err := readRecords(filename, "sales", salesHeader)
	if err != nil {
		return nil, err
	}

	var sales []entities.Sale
	index := make(map[string]int)
	for i, record := range records {
		sale, item, err := parseSaleRow(record)
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: %w", i+2, err)
		}

		pos, ok := index[sale.ID]
		if !ok {
			pos = len(sales)
			index[sale.ID] = pos
			sales = append(sales, sale)
		}
		if item != nil {
			sales[pos].Items = append(sales[pos].Items, *item)
		}
	}
	return sales, nil
}

func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}

func exists(filename string) bool {
	_, err := os.Stat(filename)
	return !errors.Is(err, os.ErrNotExist)
}

func parseIngredient(record []string) (*entities.Ingredient, error) {
	minStock, err := entities.ParseOptionalNumber("min_stock", record[4])
	if err != nil {
		return nil, err
	}
	current, err := entities.ParseOptionalNumber("current_stock", record[5])
	if err != nil {
		return nil, err
	}
	available, err := entities.ParseOptionalNumber("available_stock", record[6])
	if err != nil {
		return nil, err
	}

	ing, err := entities.NewIngredient(entities.IngredientID(strings.TrimSpace(record[0])), strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), minStock, current, available)
	if err != nil {
		return nil, err
	}
	ing.Category = strings.TrimSpace(record[3])
	return ing, nil
}

func parseDish(record []string) (entities.Dish, error) {
	id := entities.DishID(strings.TrimSpace(record[0]))
	if id == "" {
		return entities.Dish{}, fmt.Errorf("dish id cannot be empty")
	}

	price, err := entities.ParseNumber("price", record[3])
	if err != nil {
		return entities.Dish{}, err
	}
	active, err := parseBool("active", record[4])
	if err != nil {
		return entities.Dish{}, err
	}

	return entities.Dish{
		ID:       id,
		Name:     strings.TrimSpace(record[1]),
		Category: strings.TrimSpace(record[2]),
		Price:    price,
		Active:   active,
	}, nil
}

// parseRecipeLine keeps non-positive quantities; they are reported by
// recipe validation and contribute nothing to planning
func parseRecipeLine(record []string) (entities.DishRecipeLine, error) {
	qty, err := entities.ParseNumber("quantity_needed", record[3])
	if err != nil {
		return entities.DishRecipeLine{}, err
	}
	cost, err := entities.ParseNumber("cost_per_unit", record[5])
	if err != nil {
		return entities.DishRecipeLine{}, err
	}

	line := entities.DishRecipeLine{
		DishID:         entities.DishID(strings.TrimSpace(record[0])),
		IngredientID:   entities.IngredientID(strings.TrimSpace(record[1])),
		IngredientName: strings.TrimSpace(record[2]),
		QuantityNeeded: qty,
		Unit:           strings.TrimSpace(record[4]),
		CostPerUnit:    cost,
	}
	if line.IngredientID == "" {
		return entities.DishRecipeLine{}, fmt.Errorf("ingredient id cannot be empty")
	}
	return line, nil
}

func parseForecast(record []string) (entities.DemandForecastPoint, error) {
	week, err := entities.ParseDate(strings.TrimSpace(record[2]))
	if err != nil {
		return entities.DemandForecastPoint{}, &entities.FieldError{Field: "week_start", Value: record[2], Err: err}
	}
	demand, err := entities.ParseNumber("predicted_demand", record[3])
	if err != nil {
		return entities.DemandForecastPoint{}, err
	}

	return entities.DemandForecastPoint{
		DishID:          entities.DishID(strings.TrimSpace(record[0])),
		DishName:        strings.TrimSpace(record[1]),
		WeekStart:       week,
		PredictedDemand: demand,
		Confidence:      strings.TrimSpace(record[4]),
	}, nil
}

func parseTransaction(record []string) (entities.InventoryTransaction, error) {
	quantity, err := entities.ParseNumber("quantity", record[4])
	if err != nil {
		return entities.InventoryTransaction{}, err
	}
	unitCost, err := entities.ParseOptionalNumber("unit_cost", record[5])
	if err != nil {
		return entities.InventoryTransaction{}, err
	}
	totalCost, err := entities.ParseOptionalNumber("total_cost", record[6])
	if err != nil {
		return entities.InventoryTransaction{}, err
	}

	return entities.InventoryTransaction{
		ID:              strings.TrimSpace(record[0]),
		ProductID:       strings.TrimSpace(record[1]),
		ProductName:     strings.TrimSpace(record[2]),
		TransactionType: strings.TrimSpace(record[3]),
		Quantity:        quantity,
		UnitCost:        unitCost,
		TotalCost:       totalCost,
		SupplierName:    strings.TrimSpace(record[7]),
		ReferenceNumber: strings.TrimSpace(record[8]),
		TransactionDate: strings.TrimSpace(record[9]),
	}, nil
}

// parseSaleRow returns the ticket header and its item. A row without a
// dish id carries no item.
func parseSaleRow(record []string) (entities.Sale, *entities.SaleItem, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return entities.Sale{}, nil, fmt.Errorf("sale id cannot be empty")
	}
	total, err := entities.ParseOptionalNumber("total_amount", record[3])
	if err != nil {
		return entities.Sale{}, nil, err
	}

	sale := entities.Sale{
		ID:          id,
		SaleDate:    strings.TrimSpace(record[1]),
		SaleTime:    strings.TrimSpace(record[2]),
		TotalAmount: total,
	}

	dishID := strings.TrimSpace(record[4])
	if dishID == "" {
		return sale, nil, nil
	}
	quantity, err := entities.ParseNumber("quantity", record[6])
	if err != nil {
		return entities.Sale{}, nil, err
	}
	unitPrice, err := entities.ParseOptionalNumber("unit_price", record[7])
	if err != nil {
		return entities.Sale{}, nil, err
	}
	itemTotal, err := entities.ParseOptionalNumber("item_total", record[8])
	if err != nil {
		return entities.Sale{}, nil, err
	}

	return sale, &entities.SaleItem{
		DishID:      entities.DishID(dishID),
		DishName:    strings.TrimSpace(record[5]),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: itemTotal,
	}, nil
}

func parseBool(field, value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	switch value {
	case "", "true", "1", "yes", "si", "sí":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	return false, &entities.FieldError{Field: field, Value: value, Err: fmt.Errorf("expected true or false")}
}
