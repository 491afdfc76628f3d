package backend

import (
	"fmt"
	"strings"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// DishIngredientDTO is one recipe line as the backend returns it
type DishIngredientDTO struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	QuantityNeeded float64 `json:"quantityNeeded"`
	Unit           string  `json:"unit"`
	CostPerUnit    float64 `json:"costPerUnit"`
}

// DishDTO is a dish with its recipe lines
type DishDTO struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Category    *string             `json:"category,omitempty"`
	Price       *float64            `json:"price,omitempty"`
	IsActive    *bool               `json:"isActive,omitempty"`
	Ingredients []DishIngredientDTO `json:"ingredients,omitempty"`
}

// ToDish maps the DTO to a dish. A missing isActive counts as active.
func (d DishDTO) ToDish() entities.Dish {
	dish := entities.Dish{
		ID:     entities.DishID(d.ID),
		Name:   d.Name,
		Price:  entities.ValueOr(d.Price, 0),
		Active: d.IsActive == nil || *d.IsActive,
		Recipe: make([]entities.DishRecipeLine, 0, len(d.Ingredients)),
	}
	if d.Category != nil {
		dish.Category = *d.Category
	}
	for _, ing := range d.Ingredients {
		dish.Recipe = append(dish.Recipe, entities.DishRecipeLine{
			DishID:         dish.ID,
			IngredientID:   entities.IngredientID(ing.ProductID),
			IngredientName: ing.ProductName,
			QuantityNeeded: ing.QuantityNeeded,
			Unit:           ing.Unit,
			CostPerUnit:    ing.CostPerUnit,
		})
	}
	return dish
}

// ProductDTO is a catalog product; it becomes an ingredient
type ProductDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	UnitMeasure  string   `json:"unitMeasure"`
	MinStock     *float64 `json:"minStock,omitempty"`
	MaxStock     *float64 `json:"maxStock,omitempty"`
	UnitCost     *float64 `json:"unitCost,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
	CategoryName *string  `json:"categoryName,omitempty"`
}

// InventoryDTO is the stock record of one product
type InventoryDTO struct {
	ProductID      string   `json:"productId"`
	ProductName    string   `json:"productName"`
	CurrentStock   *float64 `json:"currentStock,omitempty"`
	AvailableStock *float64 `json:"availableStock,omitempty"`
	ReservedStock  *float64 `json:"reservedStock,omitempty"`
	LastUpdated    string   `json:"lastUpdated,omitempty"`
}

// ToIngredient joins a product with its inventory record. A nil inventory
// leaves the stock fields unknown and marks the ingredient InventoryMissing.
func (p ProductDTO) ToIngredient(inv *InventoryDTO) entities.Ingredient {
	ing := entities.Ingredient{
		ID:       entities.IngredientID(p.ID),
		Name:     p.Name,
		Unit:     p.UnitMeasure,
		MinStock: p.MinStock,
		Active:   p.IsActive == nil || *p.IsActive,
	}
	if p.CategoryName != nil {
		ing.Category = *p.CategoryName
	}
	if inv == nil {
		ing.InventoryMissing = true
		return ing
	}
	ing.CurrentStock = inv.CurrentStock
	ing.AvailableStock = inv.AvailableStock
	return ing
}

// PredictionDTO is one weekly demand prediction
type PredictionDTO struct {
	DishID          string  `json:"dishId"`
	DishName        string  `json:"dishName"`
	WeekStart       string  `json:"weekStart"`
	PredictedDemand float64 `json:"predictedDemand"`
	Confidence      string  `json:"confidence"`
}

// ToForecast maps the prediction; the week start may carry a time part
func (p PredictionDTO) ToForecast() (entities.DemandForecastPoint, error) {
	week := strings.TrimSpace(p.WeekStart)
	if len(week) > 10 {
		week = week[:10]
	}

	var start entities.Date
	if week != "" {
		parsed, err := entities.ParseDate(week)
		if err != nil {
			return entities.DemandForecastPoint{}, &entities.FieldError{Field: "weekStart", Value: p.WeekStart, Err: err}
		}
		start = parsed
	}

	return entities.DemandForecastPoint{
		DishID:          entities.DishID(p.DishID),
		DishName:        p.DishName,
		WeekStart:       start,
		PredictedDemand: p.PredictedDemand,
		Confidence:      p.Confidence,
	}, nil
}

// PredictRequest asks for a dish forecast
type PredictRequest struct {
	DishID     string `json:"dishId"`
	WeeksAhead int    `json:"weeksAhead"`
	SaveToDB   bool   `json:"saveToDb"`
}

// PredictResponse carries the predictions of one dish
type PredictResponse struct {
	Success          bool            `json:"success"`
	Predictions      []PredictionDTO `json:"predictions"`
	TotalPredictions int             `json:"totalPredictions"`
	ModelID          string          `json:"modelId,omitempty"`
	Message          string          `json:"message,omitempty"`
}

// WeeklySupplyItemDTO is a supply line computed by the forecast service
type WeeklySupplyItemDTO struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	UnitMeasure    string  `json:"unitMeasure"`
	TotalRequired  float64 `json:"totalRequired"`
	CurrentStock   float64 `json:"currentStock"`
	AvailableStock float64 `json:"availableStock"`
	QuantityToBuy  float64 `json:"quantityToBuy"`
}

// WeeklySupplyResponse is the forecast service's global weekly plan
type WeeklySupplyResponse struct {
	WeekStart string                `json:"weekStart"`
	Dishes    []PredictionDTO       `json:"dishes"`
	Supplies  []WeeklySupplyItemDTO `json:"supplies"`
}

// ModelInfoDTO describes a trained forecasting model and its error metrics
type ModelInfoDTO struct {
	ModelID   string   `json:"modelId,omitempty"`
	ModelName string   `json:"modelName,omitempty"`
	ModelType string   `json:"modelType,omitempty"`
	Version   string   `json:"version,omitempty"`
	MAE       *float64 `json:"mae,omitempty"`
	RMSE      *float64 `json:"rmse,omitempty"`
	R2        *float64 `json:"r2,omitempty"`
	TrainedAt string   `json:"trainedAt,omitempty"`
}

// Describe renders the model name, version and whichever metrics are set
func (m ModelInfoDTO) Describe() string {
	name := m.ModelName
	if name == "" {
		name = m.ModelID
	}
	if name == "" {
		name = "unknown model"
	}
	if m.Version != "" {
		name += " v" + m.Version
	}

	var metrics []string
	for _, metric := range []struct {
		label string
		value *float64
	}{{"MAE", m.MAE}, {"RMSE", m.RMSE}, {"R2", m.R2}} {
		if metric.value != nil {
			metrics = append(metrics, fmt.Sprintf("%s %.2f", metric.label, *metric.value))
		}
	}
	if len(metrics) == 0 {
		return name
	}
	return name + " (" + strings.Join(metrics, ", ") + ")"
}

func toForecasts(dtos []PredictionDTO) ([]entities.DemandForecastPoint, error) {
	forecasts := make([]entities.DemandForecastPoint, 0, len(dtos))
	for i, dto := range dtos {
		f, err := dto.ToForecast()
		if err != nil {
			return nil, fmt.Errorf("prediction %d: %w", i, err)
		}
		forecasts = append(forecasts, f)
	}
	return forecasts, nil
}
