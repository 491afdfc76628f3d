package entities

// DemandForecastPoint is one (dish, week) prediction from the ML service
type DemandForecastPoint struct {
	DishID          DishID  `json:"dishId"`
	DishName        string  `json:"dishName,omitempty"`
	WeekStart       Date    `json:"weekStart"`
	PredictedDemand float64 `json:"predictedDemand"`
	Confidence      string  `json:"confidence"`
}
