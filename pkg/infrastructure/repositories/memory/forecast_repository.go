package memory

import (
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
)

// ForecastRepository provides in-memory forecast storage
type ForecastRepository struct {
	forecasts []entities.DemandForecastPoint
}

// NewForecastRepository creates a new in-memory forecast repository
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{
		forecasts: []entities.DemandForecastPoint{},
	}
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// LoadForecasts loads forecasts into the repository
func (r *ForecastRepository) LoadForecasts(forecasts []entities.DemandForecastPoint) error {
	r.forecasts = append(r.forecasts, forecasts...)
	return nil
}

// GetForecasts returns all forecasts in load order
func (r *ForecastRepository) GetForecasts() ([]entities.DemandForecastPoint, error) {
	forecasts := make([]entities.DemandForecastPoint, len(r.forecasts))
	copy(forecasts, r.forecasts)
	return forecasts, nil
}

// GetForecastsForDish returns the forecast horizon of one dish
func (r *ForecastRepository) GetForecastsForDish(id entities.DishID) ([]entities.DemandForecastPoint, error) {
	var forecasts []entities.DemandForecastPoint
	for _, f := range r.forecasts {
		if f.DishID == id {
			forecasts = append(forecasts, f)
		}
	}
	return forecasts, nil
}

// GetForecastsForWeek returns every dish's forecast for one week
func (r *ForecastRepository) GetForecastsForWeek(week entities.Date) ([]entities.DemandForecastPoint, error) {
	var forecasts []entities.DemandForecastPoint
	for _, f := range r.forecasts {
		if f.WeekStart.Equal(week) {
			forecasts = append(forecasts, f)
		}
	}
	return forecasts, nil
}
