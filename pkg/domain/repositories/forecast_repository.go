package repositories

import "github.com/gestrest/supplyplan/pkg/domain/entities"

// ForecastRepository provides access to demand forecasts
type ForecastRepository interface {
	GetForecasts() ([]entities.DemandForecastPoint, error)
	GetForecastsForDish(id entities.DishID) ([]entities.DemandForecastPoint, error)
	GetForecastsForWeek(week entities.Date) ([]entities.DemandForecastPoint, error)
	LoadForecasts(forecasts []entities.DemandForecastPoint) error
}
