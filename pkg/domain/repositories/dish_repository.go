package repositories

import "github.com/gestrest/supplyplan/pkg/domain/entities"

// DishRepository provides access to dishes and their recipes
type DishRepository interface {
	GetDish(id entities.DishID) (*entities.Dish, error)
	GetAllDishes() ([]entities.Dish, error)
	GetActiveDishes() ([]entities.Dish, error)
	LoadDishes(dishes []entities.Dish) error
}
