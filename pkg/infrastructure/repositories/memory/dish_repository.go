package memory

import (
	"fmt"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
)

// DishRepository provides in-memory dish storage
type DishRepository struct {
	dishes    []entities.Dish
	dishesMap map[entities.DishID]int
}

// NewDishRepository creates a new in-memory dish repository
func NewDishRepository(expectedDishes int) *DishRepository {
	return &DishRepository{
		dishes:    make([]entities.Dish, 0, expectedDishes),
		dishesMap: make(map[entities.DishID]int, expectedDishes),
	}
}

// Verify interface compliance
var _ repositories.DishRepository = (*DishRepository)(nil)

// LoadDishes loads dishes into the repository
func (r *DishRepository) LoadDishes(dishes []entities.Dish) error {
	for _, dish := range dishes {
		r.AddDish(dish)
	}
	return nil
}

// AddDish adds a dish, replacing any earlier dish with the same id
func (r *DishRepository) AddDish(dish entities.Dish) {
	dish.Recipe = append([]entities.DishRecipeLine(nil), dish.Recipe...)
	if index, exists := r.dishesMap[dish.ID]; exists {
		r.dishes[index] = dish
		return
	}
	r.dishesMap[dish.ID] = len(r.dishes)
	r.dishes = append(r.dishes, dish)
}

// AddRecipeLine appends a recipe line to an existing dish
func (r *DishRepository) AddRecipeLine(line entities.DishRecipeLine) error {
	index, exists := r.dishesMap[line.DishID]
	if !exists {
		return fmt.Errorf("dish not found: %s: %w", line.DishID, repositories.ErrNotFound)
	}
	r.dishes[index].Recipe = append(r.dishes[index].Recipe, line)
	return nil
}

// GetDish returns a dish by id
func (r *DishRepository) GetDish(id entities.DishID) (*entities.Dish, error) {
	index, exists := r.dishesMap[id]
	if !exists {
		return nil, fmt.Errorf("dish not found: %s: %w", id, repositories.ErrNotFound)
	}
	dish := r.dishes[index]
	return &dish, nil
}

// GetAllDishes returns all dishes in load order
func (r *DishRepository) GetAllDishes() ([]entities.Dish, error) {
	dishes := make([]entities.Dish, len(r.dishes))
	copy(dishes, r.dishes)
	return dishes, nil
}

// GetActiveDishes returns the dishes currently on the menu
func (r *DishRepository) GetActiveDishes() ([]entities.Dish, error) {
	var dishes []entities.Dish
	for _, dish := range r.dishes {
		if dish.Active {
			dishes = append(dishes, dish)
		}
	}
	return dishes, nil
}
