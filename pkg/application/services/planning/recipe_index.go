package planning

import "github.com/gestrest/supplyplan/pkg/domain/entities"

// RecipeIndex is an immutable lookup over dish recipes in both directions
type RecipeIndex struct {
	dishes        []entities.Dish
	linesByDish   map[entities.DishID][]entities.DishRecipeLine
	dishesByInput map[entities.IngredientID][]entities.DishID
	lineByInput   map[entities.IngredientID]entities.DishRecipeLine
}

// BuildRecipeIndex indexes the recipes of the given dishes. If a dish id
// repeats, the last occurrence wins.
func BuildRecipeIndex(dishes []entities.Dish) *RecipeIndex {
	idx := &RecipeIndex{
		dishes:        make([]entities.Dish, 0, len(dishes)),
		linesByDish:   make(map[entities.DishID][]entities.DishRecipeLine, len(dishes)),
		dishesByInput: make(map[entities.IngredientID][]entities.DishID),
		lineByInput:   make(map[entities.IngredientID]entities.DishRecipeLine),
	}

	position := make(map[entities.DishID]int, len(dishes))
	for _, dish := range dishes {
		lines := make([]entities.DishRecipeLine, len(dish.Recipe))
		copy(lines, dish.Recipe)
		dish.Recipe = lines

		if i, seen := position[dish.ID]; seen {
			idx.dishes[i] = dish
		} else {
			position[dish.ID] = len(idx.dishes)
			idx.dishes = append(idx.dishes, dish)
		}
		idx.linesByDish[dish.ID] = lines
	}

	for _, dish := range idx.dishes {
		seen := make(map[entities.IngredientID]bool, len(dish.Recipe))
		for _, line := range dish.Recipe {
			if _, ok := idx.lineByInput[line.IngredientID]; !ok {
				idx.lineByInput[line.IngredientID] = line
			}
			if seen[line.IngredientID] {
				continue
			}
			seen[line.IngredientID] = true
			idx.dishesByInput[line.IngredientID] = append(idx.dishesByInput[line.IngredientID], dish.ID)
		}
	}

	return idx
}

// LinesForDish returns the recipe lines of a dish; unknown dishes have none
func (idx *RecipeIndex) LinesForDish(id entities.DishID) []entities.DishRecipeLine {
	lines := idx.linesByDish[id]
	out := make([]entities.DishRecipeLine, len(lines))
	copy(out, lines)
	return out
}

// DishesForIngredient returns the dishes that consume an ingredient, in index order
func (idx *RecipeIndex) DishesForIngredient(id entities.IngredientID) []entities.DishID {
	ids := idx.dishesByInput[id]
	out := make([]entities.DishID, len(ids))
	copy(out, ids)
	return out
}

// HasDish reports whether the dish is indexed
func (idx *RecipeIndex) HasDish(id entities.DishID) bool {
	_, ok := idx.linesByDish[id]
	return ok
}

// Dishes returns the indexed dishes in input order
func (idx *RecipeIndex) Dishes() []entities.Dish {
	out := make([]entities.Dish, len(idx.dishes))
	copy(out, idx.dishes)
	return out
}

// describe returns the first recipe line naming the ingredient
func (idx *RecipeIndex) describe(id entities.IngredientID) (entities.DishRecipeLine, bool) {
	line, ok := idx.lineByInput[id]
	return line, ok
}
