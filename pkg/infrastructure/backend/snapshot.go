package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
)

const inventoryConcurrency = 8

// SnapshotRequest says which forecasts to fetch. A set DishID fetches that
// dish and its prediction; otherwise every dish and the weekly forecasts.
type SnapshotRequest struct {
	DishID        entities.DishID
	WeeksAhead    int
	IncludeLedger bool
}

// Snapshot is the state of each collection fetched for one planning run
type Snapshot struct {
	Dishes       Result[[]entities.Dish]
	Ingredients  Result[[]entities.Ingredient]
	Forecasts    Result[[]entities.DemandForecastPoint]
	Transactions Result[[]entities.InventoryTransaction]
	Sales        Result[[]entities.Sale]
}

// FetchSnapshot fetches the collections concurrently. A failing collection
// is reported in its Result and does not stop the others.
func (c *Client) FetchSnapshot(ctx context.Context, req SnapshotRequest) *Snapshot {
	if req.WeeksAhead < 1 {
		req.WeeksAhead = 1
	}

	snap := &Snapshot{}
	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() {
		if req.DishID != "" {
			dish, err := c.GetDish(ctx, req.DishID)
			if err != nil {
				snap.Dishes = Failure[[]entities.Dish](err)
				return
			}
			snap.Dishes = Success([]entities.Dish{*dish})
			return
		}
		snap.Dishes = resultOf(c.ListDishes(ctx))
	})
	run(func() {
		snap.Ingredients = resultOf(c.fetchIngredients(ctx))
	})
	run(func() {
		if req.DishID != "" {
			snap.Forecasts = resultOf(c.Predict(ctx, req.DishID, req.WeeksAhead))
			return
		}
		snap.Forecasts = resultOf(c.WeeklyForecasts(ctx, req.WeeksAhead))
	})
	if req.IncludeLedger {
		run(func() { snap.Transactions = resultOf(c.ListTransactions(ctx)) })
		run(func() { snap.Sales = resultOf(c.ListSales(ctx)) })
	}

	wg.Wait()
	c.logSnapshot(snap)
	return snap
}

// fetchIngredients lists the products and joins each with its inventory.
// A failed inventory lookup leaves that ingredient's stock unknown.
func (c *Client) fetchIngredients(ctx context.Context) ([]entities.Ingredient, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	ingredients := make([]entities.Ingredient, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inventoryConcurrency)
	for i, product := range products {
		g.Go(func() error {
			inv, err := c.GetInventory(gctx, product.ID)
			if err != nil {
				c.log.Warn("inventory unavailable", "product_id", product.ID, "error", err)
			}
			ingredients[i] = product.ToIngredient(inv)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (c *Client) logSnapshot(snap *Snapshot) {
	for name, err := range snap.failures() {
		c.log.Warn("snapshot part unavailable", "part", name, "error", err)
	}
}

func resultOf[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

func (s *Snapshot) failures() map[string]error {
	failed := make(map[string]error)
	if s.Dishes.State == StateErr {
		failed["dishes"] = s.Dishes.Err
	}
	if s.Ingredients.State == StateErr {
		failed["ingredients"] = s.Ingredients.Err
	}
	if s.Forecasts.State == StateErr {
		failed["forecasts"] = s.Forecasts.Err
	}
	if s.Transactions.State == StateErr {
		failed["transactions"] = s.Transactions.Err
	}
	if s.Sales.State == StateErr {
		failed["sales"] = s.Sales.Err
	}
	return failed
}

// Err joins the errors of every failed part, nil when all succeeded
func (s *Snapshot) Err() error {
	var errs []error
	for _, name := range []string{"dishes", "ingredients", "forecasts", "transactions", "sales"} {
		if err, ok := s.failures()[name]; ok {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Load fills the repositories, substituting an empty collection for every
// part that failed or was not requested. A nil ledger repository is skipped.
func (s *Snapshot) Load(
	dishes repositories.DishRepository,
	ingredients repositories.IngredientRepository,
	forecasts repositories.ForecastRepository,
	ledger repositories.LedgerRepository,
) error {
	if err := dishes.LoadDishes(s.Dishes.OrEmpty()); err != nil {
		return fmt.Errorf("failed to load dishes: %w", err)
	}
	if err := ingredients.LoadIngredients(s.Ingredients.OrEmpty()); err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	if err := forecasts.LoadForecasts(s.Forecasts.OrEmpty()); err != nil {
		return fmt.Errorf("failed to load forecasts: %w", err)
	}
	if ledger == nil {
		return nil
	}
	if err := ledger.LoadTransactions(s.Transactions.OrEmpty()); err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if err := ledger.LoadSales(s.Sales.OrEmpty()); err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	return nil
}
