package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gestrest/supplyplan/pkg/application/services/orchestration"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/backend"
	"github.com/gestrest/supplyplan/pkg/infrastructure/cache"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/infrastructure/repositories/csv"
	"github.com/gestrest/supplyplan/pkg/infrastructure/repositories/memory"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// SourceConfig says where planning data comes from: a CSV scenario
// directory or the backend API
type SourceConfig struct {
	ScenarioDir string
	BackendURL  string
	Token       string
	RedisURL    string
	CacheTTL    time.Duration
	DishID      entities.DishID
	WeeksAhead  int
	Ledger      bool
	Workers     int
}

func (s SourceConfig) validate() error {
	if s.ScenarioDir == "" && s.BackendURL == "" {
		return fmt.Errorf("must specify either -scenario directory or -backend url")
	}
	return nil
}

// openOrchestrator loads the data source into memory repositories and
// wires an orchestrator over them
func openOrchestrator(ctx context.Context, src SourceConfig, publisher events.Publisher, log *logger.Logger, out io.Writer, verbose bool) (*orchestration.PlanningOrchestrator, error) {
	if err := src.validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	dishRepo := memory.NewDishRepository(0)
	ingredientRepo := memory.NewIngredientRepository(0)
	forecastRepo := memory.NewForecastRepository()
	ledgerRepo := memory.NewLedgerRepository()

	if src.ScenarioDir != "" {
		if verbose {
			fmt.Fprintf(out, "📂 Loading scenario from %s...\n", src.ScenarioDir)
		}
		scenario, err := csv.NewLoader().LoadScenario(src.ScenarioDir)
		if err != nil {
			return nil, fmt.Errorf("error loading scenario: %w", err)
		}
		if err := loadScenario(scenario, dishRepo, ingredientRepo, forecastRepo, ledgerRepo); err != nil {
			return nil, err
		}
		if verbose {
			fmt.Fprintf(out, "✅ Data loaded successfully:\n")
			fmt.Fprintf(out, "  Ingredients: %d\n", len(scenario.Ingredients))
			fmt.Fprintf(out, "  Dishes: %d\n", len(scenario.Dishes))
			fmt.Fprintf(out, "  Forecasts: %d\n", len(scenario.Forecasts))
			fmt.Fprintf(out, "  Transactions: %d\n", len(scenario.Transactions))
			fmt.Fprintf(out, "  Sales: %d\n\n", len(scenario.Sales))
		}
	} else {
		client, closeCache, err := newBackendClient(ctx, src, log)
		if err != nil {
			return nil, err
		}
		defer closeCache()

		if verbose {
			fmt.Fprintf(out, "🌐 Fetching snapshot from %s...\n", src.BackendURL)
		}
		snap := client.FetchSnapshot(ctx, backend.SnapshotRequest{DishID: src.DishID, WeeksAhead: src.WeeksAhead, IncludeLedger: src.Ledger})
		if err := snap.Err(); err != nil {
			fmt.Fprintf(out, "Warning: partial snapshot, continuing with empty data for: %v\n", err)
		}
		if err := snap.Load(dishRepo, ingredientRepo, forecastRepo, ledgerRepo); err != nil {
			return nil, err
		}
		if verbose {
			printActiveModel(ctx, client, out)
		}
	}

	return orchestration.NewPlanningOrchestrator(dishRepo, ingredientRepo, forecastRepo, ledgerRepo, publisher, log, src.Workers), nil
}

// printActiveModel reports which forecasting model produced the demand.
// A failed lookup is only a warning.
func printActiveModel(ctx context.Context, client *backend.Client, out io.Writer) {
	info, err := client.ActiveModel(ctx)
	if err != nil {
		fmt.Fprintf(out, "⚠️  Forecast model unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(out, "🤖 Forecast model: %s\n\n", info.Describe())
}

func loadScenario(s *csv.Scenario, dishes *memory.DishRepository, ingredients *memory.IngredientRepository, forecasts *memory.ForecastRepository, ledger *memory.LedgerRepository) error {
	if err := ingredients.LoadIngredients(s.Ingredients); err != nil {
		return fmt.Errorf("failed to load ingredients into repository: %w", err)
	}
	if err := dishes.LoadDishes(s.Dishes); err != nil {
		return fmt.Errorf("failed to load dishes into repository: %w", err)
	}
	if err := forecasts.LoadForecasts(s.Forecasts); err != nil {
		return fmt.Errorf("failed to load forecasts into repository: %w", err)
	}
	if err := ledger.LoadTransactions(s.Transactions); err != nil {
		return fmt.Errorf("failed to load transactions into repository: %w", err)
	}
	if err := ledger.LoadSales(s.Sales); err != nil {
		return fmt.Errorf("failed to load sales into repository: %w", err)
	}
	return nil
}

// newBackendClient builds the API client, backed by redis when a URL is set
func newBackendClient(ctx context.Context, src SourceConfig, log *logger.Logger) (*backend.Client, func(), error) {
	opts := []backend.Option{
		backend.WithTokenSource(backend.StaticToken(src.Token)),
		backend.WithLogger(log.WithComponent("backend")),
	}

	closeCache := func() {}
	if src.RedisURL != "" {
		store, err := cache.NewRedisCache(ctx, src.RedisURL)
		if err != nil {
			log.Warn("redis cache unavailable, continuing without cache", "error", err)
		} else {
			opts = append(opts, backend.WithCache(store, src.CacheTTL))
			closeCache = func() { _ = store.Close() }
		}
	}

	client, err := backend.NewClient(src.BackendURL, opts...)
	if err != nil {
		closeCache()
		return nil, nil, err
	}
	return client, closeCache, nil
}
