package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gestrest/supplyplan/pkg/config"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/interfaces/cli/commands"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// serveEventRetention caps the plan events a long-running server keeps in
// memory when no kafka brokers are configured
const serveEventRetention = 256

type command interface {
	Execute(ctx context.Context) error
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logger("supplyplan"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, publisher, err := parse(os.Args[1], os.Args[2:], cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	err = cmd.Execute(ctx)
	if publisher != nil {
		if closeErr := publisher.Close(); closeErr != nil {
			log.Warn("failed to close event publisher", "error", closeErr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parse(name string, args []string, cfg *config.Config, log *logger.Logger) (command, events.Publisher, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)

	// Data source flags shared by the offline subcommands
	var src commands.SourceConfig
	var dishID string
	fs.StringVar(&src.ScenarioDir, "scenario", "", "Path to scenario directory containing CSV files")
	fs.StringVar(&src.BackendURL, "backend", cfg.BackendURL, "Backend API base url")
	fs.StringVar(&src.Token, "token", cfg.Token, "Bearer token for the backend")
	fs.StringVar(&src.RedisURL, "redis", cfg.RedisURL, "Redis url for caching backend reads (optional)")
	fs.IntVar(&src.WeeksAhead, "weeks-ahead", 4, "Forecast horizon requested from the backend")
	fs.IntVar(&src.Workers, "workers", cfg.Workers, "Concurrent planning workers")
	src.CacheTTL = cfg.CacheTTL

	format := fs.String("format", "text", "Output format: text, json, csv")
	verbose := fs.Bool("verbose", false, "Enable verbose output")

	switch name {
	case "plan":
		mode := fs.String("mode", "weekly", "Planning mode: weekly or byDish")
		week := fs.String("week", "", "Target week start YYYY-MM-DD")
		fs.StringVar(&dishID, "dish", "", "Dish id for byDish mode")
		all := fs.Bool("all", false, "Plan every active dish separately")
		outputDir := fs.String("output", "", "Output directory for results (optional)")
		help := fs.Bool("help", false, "Show help message")
		_ = fs.Parse(args)
		src.DishID = entities.DishID(dishID)

		publisher, err := newPublisher(cfg, log, *verbose, 0)
		if err != nil {
			return nil, nil, err
		}
		cmd := commands.NewPlanCommand(commands.PlanConfig{
			Source:    src,
			Mode:      *mode,
			Week:      *week,
			AllDishes: *all,
			OutputDir: *outputDir,
			Format:    *format,
			Verbose:   *verbose,
			Help:      *help,
		}, publisher, log)
		return cmd, publisher, nil

	case "stock":
		query := fs.String("query", "", "Search by name, id or category")
		category := fs.String("category", "", "Only this category")
		critical := fs.Bool("critical", false, "Only below-minimum and out-of-stock ingredients")
		_ = fs.Parse(args)
		return commands.NewStockCommand(commands.StockConfig{
			Source:   src,
			Query:    *query,
			Category: *category,
			Critical: *critical,
			Format:   *format,
			Verbose:  *verbose,
		}, log), nil, nil

	case "ledger":
		kind := fs.String("kind", commands.LedgerPurchases, "History to show: purchases or sales")
		query := fs.String("query", "", "Search term")
		page := fs.Int("page", 1, "Page number")
		pageSize := fs.Int("page-size", 0, "Rows per page (default 20)")
		_ = fs.Parse(args)
		return commands.NewLedgerCommand(commands.LedgerConfig{
			Source:   src,
			Kind:     *kind,
			Query:    *query,
			Page:     *page,
			PageSize: *pageSize,
			Format:   *format,
			Verbose:  *verbose,
		}, log), nil, nil

	case "serve":
		addr := fs.String("addr", cfg.HTTPAddr, "Listen address")
		_ = fs.Parse(args)

		publisher, err := newPublisher(cfg, log, *verbose, serveEventRetention)
		if err != nil {
			return nil, nil, err
		}
		cmd := commands.NewServeCommand(commands.ServeConfig{Addr: *addr, Workers: src.Workers}, publisher, log)
		return cmd, publisher, nil

	case "help", "-help", "--help", "-h":
		usage()
		os.Exit(0)
	}

	return nil, nil, fmt.Errorf("unknown command %q", name)
}

// newPublisher sends plan events to kafka when brokers are configured and
// keeps them in memory otherwise, at most retain of them when retain > 0
func newPublisher(cfg *config.Config, log *logger.Logger, verbose bool, retain int) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		return publisher, nil
	}

	publisher := events.NewBoundedMemoryPublisher(log.WithComponent("events"), retain)
	if verbose {
		publisher.Subscribe([]string{events.SupplyPlanBuiltEvent}, consoleHandler{})
	}
	return publisher, nil
}

// consoleHandler prints every plan event it receives
type consoleHandler struct{}

func (consoleHandler) Handle(event events.Event) error {
	fmt.Fprintf(os.Stdout, "📣 %s on %s\n", event.Type(), event.StreamID())
	return nil
}

func (consoleHandler) CanHandle(eventType string) bool {
	return eventType == events.SupplyPlanBuiltEvent
}

func usage() {
	fmt.Fprintf(os.Stderr, `supplyplan - Restaurant ingredient supply planning

USAGE:
    supplyplan <command> [options]

COMMANDS:
    plan      Compute ingredient purchases from dish demand forecasts
    stock     Show ingredient stock status
    ledger    Page through purchase or sales history
    serve     Run the HTTP planning API

Run "supplyplan plan -help" for planning options.
Settings are read from SUPPLYPLAN_* environment variables; flags override them.
`)
}
