package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gestrest/supplyplan/pkg/application/dto"
	"github.com/gestrest/supplyplan/pkg/application/services/planning"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/interfaces/cli/output"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// PlanConfig holds configuration for the plan command
type PlanConfig struct {
	Source    SourceConfig
	Mode      string
	Week      string
	AllDishes bool
	OutputDir string
	Format    string
	Verbose   bool
	Help      bool
}

// PlanCommand computes supply plans from a scenario or the backend
type PlanCommand struct {
	config    PlanConfig
	publisher events.Publisher
	log       *logger.Logger
	out       io.Writer
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config PlanConfig, publisher events.Publisher, log *logger.Logger) *PlanCommand {
	if log == nil {
		log = logger.Discard()
	}
	return &PlanCommand{config: config, publisher: publisher, log: log, out: os.Stdout}
}

// SetOutput redirects command output
func (c *PlanCommand) SetOutput(w io.Writer) {
	c.out = w
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	var week entities.Date
	if c.config.Week != "" {
		parsed, err := entities.ParseDate(c.config.Week)
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
		week = parsed
	}

	src := c.config.Source
	if planning.Mode(c.config.Mode) == planning.ModeWeekly || c.config.AllDishes {
		src.DishID = ""
	}
	orchestrator, err := openOrchestrator(ctx, src, c.publisher, c.log, c.out, c.config.Verbose)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🔄 Computing supply plan...")
	}

	var results []*dto.SupplyPlanResult
	switch {
	case c.config.AllDishes:
		results, err = orchestrator.PlanAllDishes(ctx)
	case planning.Mode(c.config.Mode) == planning.ModeSingleDish:
		var result *dto.SupplyPlanResult
		result, err = orchestrator.PlanDish(ctx, c.config.Source.DishID)
		results = []*dto.SupplyPlanResult{result}
	default:
		var result *dto.SupplyPlanResult
		result, err = orchestrator.PlanWeekly(ctx, week)
		results = []*dto.SupplyPlanResult{result}
	}
	if err != nil {
		return fmt.Errorf("error computing supply plan: %w", err)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.GeneratePlans(c.out, results, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🏁 Supply planning complete!")
	}
	return nil
}

func (c *PlanCommand) validateInputs() error {
	switch planning.Mode(c.config.Mode) {
	case planning.ModeWeekly:
	case planning.ModeSingleDish:
		if c.config.Source.DishID == "" && !c.config.AllDishes {
			return fmt.Errorf("mode %s requires -dish or -all", planning.ModeSingleDish)
		}
	default:
		return fmt.Errorf("unknown mode %q (expected %s or %s)", c.config.Mode, planning.ModeWeekly, planning.ModeSingleDish)
	}
	if err := output.ValidateFormat(c.config.Format); err != nil {
		return err
	}
	return c.config.Source.validate()
}

func (c *PlanCommand) showHelp() {
	fmt.Fprintf(c.out, `supplyplan plan - Ingredient purchase planning from dish demand forecasts

USAGE:
    supplyplan plan -scenario <directory> [options]
    supplyplan plan -backend <url> [options]

OPTIONS:
    -scenario <dir>     Scenario directory with CSV files
    -backend <url>      Backend API base url (default from SUPPLYPLAN_BACKEND_URL)
    -token <token>      Bearer token for the backend
    -mode <mode>        weekly or byDish (default: weekly)
    -week <date>        Target week start YYYY-MM-DD (default: earliest forecast week)
    -dish <id>          Dish to plan in byDish mode
    -all                Plan every active dish separately
    -weeks-ahead <n>    Forecast horizon requested from the backend (default: 4)
    -format <fmt>       Output format: text, json, csv (default: text)
    -output <dir>       Also save results to this directory
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── ingredients.csv  # id,name,unit,category,min_stock,current_stock,available_stock
    ├── dishes.csv       # id,name,category,price,active
    ├── recipes.csv      # dish_id,ingredient_id,ingredient_name,quantity_needed,unit,cost_per_unit
    ├── forecasts.csv    # dish_id,dish_name,week_start,predicted_demand,confidence
    ├── purchases.csv    # optional
    └── sales.csv        # optional

EXAMPLES:
    supplyplan plan -scenario example/lima_kitchen -week 2025-01-27 -verbose
    supplyplan plan -scenario example/lima_kitchen -mode byDish -dish D1
    supplyplan plan -backend http://localhost:8080 -mode byDish -dish D1 -weeks-ahead 6 -format json
`)
}
