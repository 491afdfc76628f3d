package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gestrest/supplyplan/pkg/domain/services"
	"github.com/gestrest/supplyplan/pkg/interfaces/cli/output"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// StockConfig holds configuration for the stock command
type StockConfig struct {
	Source   SourceConfig
	Query    string
	Category string
	Critical bool
	Format   string
	Verbose  bool
}

// StockCommand prints the ingredient stock status table
type StockCommand struct {
	config StockConfig
	log    *logger.Logger
	out    io.Writer
}

// NewStockCommand creates a new stock command
func NewStockCommand(config StockConfig, log *logger.Logger) *StockCommand {
	if log == nil {
		log = logger.Discard()
	}
	return &StockCommand{config: config, log: log, out: os.Stdout}
}

// SetOutput redirects rendered output, stdout by default
func (c *StockCommand) SetOutput(w io.Writer) {
	c.out = w
}

// Execute loads the snapshot and renders the stock table
func (c *StockCommand) Execute(ctx context.Context) error {
	if err := output.ValidateFormat(c.config.Format); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	orchestrator, err := openOrchestrator(ctx, c.config.Source, nil, c.log, c.out, c.config.Verbose)
	if err != nil {
		return err
	}

	report, err := orchestrator.StockReport(services.IngredientFilter{
		Query:        c.config.Query,
		Category:     c.config.Category,
		OnlyCritical: c.config.Critical,
	})
	if err != nil {
		return fmt.Errorf("error building stock report: %w", err)
	}
	return output.WriteStock(c.out, report, c.config.Format)
}
