package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gestrest/supplyplan/pkg/application/services/ledger"
	"github.com/gestrest/supplyplan/pkg/interfaces/cli/output"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// Ledger kinds
const (
	LedgerPurchases = "purchases"
	LedgerSales     = "sales"
)

// LedgerConfig holds configuration for the ledger command
type LedgerConfig struct {
	Source   SourceConfig
	Kind     string
	Query    string
	Page     int
	PageSize int
	Format   string
	Verbose  bool
}

// LedgerCommand prints a page of the purchase or sales history
type LedgerCommand struct {
	config LedgerConfig
	log    *logger.Logger
	out    io.Writer
}

// NewLedgerCommand creates a new history command
func NewLedgerCommand(config LedgerConfig, log *logger.Logger) *LedgerCommand {
	if log == nil {
		log = logger.Discard()
	}
	return &LedgerCommand{config: config, log: log, out: os.Stdout}
}

// SetOutput redirects rendered output, stdout by default
func (c *LedgerCommand) SetOutput(w io.Writer) {
	c.out = w
}

// Execute loads the history and renders the requested page
func (c *LedgerCommand) Execute(ctx context.Context) error {
	if c.config.Kind != LedgerPurchases && c.config.Kind != LedgerSales {
		return fmt.Errorf("validation error: unknown ledger kind %q (expected %s or %s)", c.config.Kind, LedgerPurchases, LedgerSales)
	}
	if err := output.ValidateFormat(c.config.Format); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	src := c.config.Source
	src.Ledger = true
	orchestrator, err := openOrchestrator(ctx, src, nil, c.log, c.out, c.config.Verbose)
	if err != nil {
		return err
	}

	req := ledger.Request{Query: c.config.Query, Page: c.config.Page, PageSize: c.config.PageSize}
	if c.config.Kind == LedgerSales {
		page, err := orchestrator.Sales(req)
		if err != nil {
			return fmt.Errorf("error querying sales: %w", err)
		}
		return output.WriteSales(c.out, page, c.config.Format)
	}

	page, err := orchestrator.Purchases(req)
	if err != nil {
		return fmt.Errorf("error querying purchases: %w", err)
	}
	return output.WritePurchases(c.out, page, c.config.Format)
}
