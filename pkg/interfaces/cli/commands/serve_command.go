package commands

import (
	"context"
	"fmt"

	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/interfaces/api"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Addr    string
	Workers int
}

// ServeCommand runs the HTTP planning API until the context is cancelled
type ServeCommand struct {
	config    ServeConfig
	publisher events.Publisher
	log       *logger.Logger
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig, publisher events.Publisher, log *logger.Logger) *ServeCommand {
	if log == nil {
		log = logger.Discard()
	}
	return &ServeCommand{config: config, publisher: publisher, log: log}
}

// Execute runs the HTTP API until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	if c.config.Addr == "" {
		return fmt.Errorf("validation error: listen address cannot be empty")
	}
	server := api.NewServer(c.publisher, c.log, c.config.Workers)
	return server.Run(ctx, c.config.Addr)
}
