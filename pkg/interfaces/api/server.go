package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
	"github.com/gestrest/supplyplan/pkg/logger"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Server exposes the planning operations over HTTP
type Server struct {
	publisher events.Publisher
	log       *logger.Logger
	metrics   *Metrics
	workers   int
	router    *gin.Engine
}

// NewServer wires the routes. A nil publisher disables plan events.
func NewServer(publisher events.Publisher, log *logger.Logger, workers int) *Server {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{
		publisher: publisher,
		log:       log.WithComponent("api"),
		metrics:   NewMetrics(),
		workers:   workers,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.metrics.middleware())
	r.Use(s.requestLogger())

	r.GET("/metrics", s.metrics.handler())

	v1 := r.Group("/api/v1")
	v1.GET("/health", s.health)
	{
		plans := v1.Group("/plans")
		plans.POST("/weekly", s.planWeekly)
		plans.POST("/dish", s.planDish)
	}
	v1.POST("/stock/status", s.stockStatus)
	{
		ledger := v1.Group("/ledger")
		ledger.POST("/purchases", s.purchases)
		ledger.POST("/sales", s.sales)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.log.Info("request served",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

// Run serves on addr until the context is cancelled, then shuts down
// gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
