package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestrest/supplyplan/pkg/application/dto"
	"github.com/gestrest/supplyplan/pkg/application/services/ledger"
	"github.com/gestrest/supplyplan/pkg/application/services/orchestration"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
	"github.com/gestrest/supplyplan/pkg/domain/services"
)

// health reports liveness
// GET /api/v1/health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "supplyplan",
		"version": Version,
	})
}

// planWeekly plans every active dish for one week
// POST /api/v1/plans/weekly
func (s *Server) planWeekly(c *gin.Context) {
	var req WeeklyPlanRequest
	orchestrator, ok := s.bind(c, &req, &req.Snapshot)
	if !ok {
		return
	}

	result, err := orchestrator.PlanWeekly(c.Request.Context(), req.Week)
	if err != nil {
		s.fail(c, "Failed to compute weekly plan", err)
		return
	}
	s.respondPlan(c, result)
}

// planDish plans one dish over its forecast horizon
// POST /api/v1/plans/dish
func (s *Server) planDish(c *gin.Context) {
	var req DishPlanRequest
	orchestrator, ok := s.bind(c, &req, &req.Snapshot)
	if !ok {
		return
	}

	result, err := orchestrator.PlanDish(c.Request.Context(), req.DishID)
	if err != nil {
		s.fail(c, "Failed to compute dish plan", err)
		return
	}
	s.respondPlan(c, result)
}

// stockStatus classifies the ingredient snapshot
// POST /api/v1/stock/status
func (s *Server) stockStatus(c *gin.Context) {
	var req StockRequest
	orchestrator, ok := s.bind(c, &req, &req.Snapshot)
	if !ok {
		return
	}

	report, err := orchestrator.StockReport(services.IngredientFilter{
		Query:        req.Query,
		Category:     req.Category,
		OnlyCritical: req.OnlyCritical,
	})
	if err != nil {
		s.fail(c, "Failed to build stock report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// purchases pages the purchase history
// POST /api/v1/ledger/purchases
func (s *Server) purchases(c *gin.Context) {
	var req LedgerRequest
	orchestrator, ok := s.bind(c, &req, &req.Snapshot)
	if !ok {
		return
	}

	page, err := orchestrator.Purchases(ledger.Request{Query: req.Query, Page: req.Page, PageSize: req.PageSize})
	if err != nil {
		s.fail(c, "Failed to query purchases", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// sales pages the sales history
// POST /api/v1/ledger/sales
func (s *Server) sales(c *gin.Context) {
	var req LedgerRequest
	orchestrator, ok := s.bind(c, &req, &req.Snapshot)
	if !ok {
		return
	}

	page, err := orchestrator.Sales(ledger.Request{Query: req.Query, Page: req.Page, PageSize: req.PageSize})
	if err != nil {
		s.fail(c, "Failed to query sales", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// bind decodes the request body and loads its snapshot
func (s *Server) bind(c *gin.Context, req any, snap *Snapshot) (*orchestration.PlanningOrchestrator, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return nil, false
	}

	orchestrator, err := snap.orchestrator(s.publisher, s.log, s.workers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid snapshot",
			"details": err.Error(),
		})
		return nil, false
	}
	return orchestrator, true
}

func (s *Server) respondPlan(c *gin.Context, result *dto.SupplyPlanResult) {
	s.metrics.observePlan(string(result.Plan.Mode), result.Plan.Summary.IngredientsNeedingPurchase)
	c.JSON(http.StatusOK, result)
}

func (s *Server) fail(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	var fieldErr *entities.FieldError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &fieldErr):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error(message, "error", err)
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
