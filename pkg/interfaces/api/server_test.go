package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gestrest/supplyplan/pkg/application/dto"
	"github.com/gestrest/supplyplan/pkg/application/services/ledger"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
)

const snapshotJSON = `
	"dishes": [
		{"id": "D1", "name": "Lomo saltado", "active": true, "recipe": [
			{"dishId": "D1", "ingredientId": "I1", "ingredientName": "Papa", "quantityNeeded": 2, "unit": "kg"},
			{"dishId": "D1", "ingredientId": "I2", "ingredientName": "Sal", "quantityNeeded": 0.5, "unit": "kg"}
		]}
	],
	"ingredients": [
		{"id": "I1", "name": "Papa", "unit": "kg", "category": "verduras", "minStock": 10, "currentStock": 25, "availableStock": 20},
		{"id": "I2", "name": "Sal", "unit": "kg", "category": "abarrotes", "minStock": 5, "currentStock": 0}
	],
	"forecasts": [
		{"dishId": "D1", "weekStart": "2025-01-27", "predictedDemand": 10, "confidence": "high"},
		{"dishId": "D1", "weekStart": "2025-02-03", "predictedDemand": 4, "confidence": "low"}
	],
	"transactions": [
		{"id": "T1", "productId": "I1", "transactionType": "inbound", "quantity": 50, "unitCost": 1.5, "supplierName": "Mercado Central", "transactionDate": "2025-01-20"},
		{"id": "T2", "productId": "I2", "transactionType": "outbound", "quantity": 1, "transactionDate": "2025-01-21"}
	],
	"sales": [
		{"id": "S1", "saleDate": "2025-01-22", "saleTime": "13:00", "totalAmount": 65}
	]`

func newTestServer(t *testing.T) (*Server, *events.MemoryPublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	publisher := events.NewMemoryPublisher(nil)
	return NewServer(publisher, nil, 2), publisher
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" || body["version"] != Version {
		t.Errorf("Unexpected health body: %v", body)
	}
}

func TestPlanWeekly(t *testing.T) {
	s, publisher := newTestServer(t)
	rec := post(t, s, "/api/v1/plans/weekly", `{"week": "2025-01-27",`+snapshotJSON+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result dto.SupplyPlanResult
	decode(t, rec, &result)
	if result.ID == "" {
		t.Error("Expected plan id")
	}
	if result.Plan.Summary.TotalDemand != 10 {
		t.Errorf("Expected total demand 10, got %g", result.Plan.Summary.TotalDemand)
	}
	if result.Plan.Summary.IngredientsNeedingPurchase != 1 {
		t.Errorf("Expected 1 ingredient to buy, got %d", result.Plan.Summary.IngredientsNeedingPurchase)
	}

	lines := result.Plan.Lines
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].IngredientID != "I1" || lines[0].QuantityToBuy != 0 {
		t.Errorf("Unexpected papa line: %+v", lines[0])
	}
	if lines[1].IngredientID != "I2" || lines[1].QuantityToBuy != 5 {
		t.Errorf("Unexpected sal line: %+v", lines[1])
	}

	if got := len(publisher.ReadEvents("plan-"+result.ID, 0)); got != 1 {
		t.Errorf("Expected 1 published event, got %d", got)
	}
	if got := testutil.ToFloat64(s.Metrics().plansBuilt.WithLabelValues("weekly")); got != 1 {
		t.Errorf("Expected weekly plan counter 1, got %g", got)
	}
}

func TestPlanDish(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name       string
		dishID     string
		wantStatus int
	}{
		{"known dish", "D1", http.StatusOK},
		{"unknown dish", "D9", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/v1/plans/dish", `{"dishId": "`+tt.dishID+`",`+snapshotJSON+`}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var result dto.SupplyPlanResult
			decode(t, rec, &result)
			if result.Plan.Summary.TotalDemand != 14 {
				t.Errorf("Expected total demand 14, got %g", result.Plan.Summary.TotalDemand)
			}
			if result.Plan.Lines[0].TotalRequired != 28 || result.Plan.Lines[0].QuantityToBuy != 8 {
				t.Errorf("Unexpected papa line: %+v", result.Plan.Lines[0])
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/api/v1/plans/weekly", `{"week":`},
		{"missing dish id", "/api/v1/plans/dish", `{` + snapshotJSON + `}`},
		{"bad week", "/api/v1/plans/weekly", `{"week": "27/01/2025"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "details") {
				t.Errorf("Expected error details, got %s", rec.Body.String())
			}
		})
	}
}

func TestStockStatus(t *testing.T) {
	s, _ := newTestServer(t)
	rec := post(t, s, "/api/v1/stock/status", `{"onlyCritical": true,`+snapshotJSON+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report dto.StockReport
	decode(t, rec, &report)
	if report.Summary.Total != 2 || report.Summary.Critical != 1 {
		t.Errorf("Unexpected summary: %+v", report.Summary)
	}
	if len(report.Items) != 1 || report.Items[0].ID != "I2" {
		t.Errorf("Expected only I2, got %+v", report.Items)
	}
	if report.Items[0].Status != entities.StockNoStock {
		t.Errorf("Expected no stock, got %s", report.Items[0].Status)
	}
}

func TestLedger(t *testing.T) {
	s, _ := newTestServer(t)

	rec := post(t, s, "/api/v1/ledger/purchases", `{"query": "mercado",`+snapshotJSON+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var purchases ledger.Page[entities.InventoryTransaction]
	decode(t, rec, &purchases)
	if purchases.TotalItems != 1 || purchases.Summary.Sum.String() != "75" {
		t.Errorf("Unexpected purchases page: %+v", purchases)
	}

	rec = post(t, s, "/api/v1/ledger/sales", `{`+snapshotJSON+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var sales ledger.Page[entities.Sale]
	decode(t, rec, &sales)
	if sales.TotalItems != 1 || sales.PageSize != ledger.DefaultPageSize {
		t.Errorf("Unexpected sales page: %+v", sales)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	post(t, s, "/api/v1/plans/weekly", `{`+snapshotJSON+`}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	for _, name := range []string{"supplyplan_plans_built_total", "supplyplan_http_request_duration_seconds"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("Expected metric %s in output", name)
		}
	}
}
