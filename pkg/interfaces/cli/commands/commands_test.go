package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gestrest/supplyplan/pkg/application/dto"
	"github.com/gestrest/supplyplan/pkg/application/services/ledger"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/infrastructure/events"
)

var scenarioFiles = map[string]string{
	"ingredients.csv": `id,name,unit,category,min_stock,current_stock,available_stock
I1,Papa,kg,verduras,10,25,20
I2,Sal,kg,abarrotes,5,0,
`,
	"dishes.csv": `id,name,category,price,active
D1,Lomo saltado,fondos,38.50,true
`,
	"recipes.csv": `dish_id,ingredient_id,ingredient_name,quantity_needed,unit,cost_per_unit
D1,I1,Papa,2,kg,2.50
D1,I2,Sal,0.5,kg,1.00
`,
	"forecasts.csv": `dish_id,dish_name,week_start,predicted_demand,confidence
D1,Lomo saltado,2025-01-27,15,high
D1,Lomo saltado,2025-02-03,5,low
`,
	"purchases.csv": `id,product_id,product_name,transaction_type,quantity,unit_cost,total_cost,supplier_name,reference_number,transaction_date
T1,I1,Papa,inbound,50,1.50,,Mercado Mayorista,F001,2025-01-20
T2,I2,Sal,inbound,2,,9.00,Abarrotes Lima,F002,2025-01-21
`,
	"sales.csv": `sale_id,sale_date,sale_time,total_amount,dish_id,dish_name,quantity,unit_price,item_total
S1,2025-01-22,13:05,77.00,D1,Lomo saltado,2,38.50,77.00
`,
}

func writeScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scenarioFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestPlanCommand_Weekly(t *testing.T) {
	publisher := events.NewMemoryPublisher(nil)
	cmd := NewPlanCommand(PlanConfig{
		Source: SourceConfig{ScenarioDir: writeScenario(t)},
		Mode:   "weekly",
		Week:   "2025-01-27",
		Format: "json",
	}, publisher, nil)
	var out bytes.Buffer
	cmd.SetOutput(&out)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var result dto.SupplyPlanResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode output: %v\n%s", err, out.String())
	}
	if len(result.Plan.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(result.Plan.Lines))
	}
	papa, sal := result.Plan.Lines[0], result.Plan.Lines[1]
	if papa.TotalRequired != 30 || papa.QuantityToBuy != 10 {
		t.Errorf("Unexpected papa line: %+v", papa)
	}
	if sal.TotalRequired != 7.5 || sal.QuantityToBuy != 7.5 {
		t.Errorf("Unexpected sal line: %+v", sal)
	}
	if got := len(publisher.ReadAllEvents(0)); got != 1 {
		t.Errorf("Expected 1 published event, got %d", got)
	}
}

func TestPlanCommand_Dish(t *testing.T) {
	outDir := t.TempDir()
	cmd := NewPlanCommand(PlanConfig{
		Source:    SourceConfig{ScenarioDir: writeScenario(t), DishID: "D1"},
		Mode:      "byDish",
		Format:    "csv",
		OutputDir: outDir,
	}, nil, nil)
	var out bytes.Buffer
	cmd.SetOutput(&out)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "I1") {
		t.Errorf("Expected papa line in output, got:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "supply_plan.csv")); err != nil {
		t.Errorf("Expected saved plan file: %v", err)
	}
}

func TestPlanCommand_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config PlanConfig
		want   string
	}{
		{
			name:   "no source",
			config: PlanConfig{Mode: "weekly", Format: "text"},
			want:   "must specify either",
		},
		{
			name:   "dish mode without dish",
			config: PlanConfig{Source: SourceConfig{ScenarioDir: "x"}, Mode: "byDish", Format: "text"},
			want:   "requires -dish",
		},
		{
			name:   "unknown mode",
			config: PlanConfig{Source: SourceConfig{ScenarioDir: "x"}, Mode: "monthly", Format: "text"},
			want:   "unknown mode",
		},
		{
			name:   "bad format",
			config: PlanConfig{Source: SourceConfig{ScenarioDir: "x"}, Mode: "weekly", Format: "xml"},
			want:   "unsupported output format",
		},
		{
			name:   "bad week",
			config: PlanConfig{Source: SourceConfig{ScenarioDir: "x"}, Mode: "weekly", Week: "27-01", Format: "text"},
			want:   "validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewPlanCommand(tt.config, nil, nil)
			cmd.SetOutput(&bytes.Buffer{})
			err := cmd.Execute(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPlanCommand_Help(t *testing.T) {
	cmd := NewPlanCommand(PlanConfig{Help: true}, nil, nil)
	var out bytes.Buffer
	cmd.SetOutput(&out)
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "USAGE") {
		t.Error("Expected usage text")
	}
}

func TestPlanCommand_Backend(t *testing.T) {
	mux := http.NewServeMux()
	routes := map[string]string{
		"/api/dishes/D1":          `{"id":"D1","name":"Lomo","ingredients":[{"productId":"I1","productName":"Papa","quantityNeeded":2,"unit":"kg"}]}`,
		"/api/products":           `[{"id":"I1","name":"Papa","unitMeasure":"kg","minStock":10}]`,
		"/api/inventory/I1":       `{"productId":"I1","currentStock":25,"availableStock":20}`,
		"/api/ml-service/predict": `{"success":true,"predictions":[{"dishId":"D1","weekStart":"2025-01-27","predictedDemand":15,"confidence":"high"}]}`,
	}
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	cmd := NewPlanCommand(PlanConfig{
		Source: SourceConfig{BackendURL: server.URL, DishID: "D1", WeeksAhead: 1},
		Mode:   "byDish",
		Format: "json",
	}, nil, nil)
	var out bytes.Buffer
	cmd.SetOutput(&out)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var result dto.SupplyPlanResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode output: %v\n%s", err, out.String())
	}
	if len(result.Plan.Lines) != 1 || result.Plan.Lines[0].QuantityToBuy != 10 {
		t.Errorf("Unexpected lines: %+v", result.Plan.Lines)
	}
}

func TestPlanCommand_BackendVerboseModel(t *testing.T) {
	catalog := map[string]string{
		"/api/dishes/D1":          `{"id":"D1","name":"Lomo","ingredients":[{"productId":"I1","productName":"Papa","quantityNeeded":2,"unit":"kg","costPerUnit":1.5}]}`,
		"/api/products":           `[{"id":"I1","name":"Papa","unitMeasure":"kg","minStock":10}]`,
		"/api/inventory/I1":       `{"productId":"I1","currentStock":25,"availableStock":20}`,
		"/api/ml-service/predict": `{"success":true,"predictions":[{"dishId":"D1","weekStart":"2025-01-27","predictedDemand":15,"confidence":"high"}]}`,
	}

	tests := []struct {
		name  string
		model string
		want  string
	}{
		{
			name:  "active model is reported",
			model: `{"modelId":"m-1","modelName":"lstm","version":"3","mae":1.5,"r2":0.9}`,
			want:  "🤖 Forecast model: lstm v3 (MAE 1.50, R2 0.90)",
		},
		{
			name: "missing model is a warning",
			want: "Forecast model unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			routes := map[string]string{}
			for path, body := range catalog {
				routes[path] = body
			}
			if tt.model != "" {
				routes["/api/ml-service/model/active"] = tt.model
			}
			for path, body := range routes {
				mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(body))
				})
			}
			server := httptest.NewServer(mux)
			defer server.Close()

			cmd := NewPlanCommand(PlanConfig{
				Source:  SourceConfig{BackendURL: server.URL, DishID: "D1", WeeksAhead: 1},
				Mode:    "byDish",
				Format:  "text",
				Verbose: true,
			}, nil, nil)
			var out bytes.Buffer
			cmd.SetOutput(&out)

			if err := cmd.Execute(context.Background()); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			for _, want := range []string{tt.want, "Recipe Cost: 3.00", "Week: 2025-01-27 to 2025-02-02"} {
				if !strings.Contains(out.String(), want) {
					t.Errorf("Expected %q in output:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestStockCommand(t *testing.T) {
	cmd := NewStockCommand(StockConfig{
		Source:   SourceConfig{ScenarioDir: writeScenario(t)},
		Critical: true,
		Format:   "json",
	}, nil)
	var out bytes.Buffer
	cmd.SetOutput(&out)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var report dto.StockReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if report.Summary.Total != 2 || len(report.Items) != 1 || report.Items[0].ID != "I2" {
		t.Errorf("Unexpected report: %+v", report)
	}
	if report.Items[0].Status != entities.StockNoStock {
		t.Errorf("Expected no stock, got %s", report.Items[0].Status)
	}
}

func TestLedgerCommand(t *testing.T) {
	dir := writeScenario(t)

	tests := []struct {
		name      string
		kind      string
		query     string
		wantItems int
		wantSum   string
	}{
		{"all purchases", LedgerPurchases, "", 2, "84"},
		{"filtered purchases", LedgerPurchases, "abarrotes", 1, "9"},
		{"sales", LedgerSales, "", 1, "77"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewLedgerCommand(LedgerConfig{
				Source: SourceConfig{ScenarioDir: dir},
				Kind:   tt.kind,
				Query:  tt.query,
				Page:   1,
				Format: "json",
			}, nil)
			var out bytes.Buffer
			cmd.SetOutput(&out)

			if err := cmd.Execute(context.Background()); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			var page ledger.Page[json.RawMessage]
			if err := json.Unmarshal(out.Bytes(), &page); err != nil {
				t.Fatalf("Failed to decode output: %v", err)
			}
			if page.TotalItems != tt.wantItems {
				t.Errorf("Expected %d items, got %d", tt.wantItems, page.TotalItems)
			}
			if page.Summary.Sum.String() != tt.wantSum {
				t.Errorf("Expected sum %s, got %s", tt.wantSum, page.Summary.Sum)
			}
		})
	}
}

func TestLedgerCommand_UnknownKind(t *testing.T) {
	cmd := NewLedgerCommand(LedgerConfig{Kind: "refunds", Format: "text"}, nil)
	if err := cmd.Execute(context.Background()); err == nil {
		t.Error("Expected error for unknown ledger kind")
	}
}

func TestServeCommand_EmptyAddr(t *testing.T) {
	if err := NewServeCommand(ServeConfig{}, nil, nil).Execute(context.Background()); err == nil {
		t.Error("Expected error for empty address")
	}
}
