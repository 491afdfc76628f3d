package ledger

import (
	"reflect"
	"testing"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

func transactions() []entities.InventoryTransaction {
	return []entities.InventoryTransaction{
		{ID: "T1", ProductName: "Papa", TransactionType: "inbound", Quantity: 10, UnitCost: entities.Float(1.5), SupplierName: "Mercado Central", TransactionDate: "2025-01-03"},
		{ID: "T2", ProductName: "Papa", TransactionType: "outbound", Quantity: 4, TransactionDate: "2025-01-04"},
		{ID: "T3", ProductName: "Arroz", TransactionType: "INBOUND", Quantity: 20, TotalCost: entities.Float(42), SupplierName: "Molinos SA", ReferenceNumber: "F-001", TransactionDate: "2025-01-05"},
		{ID: "T4", ProductName: "Sal", TransactionType: "inbound", Quantity: 1, SupplierName: "Mercado Central", TransactionDate: "2025-01-01"},
	}
}

func TestInbound(t *testing.T) {
	purchases := Inbound(transactions())
	if len(purchases) != 3 {
		t.Fatalf("Expected 3 purchases, got %d", len(purchases))
	}
	for _, p := range purchases {
		if p.ID == "T2" {
			t.Error("Expected outbound transaction filtered out")
		}
	}
}

func TestPurchaseAmount(t *testing.T) {
	tests := []struct {
		name     string
		tx       entities.InventoryTransaction
		expected string
	}{
		{"total cost", entities.InventoryTransaction{Quantity: 2, UnitCost: entities.Float(3), TotalCost: entities.Float(7)}, "7"},
		{"quantity times unit cost", entities.InventoryTransaction{Quantity: 10, UnitCost: entities.Float(1.5)}, "15"},
		{"no cost", entities.InventoryTransaction{Quantity: 3}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PurchaseAmount(tt.tx); !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestQueryPurchases(t *testing.T) {
	page := QueryPurchases(transactions(), Request{Query: "mercado", Page: 1})
	if page.TotalItems != 2 {
		t.Fatalf("Expected 2 matching purchases, got %d", page.TotalItems)
	}
	if page.Items[0].ID != "T1" || page.Items[1].ID != "T4" {
		t.Errorf("Expected newest first, got %s then %s", page.Items[0].ID, page.Items[1].ID)
	}
	if !page.Summary.Sum.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected sum 15, got %s", page.Summary.Sum)
	}

	byRef := QueryPurchases(transactions(), Request{Query: "f-001"})
	if byRef.TotalItems != 1 || byRef.Items[0].ID != "T3" {
		t.Errorf("Expected reference search to find T3, got %+v", byRef.Items)
	}
}

func TestDistinct(t *testing.T) {
	purchases := Inbound(transactions())
	if got := DistinctSuppliers(purchases); !reflect.DeepEqual(got, []string{"Mercado Central", "Molinos SA"}) {
		t.Errorf("Unexpected suppliers: %v", got)
	}
	if got := DistinctProducts(purchases); !reflect.DeepEqual(got, []string{"Arroz", "Papa", "Sal"}) {
		t.Errorf("Unexpected products: %v", got)
	}
}

func TestQuerySales(t *testing.T) {
	sales := []entities.Sale{
		{ID: "S1", SaleDate: "2025-01-10", SaleTime: "12:30", TotalAmount: entities.Float(30), Items: []entities.SaleItem{{DishName: "Lomo saltado"}}},
		{ID: "S2", SaleDate: "2025-01-10", SaleTime: "20:15", Items: []entities.SaleItem{
			{DishName: "Ceviche", Quantity: 2, UnitPrice: entities.Float(12.5)},
			{DishName: "Chicha", TotalAmount: entities.Float(5)},
		}},
		{ID: "S3", SaleDate: "2025-01-09", SaleTime: "13:00"},
	}

	page := QuerySales(sales, Request{})
	ids := []string{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID}
	if !reflect.DeepEqual(ids, []string{"S2", "S1", "S3"}) {
		t.Errorf("Expected sales ordered by date and time, got %v", ids)
	}
	if !page.Summary.Sum.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected revenue 60, got %s", page.Summary.Sum)
	}
	if !page.Summary.Average.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected average 20, got %s", page.Summary.Average)
	}

	byDish := QuerySales(sales, Request{Query: "ceviche"})
	if byDish.TotalItems != 1 || byDish.Items[0].ID != "S2" {
		t.Errorf("Expected dish name search to find S2, got %+v", byDish.Items)
	}
}
