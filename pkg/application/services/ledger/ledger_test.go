package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

type row struct {
	id    string
	date  string
	label string
	cost  float64
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: fmt.Sprintf("R%02d", i), date: fmt.Sprintf("2025-01-%02d", i%28+1), cost: 1}
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := rows(45)

	tests := []struct {
		name     string
		pageSize int
		page     int
		expected int
	}{
		{"first page", 20, 1, 20},
		{"last partial page", 20, 3, 5},
		{"beyond end", 20, 4, 0},
		{"page zero", 20, 0, 0},
		{"zero size", 0, 1, 0},
		{"single page", 100, 1, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.pageSize, tt.page)
			if len(got) != tt.expected {
				t.Errorf("Expected %d items, got %d", tt.expected, len(got))
			}
		})
	}

	if got := Paginate(items, 20, 3); got[0].id != "R40" {
		t.Errorf("Expected page 3 to start at R40, got %s", got[0].id)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, expected int
	}{
		{45, 20, 3},
		{40, 20, 2},
		{0, 20, 1},
		{1, 20, 1},
		{5, 0, 1},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.expected {
			t.Errorf("TotalPages(%d, %d) = %d, expected %d", tt.count, tt.size, got, tt.expected)
		}
	}

	if got := ClampPage(7, 45, 20); got != 3 {
		t.Errorf("Expected page clamped to 3, got %d", got)
	}
	if got := ClampPage(-2, 45, 20); got != 1 {
		t.Errorf("Expected page clamped to 1, got %d", got)
	}
}

func TestFilter(t *testing.T) {
	items := []row{
		{id: "1", label: "Papa Amarilla"},
		{id: "2", label: "Cebolla"},
		{id: "3", label: "papas fritas"},
	}
	fields := func(r row) []string { return []string{r.id, r.label} }

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"empty query keeps all", "", 3},
		{"blank query keeps all", "   ", 3},
		{"case insensitive", "  PAPA ", 2},
		{"matches id", "2", 1},
		{"no match", "tomate", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filter(items, tt.query, fields); len(got) != tt.expected {
				t.Errorf("Expected %d items, got %d", tt.expected, len(got))
			}
		})
	}
}

func TestSortByDateDesc_Stable(t *testing.T) {
	items := []row{
		{id: "a", date: "2025-01-02"},
		{id: "b", date: "2025-01-05"},
		{id: "c", date: "2025-01-02"},
		{id: "d", date: "2025-01-01"},
	}

	sorted := SortByDateDesc(items, func(r row) string { return r.date })
	order := ""
	for _, r := range sorted {
		order += r.id
	}
	if order != "bacd" {
		t.Errorf("Expected order bacd, got %s", order)
	}
	if items[0].id != "a" {
		t.Error("Expected input slice left untouched")
	}
}

func TestSummarize(t *testing.T) {
	amount := func(r row) decimal.Decimal { return decimal.NewFromFloat(r.cost) }

	empty := Summarize([]row(nil), amount)
	if empty.Count != 0 || !empty.Sum.IsZero() || !empty.Average.IsZero() {
		t.Errorf("Expected zero summary, got %+v", empty)
	}

	summary := Summarize([]row{{cost: 0.1}, {cost: 0.2}, {cost: 0.3}}, amount)
	if summary.Count != 3 {
		t.Errorf("Expected count 3, got %d", summary.Count)
	}
	if !summary.Sum.Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("Expected sum 0.6, got %s", summary.Sum)
	}
	if !summary.Average.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("Expected average 0.2, got %s", summary.Average)
	}
}

func TestQuery(t *testing.T) {
	view := View[row]{
		Fields:  func(r row) []string { return []string{r.id} },
		DateKey: func(r row) string { return r.id },
		Amount:  func(r row) decimal.Decimal { return decimal.NewFromFloat(r.cost) },
	}

	page := Query(rows(45), view, Request{Page: 3})
	if page.PageSize != DefaultPageSize {
		t.Errorf("Expected default page size %d, got %d", DefaultPageSize, page.PageSize)
	}
	if len(page.Items) != 5 || page.TotalPages != 3 || page.TotalItems != 45 {
		t.Errorf("Unexpected page: items=%d totalPages=%d totalItems=%d", len(page.Items), page.TotalPages, page.TotalItems)
	}
	if page.Items[0].id != "R04" {
		t.Errorf("Expected descending order on last page to start at R04, got %s", page.Items[0].id)
	}
	if page.Summary.Count != 45 || !page.Summary.Sum.Equal(decimal.NewFromInt(45)) {
		t.Errorf("Expected summary over all filtered rows, got %+v", page.Summary)
	}

	filtered := Query(rows(45), view, Request{Query: "r1", Page: 9, PageSize: 4})
	if filtered.TotalItems != 10 || filtered.Page != 3 || len(filtered.Items) != 2 {
		t.Errorf("Unexpected filtered page: %+v", filtered)
	}
}
