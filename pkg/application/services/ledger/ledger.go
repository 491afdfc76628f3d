// Package ledger provides the search, ordering, pagination and totals shared
// by the purchase and sales history views.
package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPageSize is the number of rows per history page
const DefaultPageSize = 20

// Filter keeps the items where any field contains the trimmed query,
// ignoring case. An empty query keeps everything.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return append([]T(nil), items...)
	}

	var kept []T
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept
}

// SortByDateDesc orders a copy of items newest first by their date key.
// Equal keys keep their input order.
func SortByDateDesc[T any](items []T, key func(T) string) []T {
	sorted := append([]T(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	return sorted
}

// Paginate returns the 1-indexed page of items. Out of range pages and
// non-positive sizes return an empty page.
func Paginate[T any](items []T, pageSize, page int) []T {
	if pageSize < 1 || page < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}

// TotalPages is max(1, ceil(count/pageSize))
func TotalPages(count, pageSize int) int {
	if pageSize < 1 || count <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage bounds page to [1, TotalPages(count, pageSize)]
func ClampPage(page, count, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(count, pageSize); page > last {
		return last
	}
	return page
}

// Summary holds the totals of a history view
type Summary struct {
	Count   int             `json:"count"`
	Sum     decimal.Decimal `json:"sum"`
	Average decimal.Decimal `json:"average"`
}

// Summarize sums the amount of every item. Average is zero for no items.
func Summarize[T any](items []T, amount func(T) decimal.Decimal) Summary {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(amount(item))
	}

	summary := Summary{Count: len(items), Sum: sum, Average: decimal.Zero}
	if len(items) > 0 {
		summary.Average = sum.Div(decimal.NewFromInt(int64(len(items))))
	}
	return summary
}

// Page is one page of a filtered, sorted history view
type Page[T any] struct {
	Items      []T     `json:"items"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalItems int     `json:"totalItems"`
	TotalPages int     `json:"totalPages"`
	Summary    Summary `json:"summary"`
}

// View describes how to search, order and total one kind of history row
type View[T any] struct {
	Fields  func(T) []string
	DateKey func(T) string
	Amount  func(T) decimal.Decimal
}

// Request selects a page of a history view
type Request struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// Query filters, sorts and paginates items. The summary covers every
// filtered row, not just the returned page.
func Query[T any](items []T, view View[T], req Request) Page[T] {
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(items, req.Query, view.Fields)
	sorted := SortByDateDesc(filtered, view.DateKey)
	page := ClampPage(req.Page, len(sorted), pageSize)

	return Page[T]{
		Items:      Paginate(sorted, pageSize, page),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(sorted),
		TotalPages: TotalPages(len(sorted), pageSize),
		Summary:    Summarize(sorted, view.Amount),
	}
}
