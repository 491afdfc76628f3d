package ledger

import (
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

// SaleFields lists the searchable text of a sale: date, id and every dish name
func SaleFields(sale entities.Sale) []string {
	fields := []string{sale.SaleDate, sale.ID}
	for _, item := range sale.Items {
		fields = append(fields, item.DishName)
	}
	return fields
}

// SaleDateKey joins date and time so same-day tickets order by time
func SaleDateKey(sale entities.Sale) string {
	return sale.SaleDate + "T" + sale.SaleTime
}

// SaleAmount is the ticket total, or the sum of its items when missing
func SaleAmount(sale entities.Sale) decimal.Decimal {
	if sale.TotalAmount != nil {
		return decimal.NewFromFloat(*sale.TotalAmount)
	}
	total := decimal.Zero
	for _, item := range sale.Items {
		total = total.Add(itemAmount(item))
	}
	return total
}

func itemAmount(item entities.SaleItem) decimal.Decimal {
	if item.TotalAmount != nil {
		return decimal.NewFromFloat(*item.TotalAmount)
	}
	if item.UnitPrice != nil {
		return decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(*item.UnitPrice))
	}
	return decimal.Zero
}

// Sales is the sales history view
var Sales = View[entities.Sale]{
	Fields:  SaleFields,
	DateKey: SaleDateKey,
	Amount:  SaleAmount,
}

// QuerySales pages the sales history
func QuerySales(sales []entities.Sale, req Request) Page[entities.Sale] {
	return Query(sales, Sales, req)
}
