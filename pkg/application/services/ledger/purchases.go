package ledger

import (
	"sort"
	"strings"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

// Inbound keeps the purchase transactions
func Inbound(transactions []entities.InventoryTransaction) []entities.InventoryTransaction {
	var purchases []entities.InventoryTransaction
	for _, tx := range transactions {
		if strings.EqualFold(strings.TrimSpace(tx.TransactionType), entities.TransactionInbound) {
			purchases = append(purchases, tx)
		}
	}
	return purchases
}

// PurchaseFields lists the searchable text of a purchase
func PurchaseFields(tx entities.InventoryTransaction) []string {
	return []string{tx.ProductName, tx.SupplierName, tx.ReferenceNumber, tx.TransactionDate, tx.ID}
}

// PurchaseDateKey is the date purchases are filtered and sorted by
func PurchaseDateKey(tx entities.InventoryTransaction) string {
	return tx.TransactionDate
}

// PurchaseAmount is the total cost, or quantity times unit cost when the
// total is missing
func PurchaseAmount(tx entities.InventoryTransaction) decimal.Decimal {
	if tx.TotalCost != nil {
		return decimal.NewFromFloat(*tx.TotalCost)
	}
	if tx.UnitCost != nil {
		return decimal.NewFromFloat(tx.Quantity).Mul(decimal.NewFromFloat(*tx.UnitCost))
	}
	return decimal.Zero
}

// Purchases is the purchase history view
var Purchases = View[entities.InventoryTransaction]{
	Fields:  PurchaseFields,
	DateKey: PurchaseDateKey,
	Amount:  PurchaseAmount,
}

// QueryPurchases pages the inbound transactions
func QueryPurchases(transactions []entities.InventoryTransaction, req Request) Page[entities.InventoryTransaction] {
	return Query(Inbound(transactions), Purchases, req)
}

// DistinctSuppliers returns the sorted non-empty supplier names
func DistinctSuppliers(transactions []entities.InventoryTransaction) []string {
	return distinct(transactions, func(tx entities.InventoryTransaction) string { return tx.SupplierName })
}

// DistinctProducts returns the sorted non-empty product names
func DistinctProducts(transactions []entities.InventoryTransaction) []string {
	return distinct(transactions, func(tx entities.InventoryTransaction) string { return tx.ProductName })
}

func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		k := strings.TrimSpace(key(item))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
