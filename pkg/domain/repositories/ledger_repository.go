package repositories

import "github.com/gestrest/supplyplan/pkg/domain/entities"

// LedgerRepository provides access to purchases and sales
type LedgerRepository interface {
	GetTransactions() ([]entities.InventoryTransaction, error)
	GetSales() ([]entities.Sale, error)
	LoadTransactions(transactions []entities.InventoryTransaction) error
	LoadSales(sales []entities.Sale) error
}
