package memory

import (
	"github.com/gestrest/supplyplan/pkg/domain/entities"
	"github.com/gestrest/supplyplan/pkg/domain/repositories"
)

// LedgerRepository provides in-memory storage for purchases and sales
type LedgerRepository struct {
	transactions []entities.InventoryTransaction
	sales        []entities.Sale
}

// NewLedgerRepository creates a new in-memory ledger repository
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		transactions: []entities.InventoryTransaction{},
		sales:        []entities.Sale{},
	}
}

// Verify interface compliance
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// LoadTransactions loads inventory transactions into the repository
func (r *LedgerRepository) LoadTransactions(transactions []entities.InventoryTransaction) error {
	r.transactions = append(r.transactions, transactions...)
	return nil
}

// LoadSales loads sales into the repository
func (r *LedgerRepository) LoadSales(sales []entities.Sale) error {
	r.sales = append(r.sales, sales...)
	return nil
}

// GetTransactions returns all transactions in load order
func (r *LedgerRepository) GetTransactions() ([]entities.InventoryTransaction, error) {
	transactions := make([]entities.InventoryTransaction, len(r.transactions))
	copy(transactions, r.transactions)
	return transactions, nil
}

// GetSales returns all sales in load order
func (r *LedgerRepository) GetSales() ([]entities.Sale, error) {
	sales := make([]entities.Sale, len(r.sales))
	copy(sales, r.sales)
	return sales, nil
}
