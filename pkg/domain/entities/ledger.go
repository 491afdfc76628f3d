package entities

// TransactionInbound is the transaction type of a purchase
const TransactionInbound = "inbound"

// InventoryTransaction is a stock movement recorded by the backend
type InventoryTransaction struct {
	ID              string   `json:"id,omitempty"`
	ProductID       string   `json:"productId"`
	ProductName     string   `json:"productName,omitempty"`
	TransactionType string   `json:"transactionType"`
	Quantity        float64  `json:"quantity"`
	UnitCost        *float64 `json:"unitCost,omitempty"`
	TotalCost       *float64 `json:"totalCost,omitempty"`
	SupplierID      string   `json:"supplierId,omitempty"`
	SupplierName    string   `json:"supplierName,omitempty"`
	ReferenceNumber string   `json:"referenceNumber,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	TransactionDate string   `json:"transactionDate,omitempty"`
}

// SaleItem is one dish line on a sale ticket
type SaleItem struct {
	ID          string   `json:"id,omitempty"`
	DishID      DishID   `json:"dishId"`
	DishName    string   `json:"dishName,omitempty"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
}

// Sale is a sale ticket
type Sale struct {
	ID          string     `json:"id,omitempty"`
	SaleDate    string     `json:"saleDate,omitempty"`
	SaleTime    string     `json:"saleTime,omitempty"`
	TotalAmount *float64   `json:"totalAmount,omitempty"`
	Items       []SaleItem `json:"items,omitempty"`
}
