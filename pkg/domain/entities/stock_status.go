package entities

import "fmt"

// StockStatus is the risk level derived from current versus minimum stock
type StockStatus int

const (
	StockOK StockStatus = iota
	StockNearMin
	StockBelowMin
	StockNoStock
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case StockOK:
		return "ok"
	case StockNearMin:
		return "near_min"
	case StockBelowMin:
		return "below_min"
	case StockNoStock:
		return "no_stock"
	default:
		return "unknown"
	}
}

// IsCritical reports whether the ingredient is below minimum or out of stock
func (s StockStatus) IsCritical() bool {
	return s == StockBelowMin || s == StockNoStock
}

// MarshalText encodes the status as its label
func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status label
func (s *StockStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseStockStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStockStatus parses a status label
func ParseStockStatus(label string) (StockStatus, error) {
	switch label {
	case "ok":
		return StockOK, nil
	case "near_min":
		return StockNearMin, nil
	case "below_min":
		return StockBelowMin, nil
	case "no_stock":
		return StockNoStock, nil
	default:
		return StockOK, fmt.Errorf("invalid stock status: %s (expected: ok, near_min, below_min, or no_stock)", label)
	}
}
