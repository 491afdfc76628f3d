package entities

import (
	"errors"
	"testing"
)

func TestIngredient_StockDefaults(t *testing.T) {
	testCases := []struct {
		name              string
		ingredient        Ingredient
		expectedMin       float64
		expectedCurrent   float64
		expectedAvailable float64
	}{
		{"all nil", Ingredient{ID: "I1"}, 0, 0, 0},
		{"available falls back to current", Ingredient{ID: "I1", CurrentStock: Float(12)}, 0, 12, 12},
		{"available tracked separately", Ingredient{ID: "I1", CurrentStock: Float(12), AvailableStock: Float(8)}, 0, 12, 8},
		{"min set", Ingredient{ID: "I1", MinStock: Float(5), CurrentStock: Float(3)}, 5, 3, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ingredient.Min(); got != tc.expectedMin {
				t.Errorf("Expected min %g, got %g", tc.expectedMin, got)
			}
			if got := tc.ingredient.Current(); got != tc.expectedCurrent {
				t.Errorf("Expected current %g, got %g", tc.expectedCurrent, got)
			}
			if got := tc.ingredient.Available(); got != tc.expectedAvailable {
				t.Errorf("Expected available %g, got %g", tc.expectedAvailable, got)
			}
		})
	}
}

func TestNewIngredient_Validation(t *testing.T) {
	ing, err := NewIngredient("I1", "Cebolla", "kg", Float(5), nil, nil)
	if err != nil {
		t.Fatalf("Expected valid ingredient creation to succeed: %v", err)
	}
	if !ing.Active {
		t.Error("Expected new ingredient to be active")
	}

	testCases := []struct {
		name        string
		id          IngredientID
		ingName     string
		expectError string
	}{
		{"empty id", "", "Cebolla", "ingredient id cannot be empty"},
		{"empty name", "I1", "", "ingredient name cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIngredient(tc.id, tc.ingName, "kg", nil, nil, nil)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestStockStatus_Labels(t *testing.T) {
	for _, status := range []StockStatus{StockOK, StockNearMin, StockBelowMin, StockNoStock} {
		parsed, err := ParseStockStatus(status.String())
		if err != nil {
			t.Fatalf("ParseStockStatus(%s) failed: %v", status, err)
		}
		if parsed != status {
			t.Errorf("Expected %s, got %s", status, parsed)
		}
	}

	if _, err := ParseStockStatus("critical"); err == nil {
		t.Error("Expected error for unknown label")
	}
	if !StockNoStock.IsCritical() || !StockBelowMin.IsCritical() {
		t.Error("Expected no_stock and below_min to be critical")
	}
	if StockNearMin.IsCritical() || StockOK.IsCritical() {
		t.Error("Expected near_min and ok not to be critical")
	}
}

func TestParseOptionalNumber(t *testing.T) {
	v, err := ParseOptionalNumber("min_stock", " ")
	if err != nil || v != nil {
		t.Errorf("Expected nil for blank input, got %v, %v", v, err)
	}

	v, err = ParseOptionalNumber("min_stock", "2.5")
	if err != nil || v == nil || *v != 2.5 {
		t.Errorf("Expected 2.5, got %v, %v", v, err)
	}

	_, err = ParseOptionalNumber("min_stock", "abc")
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "min_stock" || !errors.Is(err, ErrNotANumber) {
		t.Errorf("Unexpected field error: %v", fieldErr)
	}
}
