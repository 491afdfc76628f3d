package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gestrest/supplyplan/pkg/application/dto"
	"github.com/gestrest/supplyplan/pkg/application/services/ledger"
	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// ValidateFormat rejects formats the writers do not support
func ValidateFormat(format string) error {
	switch format {
	case "text", "json", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// GeneratePlans writes the plans to w and, with an output directory, saves
// a copy as supply_plan.<format>
func GeneratePlans(w io.Writer, results []*dto.SupplyPlanResult, config Config) error {
	if err := ValidateFormat(config.Format); err != nil {
		return err
	}
	if err := WritePlans(w, results, config.Format); err != nil {
		return err
	}
	if config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "supply_plan."+extension(config.Format))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := WritePlans(file, results, config.Format); err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
	}
	return nil
}

// WritePlans renders one or more plan results
func WritePlans(w io.Writer, results []*dto.SupplyPlanResult, format string) error {
	switch format {
	case "json":
		if len(results) == 1 {
			return writeJSON(w, results[0])
		}
		return writeJSON(w, results)
	case "csv":
		return writePlansCSV(w, results)
	case "text":
		for _, result := range results {
			writePlanText(w, result)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writePlanText(w io.Writer, result *dto.SupplyPlanResult) {
	plan := result.Plan
	fmt.Fprintf(w, "📊 Supply Plan %s\n", result.ID)
	fmt.Fprintf(w, "======================\n\n")
	fmt.Fprintf(w, "Mode: %s\n", plan.Mode)
	if plan.DishID != "" {
		fmt.Fprintf(w, "Dish: %s\n", plan.DishID)
		fmt.Fprintf(w, "Recipe Cost: %.2f\n", plan.RecipeCost)
	}
	fmt.Fprintf(w, "Week: %s\n", weekRange(plan.WeekStart))
	fmt.Fprintf(w, "Forecasts: %d\n", len(plan.Forecasts))
	fmt.Fprintf(w, "Total Demand: %s\n", formatQty(plan.Summary.TotalDemand))
	fmt.Fprintf(w, "Ingredients To Buy: %d\n", plan.Summary.IngredientsNeedingPurchase)
	confidence := "-"
	if plan.Summary.DominantConfidence != nil {
		confidence = *plan.Summary.DominantConfidence
	}
	fmt.Fprintf(w, "Dominant Confidence: %s\n\n", confidence)

	if len(plan.Lines) > 0 {
		fmt.Fprintf(w, "🧾 Supply Lines:\n")
		fmt.Fprintf(w, "%-10s %-20s %-6s %-10s %-10s %-10s %-10s\n",
			"ID", "Ingredient", "Unit", "Required", "Current", "Available", "To Buy")
		fmt.Fprintf(w, "%-10s %-20s %-6s %-10s %-10s %-10s %-10s\n",
			"----------", "--------------------", "------", "----------", "----------", "----------", "----------")
		for _, line := range plan.Lines {
			marker := ""
			if line.NeedsPurchase() {
				marker = " 🛒"
			}
			fmt.Fprintf(w, "%-10s %-20s %-6s %-10s %-10s %-10s %-10s%s\n",
				line.IngredientID,
				orDash(line.IngredientName),
				orDash(line.Unit),
				formatQty(line.TotalRequired),
				formatQty(line.CurrentStock),
				formatQty(line.AvailableStock),
				formatQty(line.QuantityToBuy),
				marker)
		}
		fmt.Fprintln(w)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
	}
}

func writePlansCSV(w io.Writer, results []*dto.SupplyPlanResult) error {
	writer := csv.NewWriter(w)
	header := []string{"plan_id", "mode", "dish_id", "week_start", "ingredient_id", "ingredient_name", "unit", "total_required", "current_stock", "available_stock", "quantity_to_buy"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		plan := result.Plan
		for _, line := range plan.Lines {
			record := []string{
				result.ID,
				string(plan.Mode),
				string(plan.DishID),
				plan.WeekStart.String(),
				string(line.IngredientID),
				line.IngredientName,
				line.Unit,
				formatQty(line.TotalRequired),
				formatQty(line.CurrentStock),
				formatQty(line.AvailableStock),
				formatQty(line.QuantityToBuy),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteStock renders the ingredient stock table
func WriteStock(w io.Writer, report dto.StockReport, format string) error {
	switch format {
	case "json":
		return writeJSON(w, report)
	case "csv":
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"id", "name", "category", "unit", "min_stock", "current_stock", "status"})
		for _, item := range report.Items {
			_ = writer.Write([]string{
				string(item.ID), item.Name, item.Category, item.Unit,
				formatQty(item.Min()), formatQty(item.Current()), item.Status.String(),
			})
		}
		writer.Flush()
		return writer.Error()
	case "text":
		fmt.Fprintf(w, "📦 Stock Status\n")
		fmt.Fprintf(w, "======================\n\n")
		fmt.Fprintf(w, "Ingredients: %d  Critical: %d  Near Minimum: %d\n\n",
			report.Summary.Total, report.Summary.Critical, report.Summary.NearMin)
		fmt.Fprintf(w, "%-10s %-20s %-12s %-6s %-10s %-10s %-10s\n",
			"ID", "Name", "Category", "Unit", "Min", "Current", "Status")
		fmt.Fprintf(w, "%-10s %-20s %-12s %-6s %-10s %-10s %-10s\n",
			"----------", "--------------------", "------------", "------", "----------", "----------", "----------")
		for _, item := range report.Items {
			fmt.Fprintf(w, "%-10s %-20s %-12s %-6s %-10s %-10s %-10s%s\n",
				item.ID, item.Name, orDash(item.Category), orDash(item.Unit),
				formatQty(item.Min()), formatQty(item.Current()), item.Status, statusMarker(item.Status))
		}
		fmt.Fprintln(w)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WritePurchases renders a page of the purchase history
func WritePurchases(w io.Writer, page ledger.Page[entities.InventoryTransaction], format string) error {
	switch format {
	case "json":
		return writeJSON(w, page)
	case "csv":
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"id", "transaction_date", "product_name", "supplier_name", "reference_number", "quantity", "amount"})
		for _, tx := range page.Items {
			_ = writer.Write([]string{tx.ID, tx.TransactionDate, tx.ProductName, tx.SupplierName, tx.ReferenceNumber,
				formatQty(tx.Quantity), ledger.PurchaseAmount(tx).StringFixed(2)})
		}
		writer.Flush()
		return writer.Error()
	case "text":
		fmt.Fprintf(w, "🛒 Purchases (page %d of %d)\n", page.Page, page.TotalPages)
		fmt.Fprintf(w, "======================\n\n")
		fmt.Fprintf(w, "%-10s %-12s %-20s %-20s %-10s %-12s\n", "ID", "Date", "Product", "Supplier", "Qty", "Amount")
		fmt.Fprintf(w, "%-10s %-12s %-20s %-20s %-10s %-12s\n",
			"----------", "------------", "--------------------", "--------------------", "----------", "------------")
		for _, tx := range page.Items {
			fmt.Fprintf(w, "%-10s %-12s %-20s %-20s %-10s %-12s\n",
				tx.ID, orDash(tx.TransactionDate), orDash(tx.ProductName), orDash(tx.SupplierName),
				formatQty(tx.Quantity), ledger.PurchaseAmount(tx).StringFixed(2))
		}
		fmt.Fprintf(w, "\nSuppliers: %d  Products: %d\n",
			len(ledger.DistinctSuppliers(page.Items)), len(ledger.DistinctProducts(page.Items)))
		writeSummaryText(w, page.Summary, "Spent")
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteSales renders a page of the sales history
func WriteSales(w io.Writer, page ledger.Page[entities.Sale], format string) error {
	switch format {
	case "json":
		return writeJSON(w, page)
	case "csv":
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"id", "sale_date", "sale_time", "items", "amount"})
		for _, sale := range page.Items {
			_ = writer.Write([]string{sale.ID, sale.SaleDate, sale.SaleTime, strconv.Itoa(len(sale.Items)),
				ledger.SaleAmount(sale).StringFixed(2)})
		}
		writer.Flush()
		return writer.Error()
	case "text":
		fmt.Fprintf(w, "💰 Sales (page %d of %d)\n", page.Page, page.TotalPages)
		fmt.Fprintf(w, "======================\n\n")
		fmt.Fprintf(w, "%-10s %-12s %-8s %-6s %-12s\n", "ID", "Date", "Time", "Items", "Amount")
		fmt.Fprintf(w, "%-10s %-12s %-8s %-6s %-12s\n", "----------", "------------", "--------", "------", "------------")
		for _, sale := range page.Items {
			fmt.Fprintf(w, "%-10s %-12s %-8s %-6d %-12s\n",
				sale.ID, orDash(sale.SaleDate), orDash(sale.SaleTime), len(sale.Items), ledger.SaleAmount(sale).StringFixed(2))
		}
		writeSummaryText(w, page.Summary, "Revenue")
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeSummaryText(w io.Writer, summary ledger.Summary, label string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d\n", summary.Count)
	fmt.Fprintf(w, "%s: %s\n", label, summary.Sum.StringFixed(2))
	fmt.Fprintf(w, "Average: %s\n\n", summary.Average.StringFixed(2))
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// weekRange renders a Monday week start with its Sunday
func weekRange(start entities.Date) string {
	if start.IsZero() {
		return "-"
	}
	return start.String() + " to " + start.AddDays(6).String()
}

func extension(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}

func statusMarker(status entities.StockStatus) string {
	switch status {
	case entities.StockNoStock, entities.StockBelowMin:
		return "🔴"
	case entities.StockNearMin:
		return "🟡"
	default:
		return ""
	}
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
