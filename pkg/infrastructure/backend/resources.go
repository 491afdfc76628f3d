package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gestrest/supplyplan/pkg/domain/entities"
)

// ListDishes returns every dish with its recipe
func (c *Client) ListDishes(ctx context.Context) ([]entities.Dish, error) {
	var dtos []DishDTO
	if err := c.do(ctx, http.MethodGet, "/dishes", nil, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	dishes := make([]entities.Dish, 0, len(dtos))
	for _, dto := range dtos {
		dishes = append(dishes, dto.ToDish())
	}
	return dishes, nil
}

// GetDish returns one dish by id
func (c *Client) GetDish(ctx context.Context, id entities.DishID) (*entities.Dish, error) {
	var dto DishDTO
	if err := c.do(ctx, http.MethodGet, "/dishes/"+url.PathEscape(string(id)), nil, &dto); err != nil {
		return nil, fmt.Errorf("failed to get dish %s: %w", id, err)
	}
	dish := dto.ToDish()
	return &dish, nil
}

// ListProducts returns the product catalog
func (c *Client) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	var products []ProductDTO
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetInventory returns the stock record of one product
func (c *Client) GetInventory(ctx context.Context, productID string) (*InventoryDTO, error) {
	var inv InventoryDTO
	if err := c.do(ctx, http.MethodGet, "/inventory/"+url.PathEscape(productID), nil, &inv); err != nil {
		return nil, fmt.Errorf("failed to get inventory for %s: %w", productID, err)
	}
	return &inv, nil
}

// Predict asks the forecasting service for a dish's weekly demand
func (c *Client) Predict(ctx context.Context, id entities.DishID, weeksAhead int) ([]entities.DemandForecastPoint, error) {
	req := PredictRequest{DishID: string(id), WeeksAhead: weeksAhead, SaveToDB: true}
	var resp PredictResponse
	if err := c.do(ctx, http.MethodPost, "/ml-service/predict", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to predict demand for %s: %w", id, err)
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "forecast service returned no predictions"
		}
		return nil, fmt.Errorf("failed to predict demand for %s: %s", id, msg)
	}
	return toForecasts(resp.Predictions)
}

// WeeklyForecasts returns the dish forecasts of the global weekly plan.
// The supply lines in the response are discarded and recomputed locally.
func (c *Client) WeeklyForecasts(ctx context.Context, weeksAhead int) ([]entities.DemandForecastPoint, error) {
	var resp WeeklySupplyResponse
	path := "/ml-service/weekly-supply?weeksAhead=" + strconv.Itoa(weeksAhead)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get weekly forecasts: %w", err)
	}
	return toForecasts(resp.Dishes)
}

// ActiveModel describes the forecasting model currently serving predictions
func (c *Client) ActiveModel(ctx context.Context) (*ModelInfoDTO, error) {
	var info ModelInfoDTO
	if err := c.do(ctx, http.MethodGet, "/ml-service/model/active", nil, &info); err != nil {
		return nil, fmt.Errorf("failed to get active model: %w", err)
	}
	return &info, nil
}

// ListTransactions returns the inventory movement history
func (c *Client) ListTransactions(ctx context.Context) ([]entities.InventoryTransaction, error) {
	var txs []entities.InventoryTransaction
	if err := c.do(ctx, http.MethodGet, "/inventory/transactions", nil, &txs); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// ListSales returns the sales history
func (c *Client) ListSales(ctx context.Context) ([]entities.Sale, error) {
	var sales []entities.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
