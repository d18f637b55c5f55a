package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/freshplate/ordering-client/internal/models"
)

func (c *Client) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {

	var out []models.InventoryItem

	if err := c.call(ctx, http.MethodGet, "/inventory/", "/inventory/", nil, nil, &out, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) CreateInventory(ctx context.Context, req models.CreateInventoryRequest) (*models.InventoryItem, error) {

	var out models.InventoryItem

	if err := c.call(ctx, http.MethodPost, "/inventory/", "/inventory/", nil, req, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateInventory(ctx context.Context, id int64, req models.UpdateInventoryRequest) (*models.InventoryItem, error) {

	var out models.InventoryItem

	path := fmt.Sprintf("/inventory/%d/", id)
	if err := c.call(ctx, http.MethodPut, "/inventory/{id}/", path, nil, req, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteInventory(ctx context.Context, id int64) error {

	path := fmt.Sprintf("/inventory/%d/", id)

	return c.call(ctx, http.MethodDelete, "/inventory/{id}/", path, nil, nil, nil, true)
}

func (c *Client) UpdateInventoryQuantity(ctx context.Context, id int64, quantity models.Decimal) (*models.InventoryItem, error) {

	var out models.InventoryItem

	path := fmt.Sprintf("/inventory/%d/update_quantity/", id)
	body := models.UpdateInventoryQuantityRequest{Quantity: quantity}

	if err := c.call(ctx, http.MethodPost, "/inventory/{id}/update_quantity/", path, nil, body, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}
