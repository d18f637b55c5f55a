package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/freshplate/ordering-client/internal/cart"
	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/models"
)

// CreateOrder translates cart line items into the wire format the order
// endpoint expects. The cart store itself stays transport-agnostic; this
// boundary owns the transformation. The caller clears the cart only after
// this returns without error.
func (c *Client) CreateOrder(ctx context.Context, items []cart.LineItem, deliveryAddress string) (*models.Order, error) {

	req := models.CreateOrderRequest{
		Items:           make([]models.CreateOrderItem, 0, len(items)),
		DeliveryAddress: deliveryAddress,
		Status:          models.OrderStatusPending,
	}

	for _, item := range items {
		req.Items = append(req.Items, models.CreateOrderItem{
			Food:     item.FoodID,
			Quantity: item.Quantity,
		})
	}

	var out models.Order

	if err := c.call(ctx, http.MethodPost, "/orders/", "/orders/", nil, req, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {

	var out []models.Order

	if err := c.call(ctx, http.MethodGet, "/orders/", "/orders/", nil, nil, &out, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {

	var out models.Order

	path := fmt.Sprintf("/orders/%d/", id)
	if err := c.call(ctx, http.MethodGet, "/orders/{id}/", path, nil, nil, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

// StaffOrders lists all orders for restaurant staff, optionally filtered
// by status. The canonical response is the wrapped {total, orders} page;
// older backends return a bare list, which is folded into the same shape
// as a compatibility shim.
func (c *Client) StaffOrders(ctx context.Context, status string) (*models.StaffOrdersPage, error) {

	var query url.Values

	if status != "" {
		query = url.Values{"status": []string{status}}
	}

	var raw json.RawMessage

	if err := c.call(ctx, http.MethodGet, "/orders/staff_orders/", "/orders/staff_orders/", query, nil, &raw, true); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '[' {

		var orders []models.Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return nil, errors.DecodeError("Unexpected response shape from /orders/staff_orders/").WithError(err)
		}

		return &models.StaffOrdersPage{Total: len(orders), Orders: orders}, nil
	}

	var page models.StaffOrdersPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, errors.DecodeError("Unexpected response shape from /orders/staff_orders/").WithError(err)
	}

	return &page, nil
}

func (c *Client) ApproveOrder(ctx context.Context, id int64) (*models.Order, error) {

	var out models.Order

	path := fmt.Sprintf("/orders/%d/approve/", id)
	if err := c.call(ctx, http.MethodPost, "/orders/{id}/approve/", path, nil, nil, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

// RejectOrder cancels a pending order with a reason. Rejecting an already
// resolved order comes back as an opaque conflict from the server; no
// special handling here.
func (c *Client) RejectOrder(ctx context.Context, id int64, reason string) (*models.Order, error) {

	var out models.Order

	path := fmt.Sprintf("/orders/%d/reject/", id)
	body := models.RejectOrderRequest{Reason: reason}

	if err := c.call(ctx, http.MethodPost, "/orders/{id}/reject/", path, nil, body, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}
