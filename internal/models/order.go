package models

import "time"

// OrderStatus values mirror the server-owned order state machine. The
// client only renders these and requests transitions; it never enforces
// them.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on the way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID       int64   `json:"id,omitempty"`
	Food     int64   `json:"food"`
	FoodName string  `json:"food_name,omitempty"`
	Quantity int     `json:"quantity"`
	Price    Decimal `json:"price,omitempty"`
}

type Order struct {
	ID              int64       `json:"id"`
	Customer        int64       `json:"customer,omitempty"`
	CustomerName    string      `json:"customer_name,omitempty"`
	Status          OrderStatus `json:"status"`
	TotalPrice      Decimal     `json:"total_price"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at,omitempty"`
}

// CreateOrderItem is the wire shape the order-creation endpoint expects;
// cart line items are translated into it at the gateway boundary.
type CreateOrderItem struct {
	Food     int64 `json:"food"`
	Quantity int   `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	DeliveryAddress string            `json:"delivery_address"`
	Status          OrderStatus       `json:"status"`
}

// CheckoutRequest is what the view layer submits; the line items come from
// the cart store, never from the request body.
type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

// StaffOrdersPage is the canonical wrapped shape of the staff order list.
// Older backends return a bare list; the gateway folds that into this.
type StaffOrdersPage struct {
	Total  int     `json:"total"`
	Orders []Order `json:"orders"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}
