package handlers

import (
	"context"
	"net/http"

	"github.com/freshplate/ordering-client/internal/api/middleware"
	"github.com/freshplate/ordering-client/internal/cart"
	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/utils"
	"github.com/freshplate/ordering-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// OrdersAPI is the slice of the upstream client the order handler needs.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, items []cart.LineItem, deliveryAddress string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	StaffOrders(ctx context.Context, status string) (*models.StaffOrdersPage, error)
	ApproveOrder(ctx context.Context, id int64) (*models.Order, error)
	RejectOrder(ctx context.Context, id int64, reason string) (*models.Order, error)
}

type OrderHandler struct {
	api       OrdersAPI
	store     *cart.Store
	validator *validator.Validate
}

func NewOrderHandler(api OrdersAPI, store *cart.Store) *OrderHandler {
	return &OrderHandler{
		api:       api,
		store:     store,
		validator: validator.New(),
	}
}

// Checkout submits the current cart as an order. The cart is cleared only
// after the upstream accepts; a rejected or failed submission leaves it
// exactly as it was.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		items := h.store.Items()
		if len(items) == 0 {
			response.Error(w, errors.BadRequestError("Cart is empty"))
			return
		}

		order, err := h.api.CreateOrder(r.Context(), items, req.DeliveryAddress)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Order submission failed", "error", err.Error())
			response.Error(w, err)
			return
		}

		h.store.Clear()

		middleware.LoggerFromContext(r.Context()).Info("Order placed", "order_id", order.ID)
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orders, err := h.api.ListOrders(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		order, err := h.api.GetOrder(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// StaffList serves the kitchen dashboard; the optional status query narrows
// the page to one state.
func (h *OrderHandler) StaffList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, err := h.api.StaffOrders(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

func (h *OrderHandler) Approve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		order, err := h.api.ApproveOrder(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order approved", "order_id", id)
		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) Reject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.RejectOrderRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		order, err := h.api.RejectOrder(r.Context(), id, req.Reason)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order rejected", "order_id", id)
		response.Success(w, http.StatusOK, order)
	}
}
