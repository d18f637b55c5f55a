package handlers

import (
	"context"
	"net/http"

	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/utils"
	"github.com/freshplate/ordering-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// InventoryAPI is the slice of the upstream client the inventory handler needs.
type InventoryAPI interface {
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
	CreateInventory(ctx context.Context, req models.CreateInventoryRequest) (*models.InventoryItem, error)
	UpdateInventory(ctx context.Context, id int64, req models.UpdateInventoryRequest) (*models.InventoryItem, error)
	DeleteInventory(ctx context.Context, id int64) error
	UpdateInventoryQuantity(ctx context.Context, id int64, quantity models.Decimal) (*models.InventoryItem, error)
}

type InventoryHandler struct {
	api       InventoryAPI
	validator *validator.Validate
}

func NewInventoryHandler(api InventoryAPI) *InventoryHandler {
	return &InventoryHandler{
		api:       api,
		validator: validator.New(),
	}
}

func (h *InventoryHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		items, err := h.api.ListInventory(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

func (h *InventoryHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateInventoryRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		item, err := h.api.CreateInventory(r.Context(), req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

func (h *InventoryHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.UpdateInventoryRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		item, err := h.api.UpdateInventory(r.Context(), id, req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

func (h *InventoryHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := h.api.DeleteInventory(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"id": id})
	}
}

func (h *InventoryHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.UpdateInventoryQuantityRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		item, err := h.api.UpdateInventoryQuantity(r.Context(), id, req.Quantity)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}
