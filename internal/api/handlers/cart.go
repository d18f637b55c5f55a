package handlers

import (
	"net/http"

	"github.com/freshplate/ordering-client/internal/cart"
	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/utils"
	"github.com/freshplate/ordering-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	store     *cart.Store
	validator *validator.Validate
}

func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{
		store:     store,
		validator: validator.New(),
	}
}

// cartPayload is the full cart snapshot; every mutation responds with it so
// the view layer never has to diff.
type cartPayload struct {
	Items     []cart.LineItem `json:"items"`
	Subtotal  float64         `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

func (h *CartHandler) payload() cartPayload {
	return cartPayload{
		Items:     h.store.Items(),
		Subtotal:  h.store.Subtotal(),
		ItemCount: h.store.ItemCount(),
	}
}

func (h *CartHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		h.store.AddItem(models.Food{
			ID:    req.FoodID,
			Name:  req.Name,
			Price: req.Price,
			Image: req.Image,
		}, req.Quantity)

		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.UpdateCartQuantityRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		h.store.UpdateQuantity(id, req.Quantity)

		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		h.store.RemoveItem(id)

		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.store.Clear()

		response.Success(w, http.StatusOK, h.payload())
	}
}
