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

// CatalogAPI is the slice of the upstream client the catalog handler needs.
type CatalogAPI interface {
	ListFoods(ctx context.Context) ([]models.Food, error)
	GetFood(ctx context.Context, id int64) (*models.Food, error)
	CreateFood(ctx context.Context, req models.CreateFoodRequest) (*models.Food, error)
	UpdateFood(ctx context.Context, id int64, req models.UpdateFoodRequest) (*models.Food, error)
	DeleteFood(ctx context.Context, id int64) error
}

type CatalogHandler struct {
	api       CatalogAPI
	validator *validator.Validate
}

func NewCatalogHandler(api CatalogAPI) *CatalogHandler {
	return &CatalogHandler{
		api:       api,
		validator: validator.New(),
	}
}

func (h *CatalogHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		foods, err := h.api.ListFoods(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, foods)
	}
}

func (h *CatalogHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		food, err := h.api.GetFood(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, food)
	}
}

func (h *CatalogHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateFoodRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		food, err := h.api.CreateFood(r.Context(), req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, food)
	}
}

func (h *CatalogHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.UpdateFoodRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		food, err := h.api.UpdateFood(r.Context(), id, req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, food)
	}
}

func (h *CatalogHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := h.api.DeleteFood(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"id": id})
	}
}
