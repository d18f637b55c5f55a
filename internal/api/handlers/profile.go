package handlers

import (
	"context"
	"net/http"

	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/utils"
	"github.com/freshplate/ordering-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ProfileAPI is the slice of the upstream client the profile handler needs.
type ProfileAPI interface {
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
}

type ProfileHandler struct {
	api       ProfileAPI
	validator *validator.Validate
}

func NewProfileHandler(api ProfileAPI) *ProfileHandler {
	return &ProfileHandler{
		api:       api,
		validator: validator.New(),
	}
}

func (h *ProfileHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		user, err := h.api.Profile(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *ProfileHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		user, err := h.api.UpdateProfile(r.Context(), req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
