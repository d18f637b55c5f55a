package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/freshplate/ordering-client/internal/api/middleware"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/session"
	"github.com/freshplate/ordering-client/internal/utils"
	"github.com/freshplate/ordering-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AuthAPI is the slice of the upstream client the session handler needs.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

type SessionHandler struct {
	api       AuthAPI
	session   *session.Holder
	validator *validator.Validate
}

func NewSessionHandler(api AuthAPI, sess *session.Holder) *SessionHandler {
	return &SessionHandler{
		api:       api,
		session:   sess,
		validator: validator.New(),
	}
}

// sessionPayload is what the view layer renders after any session change.
type sessionPayload struct {
	User         *models.User `json:"user"`
	RedirectPath string       `json:"redirect_path,omitempty"`
	TokenExpiry  *time.Time   `json:"token_expires_at,omitempty"`
}

func (h *SessionHandler) payload() sessionPayload {

	user, ok := h.session.User()
	if !ok {
		return sessionPayload{}
	}

	p := sessionPayload{
		User:         &user,
		RedirectPath: session.RedirectPath(user.Role),
	}

	if exp, ok := h.session.TokenExpiry(); ok {
		p.TokenExpiry = &exp
	}

	return p
}

func (h *SessionHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		resp, err := h.api.Login(r.Context(), req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Login failed", "error", err.Error())
			response.Error(w, err)
			return
		}

		h.session.Login(resp.User, resp.Access, resp.Refresh)

		middleware.LoggerFromContext(r.Context()).Info("Login succeeded", "user_id", resp.User.ID, "role", resp.User.Role)
		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *SessionHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RegisterRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		user, err := h.api.Register(r.Context(), req)
		if err != nil {
			response.Error(w, err)
			return
		}

		// Registration does not start a session; the view layer sends the
		// user through login next.
		response.Success(w, http.StatusCreated, user)
	}
}

func (h *SessionHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Logout()

		middleware.LoggerFromContext(r.Context()).Info("Logged out")
		response.Success(w, http.StatusOK, sessionPayload{})
	}
}

// Current reports the locally-held session without calling upstream.
func (h *SessionHandler) Current() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		response.Success(w, http.StatusOK, h.payload())
	}
}
