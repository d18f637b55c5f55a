package gateway

import (
	"context"
	"net/http"

	"github.com/freshplate/ordering-client/internal/models"
)

// Login exchanges credentials for an identity and a bearer token pair. The
// caller (login flow) is responsible for handing the result to the session
// holder.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {

	var out models.LoginResponse

	if err := c.call(ctx, http.MethodPost, "/login/", "/login/", nil, req, &out, false); err != nil {
		return nil, err
	}

	return &out, nil
}

// Register creates an account. Field-level validation errors come back
// keyed by field name on the returned AppError.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {

	var out models.User

	if err := c.call(ctx, http.MethodPost, "/register/", "/register/", nil, req, &out, false); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {

	var out models.User

	if err := c.call(ctx, http.MethodGet, "/profile/", "/profile/", nil, nil, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {

	var out models.User

	if err := c.call(ctx, http.MethodPut, "/profile/", "/profile/", nil, req, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}
