package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/freshplate/ordering-client/internal/models"
)

func (c *Client) ListFoods(ctx context.Context) ([]models.Food, error) {

	var out []models.Food

	if err := c.call(ctx, http.MethodGet, "/foods/", "/foods/", nil, nil, &out, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetFood(ctx context.Context, id int64) (*models.Food, error) {

	var out models.Food

	path := fmt.Sprintf("/foods/%d/", id)
	if err := c.call(ctx, http.MethodGet, "/foods/{id}/", path, nil, nil, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreateFood(ctx context.Context, req models.CreateFoodRequest) (*models.Food, error) {

	var out models.Food

	if err := c.call(ctx, http.MethodPost, "/foods/", "/foods/", nil, req, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateFood(ctx context.Context, id int64, req models.UpdateFoodRequest) (*models.Food, error) {

	var out models.Food

	path := fmt.Sprintf("/foods/%d/", id)
	if err := c.call(ctx, http.MethodPut, "/foods/{id}/", path, nil, req, &out, true); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteFood(ctx context.Context, id int64) error {

	path := fmt.Sprintf("/foods/%d/", id)

	return c.call(ctx, http.MethodDelete, "/foods/{id}/", path, nil, nil, nil, true)
}
