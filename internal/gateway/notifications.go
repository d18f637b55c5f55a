package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/freshplate/ordering-client/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {

	var out []models.Notification

	if err := c.call(ctx, http.MethodGet, "/notifications/", "/notifications/", nil, nil, &out, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {

	var out models.UnreadCountResponse

	if err := c.call(ctx, http.MethodGet, "/notifications/unread_count/", "/notifications/unread_count/", nil, nil, &out, true); err != nil {
		return 0, err
	}

	return out.UnreadCount, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {

	path := fmt.Sprintf("/notifications/%d/mark_as_read/", id)

	return c.call(ctx, http.MethodPost, "/notifications/{id}/mark_as_read/", path, nil, nil, nil, true)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {

	return c.call(ctx, http.MethodPost, "/notifications/mark_all_as_read/", "/notifications/mark_all_as_read/", nil, nil, nil, true)
}
