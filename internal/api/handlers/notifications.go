package handlers

import (
	"net/http"

	"github.com/freshplate/ordering-client/internal/api/middleware"
	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/notifications"
	"github.com/freshplate/ordering-client/internal/utils"
	"github.com/freshplate/ordering-client/internal/utils/response"
)

type NotificationHandler struct {
	poller *notifications.Poller
}

func NewNotificationHandler(poller *notifications.Poller) *NotificationHandler {
	return &NotificationHandler{poller: poller}
}

type notificationsPayload struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func (h *NotificationHandler) payload() notificationsPayload {
	return notificationsPayload{
		Notifications: h.poller.Notifications(),
		UnreadCount:   h.poller.Unread(),
	}
}

// List refreshes from upstream before responding; a failed refresh still
// serves the last good snapshot so the bell never goes blank.
func (h *NotificationHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.poller.Refresh(r.Context()); err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Notification refresh failed", "error", err.Error())
		}

		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *NotificationHandler) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.PathID(r)
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := h.poller.MarkRead(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.payload())
	}
}

func (h *NotificationHandler) MarkAllRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.poller.MarkAllRead(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.payload())
	}
}
