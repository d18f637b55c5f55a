package models

import "time"

type NotificationType string

const (
	NotificationNewOrder     NotificationType = "new_order"
	NotificationApproved     NotificationType = "order_approved"
	NotificationRejected     NotificationType = "order_rejected"
	NotificationOutOfStock   NotificationType = "order_out_of_stock"
	NotificationStatusUpdate NotificationType = "order_status_update"
	NotificationDelivered    NotificationType = "order_delivered"
)

// Notification is a read-only projection of server state. IsRead may be
// flipped locally as an optimistic update, subject to reconciliation on
// the next refresh.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Order     *int64           `json:"order,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
