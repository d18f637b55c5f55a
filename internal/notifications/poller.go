package notifications

import (
	"context"
	"sync"

	"github.com/freshplate/ordering-client/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// API is the slice of the gateway the poller consumes.
type API interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Poller holds an on-demand snapshot of server-owned notification state.
// There is no push channel and no built-in cadence; callers decide when
// to Refresh. Read-state mutations are optimistic two-phase updates: a
// local patch first, then reconciliation against the authoritative server
// list, which discards the patch if the server disagrees.
type Poller struct {
	mu        sync.Mutex
	api       API
	sanitizer *bluemonday.Policy
	items     []models.Notification
	unread    int
}

func NewPoller(api API) *Poller {

	return &Poller{
		api: api,
		// notification messages are server-composed free text rendered in
		// the UI; strip all markup before it reaches any renderer
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Refresh replaces the local snapshot wholesale; the server list is
// authoritative on every call, there is no incremental merge. Both fetches
// must succeed before either is applied.
func (p *Poller) Refresh(ctx context.Context) error {

	items, err := p.api.ListNotifications(ctx)
	if err != nil {
		return err
	}

	unread, err := p.api.UnreadCount(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].Message = p.sanitizer.Sanitize(items[i].Message)
	}

	p.mu.Lock()
	p.items = items
	p.unread = unread
	p.mu.Unlock()

	return nil
}

// MarkRead issues the mark-read request, optimistically flips the local
// item, then refreshes to reconcile the unread count. A failed request
// leaves local state untouched; the error is surfaced, never retried.
func (p *Poller) MarkRead(ctx context.Context, id int64) error {

	if err := p.api.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == id {
			if !p.items[i].IsRead {
				p.items[i].IsRead = true
				if p.unread > 0 {
					p.unread--
				}
			}

			break
		}
	}
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// MarkAllRead issues one bulk request; on success every local item flips
// to read and the counter zeroes directly, no follow-up refresh needed.
func (p *Poller) MarkAllRead(ctx context.Context) error {

	if err := p.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	for i := range p.items {
		p.items[i].IsRead = true
	}
	p.unread = 0
	p.mu.Unlock()

	return nil
}

// Notifications returns a copy of the current snapshot.
func (p *Poller) Notifications() []models.Notification {

	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]models.Notification, len(p.items))
	copy(items, p.items)

	return items
}

func (p *Poller) Unread() int {

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.unread
}
