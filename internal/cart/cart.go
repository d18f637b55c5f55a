package cart

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/freshplate/ordering-client/internal/kvstore"
	"github.com/freshplate/ordering-client/internal/metrics"
	"github.com/freshplate/ordering-client/internal/models"
)

// LineItem is one distinct food entry in the cart. Name and price are
// snapshots taken when the item was added; catalog changes do not reach
// items already in the cart. The JSON tags are the persisted wire shape.
type LineItem struct {
	FoodID    int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Store owns the shopping cart: an ordered collection of line items unique
// by food ID, with a subtotal recomputed inside every mutation. Mutations
// never fail on local state; every change is mirrored synchronously into
// the key-value store, and a write failure is logged without rolling the
// in-memory state back.
//
// A Store is constructed once at startup and injected where needed; there
// is no package-level instance.
type Store struct {
	mu       sync.Mutex
	kv       kvstore.Store
	items    []LineItem
	subtotal float64
}

// New restores the cart mirrored under the cart key, if any. A malformed
// mirror is discarded and the cart starts empty; a missing one is a normal
// first run.
func New(kv kvstore.Store) *Store {

	s := &Store{kv: kv}

	raw, ok, err := kv.Get(kvstore.KeyCart)
	if err != nil {
		slog.Warn("Failed to read persisted cart, starting empty", slog.String("error", err.Error()))

		return s
	}

	if !ok {
		return s
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("Discarding malformed persisted cart", slog.String("error", err.Error()))

		if err := kv.Delete(kvstore.KeyCart); err != nil {
			slog.Warn("Failed to delete malformed persisted cart", slog.String("error", err.Error()))
		}

		return s
	}

	// drop lines that cannot exist by invariant (quantity >= 1)
	for _, item := range items {
		if item.Quantity >= 1 {
			s.items = append(s.items, item)
		}
	}

	s.subtotal = computeSubtotal(s.items)

	return s
}

// AddItem merges by food ID: an existing line gains quantity, a new food
// appends a line with name and price snapshotted from the catalog record.
// Quantities below one are treated as one. Always succeeds.
func (s *Store) AddItem(food models.Food, quantity int) {

	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].FoodID == food.ID {
			s.items[i].Quantity += quantity
			s.commit("add")

			return
		}
	}

	s.items = append(s.items, LineItem{
		FoodID:    food.ID,
		Name:      food.Name,
		UnitPrice: food.Price.Float64(),
		Image:     food.Image,
		Quantity:  quantity,
	})
	s.commit("add")
}

// RemoveItem drops the line if present; absent is a no-op, not an error.
func (s *Store) RemoveItem(foodID int64) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].FoodID == foodID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.commit("remove")

			return
		}
	}
}

// UpdateQuantity sets the line's quantity exactly (not additive). A value
// of zero or below removes the line instead, keeping the quantity >= 1
// invariant. Absent food IDs are a no-op.
func (s *Store) UpdateQuantity(foodID int64, quantity int) {

	if quantity <= 0 {
		s.RemoveItem(foodID)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].FoodID == foodID {
			s.items[i].Quantity = quantity
			s.commit("update")

			return
		}
	}
}

// Clear empties the cart. Callers sequencing a checkout must invoke this
// only after the submission succeeded, never concurrently with it.
func (s *Store) Clear() {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.commit("clear")
}

// Item looks a line up by food ID; the view layer uses this to decide
// between an "Add" button and a quantity stepper.
func (s *Store) Item(foodID int64) (LineItem, bool) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.FoodID == foodID {
			return item, true
		}
	}

	return LineItem{}, false
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)

	return items
}

// Subtotal is the sum of price*quantity over all lines, excluding any
// delivery fee.
func (s *Store) Subtotal() float64 {

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.subtotal
}

// ItemCount is the total quantity across all lines, for the cart badge.
func (s *Store) ItemCount() int {

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

// commit recomputes the subtotal and mirrors the items into the key-value
// store. Runs inside every mutation so the subtotal can never go stale.
// Caller holds the lock.
func (s *Store) commit(op string) {

	s.subtotal = computeSubtotal(s.items)
	metrics.ObserveCartMutation(op)

	raw, err := json.Marshal(s.items)
	if err != nil {
		slog.Error("Failed to marshal cart for persistence", slog.String("error", err.Error()))

		return
	}

	if err := s.kv.Set(kvstore.KeyCart, string(raw)); err != nil {
		slog.Warn("Failed to persist cart", slog.String("error", err.Error()))
	}
}

func computeSubtotal(items []LineItem) float64 {

	var subtotal float64

	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	return subtotal
}
