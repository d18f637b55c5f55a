package cart_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/freshplate/ordering-client/internal/cart"
	"github.com/freshplate/ordering-client/internal/kvstore"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory kvstore.Store for tests that do not need durability
type memStore struct {
	data    map[string]string
	setErr  error
	setTally int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	value, ok := m.data[key]

	return value, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.setTally++

	if m.setErr != nil {
		return m.setErr
	}

	m.data[key] = value

	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.data, key)

	return nil
}

func (m *memStore) Close() error { return nil }

func food(id int64, name string, price float64) models.Food {
	return models.Food{ID: id, Name: name, Price: models.Decimal(price), Available: true}
}

func TestAddItem(t *testing.T) {
	t.Run("Success - New Line Item", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())

		// Act
		store.AddItem(food(1, "Pad Thai", 1000), 2)

		// Assert
		item, ok := store.Item(1)
		require.True(t, ok)
		assert.Equal(t, "Pad Thai", item.Name)
		assert.Equal(t, 1000.0, item.UnitPrice)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, 2000.0, store.Subtotal())
		assert.Equal(t, 2, store.ItemCount())
	})

	t.Run("Success - Same Food Merges Into One Line", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())

		// Act
		store.AddItem(food(7, "Ramen", 2000), 1)
		store.AddItem(food(7, "Ramen", 2000), 2)

		// Assert
		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, 6000.0, store.Subtotal())
	})

	t.Run("Success - Quantity Below One Defaults To One", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())

		// Act
		store.AddItem(food(3, "Gyoza", 500), 0)

		// Assert
		item, ok := store.Item(3)
		require.True(t, ok)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("Success - Price Snapshotted At Add Time", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())
		f := food(4, "Curry", 900)
		store.AddItem(f, 1)

		// Act: catalog price changes after the item is in the cart
		f.Price = models.Decimal(1200)
		store.AddItem(f, 1)

		// Assert: the line keeps the original snapshot
		item, ok := store.Item(4)
		require.True(t, ok)
		assert.Equal(t, 900.0, item.UnitPrice)
		assert.Equal(t, 1800.0, store.Subtotal())
	})

	t.Run("Success - Insertion Order Preserved", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())

		// Act
		store.AddItem(food(2, "Soup", 300), 1)
		store.AddItem(food(1, "Salad", 400), 1)
		store.AddItem(food(2, "Soup", 300), 1)

		// Assert
		items := store.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(2), items[0].FoodID)
		assert.Equal(t, int64(1), items[1].FoodID)
	})
}

func TestRemoveItem(t *testing.T) {
	// Arrange
	store := cart.New(newMemStore())
	store.AddItem(food(1, "Pad Thai", 1000), 2)
	store.AddItem(food(2, "Soup", 300), 1)

	// Act
	store.RemoveItem(1)

	// Assert
	_, ok := store.Item(1)
	assert.False(t, ok)
	assert.Equal(t, 300.0, store.Subtotal())

	// removing an absent item is a no-op
	store.RemoveItem(99)
	assert.Len(t, store.Items(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("Success - Absolute Not Additive", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())
		store.AddItem(food(1, "Pad Thai", 1000), 2)

		// Act
		store.UpdateQuantity(1, 5)

		// Assert
		item, _ := store.Item(1)
		assert.Equal(t, 5, item.Quantity)
		assert.Equal(t, 5000.0, store.Subtotal())
	})

	t.Run("Success - Zero Removes The Line", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())
		store.AddItem(food(7, "Ramen", 2000), 3)

		// Act
		store.UpdateQuantity(7, 0)

		// Assert
		assert.Empty(t, store.Items())
		assert.Equal(t, 0.0, store.Subtotal())
	})

	t.Run("Success - Negative Removes The Line", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())
		store.AddItem(food(7, "Ramen", 2000), 3)

		// Act
		store.UpdateQuantity(7, -5)

		// Assert
		_, ok := store.Item(7)
		assert.False(t, ok)
	})

	t.Run("No-op - Absent Food ID", func(t *testing.T) {
		// Arrange
		store := cart.New(newMemStore())
		store.AddItem(food(1, "Pad Thai", 1000), 1)

		// Act
		store.UpdateQuantity(42, 3)

		// Assert
		assert.Len(t, store.Items(), 1)
		assert.Equal(t, 1000.0, store.Subtotal())
	})
}

func TestClear(t *testing.T) {
	// Arrange
	store := cart.New(newMemStore())
	store.AddItem(food(1, "Pad Thai", 1000), 2)
	store.AddItem(food(2, "Soup", 300), 1)

	// Act
	store.Clear()

	// Assert
	assert.Empty(t, store.Items())
	assert.Equal(t, 0.0, store.Subtotal())
	assert.Equal(t, 0, store.ItemCount())
}

// subtotal must match a recompute from current items after any sequence of
// mutations, and no quantity <= 0 may survive
func TestSubtotalInvariant(t *testing.T) {
	// Arrange
	store := cart.New(newMemStore())

	// Act
	store.AddItem(food(1, "A", 250), 2)
	store.AddItem(food(2, "B", 999), 1)
	store.AddItem(food(1, "A", 250), 3)
	store.UpdateQuantity(2, 4)
	store.RemoveItem(3)
	store.UpdateQuantity(1, -1)
	store.AddItem(food(3, "C", 100), 1)

	// Assert
	var expected float64
	for _, item := range store.Items() {
		require.GreaterOrEqual(t, item.Quantity, 1)
		expected += item.UnitPrice * float64(item.Quantity)
	}
	assert.Equal(t, expected, store.Subtotal())
}

func TestPersistenceRoundTrip(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "state.json")
	kv, err := kvstore.NewFileStore(path)
	require.NoError(t, err)

	store := cart.New(kv)
	store.AddItem(food(1, "Pad Thai", 1000), 2)
	store.AddItem(food(2, "Soup", 500), 1)

	// Act: reopen the backing file, as after a process restart
	reopenedKV, err := kvstore.NewFileStore(path)
	require.NoError(t, err)
	restored := cart.New(reopenedKV)

	// Assert
	assert.Equal(t, store.Items(), restored.Items())
	assert.Equal(t, 2500.0, restored.Subtotal())
}

func TestRestoreDiscardsMalformedMirror(t *testing.T) {
	// Arrange
	kv := newMemStore()
	kv.data[kvstore.KeyCart] = "{not json"

	// Act
	store := cart.New(kv)

	// Assert
	assert.Empty(t, store.Items())
	_, ok := kv.data[kvstore.KeyCart]
	assert.False(t, ok, "malformed mirror should be deleted")
}

func TestRestoreDropsInvalidQuantities(t *testing.T) {
	// Arrange
	kv := newMemStore()
	kv.data[kvstore.KeyCart] = `[{"id":1,"name":"A","price":100,"quantity":2},{"id":2,"name":"B","price":50,"quantity":0}]`

	// Act
	store := cart.New(kv)

	// Assert
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].FoodID)
	assert.Equal(t, 200.0, store.Subtotal())
}

// a failing mirror write must not fail or roll back the local mutation
func TestMutationSurvivesPersistenceFailure(t *testing.T) {
	// Arrange
	kv := newMemStore()
	store := cart.New(kv)
	kv.setErr = errors.New("disk full")

	// Act
	store.AddItem(food(1, "Pad Thai", 1000), 1)

	// Assert
	item, ok := store.Item(1)
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 1000.0, store.Subtotal())
	assert.Positive(t, kv.setTally, "a persistence write must have been attempted")
}
