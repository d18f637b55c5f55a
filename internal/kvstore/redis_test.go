package kvstore_test

import (
	"errors"
	"testing"

	"github.com/freshplate/ordering-client/internal/kvstore"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (kvstore.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return kvstore.NewRedisStore(client), mock
}

func TestRedisStoreGet(t *testing.T) {
	const key = "ordering_client:cart"

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectGet(key).SetVal(`[{"id":1}]`)

		// Act
		value, ok, err := store.Get(kvstore.KeyCart)

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss - Key Not Found", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectGet(key).SetErr(redis.Nil)

		// Act
		value, ok, err := store.Get(kvstore.KeyCart)

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		expectedErr := errors.New("redis connection error")
		mock.ExpectGet(key).SetErr(expectedErr)

		// Act
		_, ok, err := store.Get(kvstore.KeyCart)

		// Assert
		require.Error(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreSet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectSet("ordering_client:access_token", "tok", 0).SetVal("OK")

		// Act
		err := store.Set(kvstore.KeyAccessToken, "tok")

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		expectedErr := errors.New("write failed")
		mock.ExpectSet("ordering_client:access_token", "tok", 0).SetErr(expectedErr)

		// Act
		err := store.Set(kvstore.KeyAccessToken, "tok")

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestRedisStoreDelete(t *testing.T) {
	// Arrange
	store, mock := setupRedisStore(t)
	mock.ExpectDel("ordering_client:user").SetVal(1)

	// Act
	err := store.Delete(kvstore.KeyUser)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
