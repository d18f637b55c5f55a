package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	appErrors "github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/config"
	"github.com/freshplate/ordering-client/internal/gateway"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	value, ok := m.data[key]

	return value, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.data[key] = value

	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.data, key)

	return nil
}

func (m *memStore) Close() error { return nil }

func newTestClient(t *testing.T, handler http.Handler) (*gateway.Client, *session.Holder, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.Timeout = 5 * time.Second

	sess := session.New(newMemStore())

	return gateway.New(cfg, sess), sess, server
}

func loggedIn(sess *session.Holder) {
	sess.Login(models.User{ID: 1, Username: "dana", Role: models.RoleCustomer}, "access-1", "refresh-1")
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/login/", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			var body models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "dana@example.com", body.Email)

			json.NewEncoder(w).Encode(map[string]any{
				"user":    map[string]any{"id": 1, "username": "dana", "email": "dana@example.com", "role": "customer"},
				"access":  "access-1",
				"refresh": "refresh-1",
			})
		}))

		// Act
		resp, err := client.Login(t.Context(), models.LoginRequest{Email: "dana@example.com", Password: "hunter22!"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "dana", resp.User.Username)
		assert.Equal(t, "access-1", resp.Access)
		assert.Equal(t, "refresh-1", resp.Refresh)
	})

	t.Run("Failure - Message Surfaced Verbatim", func(t *testing.T) {
		// Arrange
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
		}))

		// Act
		_, err := client.Login(t.Context(), models.LoginRequest{Email: "dana@example.com", Password: "wrong-pass"})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	})
}

func TestRegisterFieldErrors(t *testing.T) {
	// Arrange: DRF-style field-keyed validation body
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"username": []string{"A user with that username already exists."},
			"email":    []string{"Enter a valid email address."},
		})
	}))

	// Act
	_, err := client.Register(t.Context(), models.RegisterRequest{Username: "dana", Password: "hunter22!", Email: "bad"})

	// Assert
	require.Error(t, err)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, []string{"A user with that username already exists."}, appErr.Fields["username"])
	assert.Equal(t, []string{"Enter a valid email address."}, appErr.Fields["email"])
}

func TestBearerAttachment(t *testing.T) {
	// Arrange
	var gotAuth string

	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Food{})
	}))
	loggedIn(sess)

	// Act
	_, err := client.ListFoods(t.Context())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-1", gotAuth)
}

func TestRefreshRetryPolicy(t *testing.T) {
	t.Run("Success - Exactly One Refresh And One Replay", func(t *testing.T) {
		// Arrange
		var foodCalls, refreshCalls atomic.Int32

		client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/foods/":
				foodCalls.Add(1)

				if r.Header.Get("Authorization") != "Bearer access-2" {
					w.WriteHeader(http.StatusUnauthorized)
					json.NewEncoder(w).Encode(map[string]string{"detail": "Token expired"})

					return
				}

				json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Pad Thai", "price": "10.00", "available": true}})
			case "/token/refresh/":
				refreshCalls.Add(1)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "refresh-1", body["refresh"])

				json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		}))
		loggedIn(sess)

		// Act
		foods, err := client.ListFoods(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "Pad Thai", foods[0].Name)
		assert.Equal(t, int32(2), foodCalls.Load(), "original call plus exactly one replay")
		assert.Equal(t, int32(1), refreshCalls.Load())
		assert.Equal(t, "access-2", sess.AccessToken(), "silently replaced access token")
		assert.True(t, sess.IsAuthenticated())
	})

	t.Run("Failure - Refresh Rejected Forces Logout", func(t *testing.T) {
		// Arrange
		client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/foods/":
				w.WriteHeader(http.StatusUnauthorized)
			case "/token/refresh/":
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired"})
			}
		}))
		loggedIn(sess)

		// Act
		_, err := client.ListFoods(t.Context())

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.False(t, sess.IsAuthenticated(), "irrecoverable refresh failure clears the session")
	})

	t.Run("Failure - 401 On Replay Forces Logout", func(t *testing.T) {
		// Arrange
		client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/foods/":
				w.WriteHeader(http.StatusUnauthorized)
			case "/token/refresh/":
				json.NewEncoder(w).Encode(map[string]string{"access": "access-2"})
			}
		}))
		loggedIn(sess)

		// Act
		_, err := client.ListFoods(t.Context())

		// Assert
		require.Error(t, err)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("No Refresh Without A Refresh Token", func(t *testing.T) {
		// Arrange
		var refreshCalls atomic.Int32

		client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/token/refresh/" {
				refreshCalls.Add(1)
			}

			w.WriteHeader(http.StatusUnauthorized)
		}))
		sess.Login(models.User{ID: 1, Username: "dana"}, "access-1", "")

		// Act
		_, err := client.ListFoods(t.Context())

		// Assert
		require.Error(t, err)
		assert.Equal(t, int32(0), refreshCalls.Load())
		assert.False(t, sess.IsAuthenticated())
	})
}

func TestNetworkError(t *testing.T) {
	// Arrange: a server that is already gone
	client, sess, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	loggedIn(sess)
	server.Close()

	// Act
	_, err := client.ListFoods(t.Context())

	// Assert
	require.Error(t, err)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeNetwork, appErr.Code)
}

func TestDecodeError(t *testing.T) {
	// Arrange: 200 with a body that is not the expected shape
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	loggedIn(sess)

	// Act
	_, err := client.ListFoods(t.Context())

	// Assert
	require.Error(t, err)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeDecode, appErr.Code)
}

func TestDecimalPriceForms(t *testing.T) {
	// Arrange: upstream emits decimals as strings, older deployments as
	// numbers; both must decode
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"name":"Pad Thai","price":"10.50","available":true},
			{"id":2,"name":"Soup","price":4.25,"available":true}
		]`))
	}))
	loggedIn(sess)

	// Act
	foods, err := client.ListFoods(t.Context())

	// Assert
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, 10.50, foods[0].Price.Float64())
	assert.Equal(t, 4.25, foods[1].Price.Float64())
}
