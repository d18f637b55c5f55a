package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/freshplate/ordering-client/internal/kvstore"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Post-login landing routes by role.
const (
	StaffLandingPath    = "/staff/dashboard"
	CustomerLandingPath = "/customer/dashboard"
)

// Holder owns the current identity and bearer credentials. Invariant: the
// user record and access token are set and cleared together; the session
// is authenticated iff both are present. The holder performs no network
// calls; the login flow populates it after the gateway resolves the HTTP
// exchange.
type Holder struct {
	mu           sync.Mutex
	kv           kvstore.Store
	user         *models.User
	accessToken  string
	refreshToken string
}

// New restores any persisted session. A mirror violating the invariant
// (user without token or vice versa) is cleared rather than half-restored.
func New(kv kvstore.Store) *Holder {

	h := &Holder{kv: kv}

	access, _, err := kv.Get(kvstore.KeyAccessToken)
	if err != nil {
		slog.Warn("Failed to read persisted access token", slog.String("error", err.Error()))

		return h
	}

	refresh, _, err := kv.Get(kvstore.KeyRefreshToken)
	if err != nil {
		slog.Warn("Failed to read persisted refresh token", slog.String("error", err.Error()))

		return h
	}

	rawUser, ok, err := kv.Get(kvstore.KeyUser)
	if err != nil {
		slog.Warn("Failed to read persisted user", slog.String("error", err.Error()))

		return h
	}

	var user *models.User

	if ok {
		user = &models.User{}
		if err := json.Unmarshal([]byte(rawUser), user); err != nil {
			slog.Warn("Discarding malformed persisted user", slog.String("error", err.Error()))
			user = nil
		}
	}

	if user == nil || access == "" {
		// one half of the pair is missing, clear the whole mirror
		h.clearMirror()

		return h
	}

	h.user = user
	h.accessToken = access
	h.refreshToken = refresh

	return h
}

// Login unconditionally overwrites the session state and its persisted
// mirror.
func (h *Holder) Login(user models.User, accessToken, refreshToken string) {

	h.mu.Lock()
	defer h.mu.Unlock()

	h.user = &user
	h.accessToken = accessToken
	h.refreshToken = refreshToken

	raw, err := json.Marshal(user)
	if err != nil {
		slog.Error("Failed to marshal user for persistence", slog.String("error", err.Error()))
	} else if err := h.kv.Set(kvstore.KeyUser, string(raw)); err != nil {
		slog.Warn("Failed to persist user", slog.String("error", err.Error()))
	}

	if err := h.kv.Set(kvstore.KeyAccessToken, accessToken); err != nil {
		slog.Warn("Failed to persist access token", slog.String("error", err.Error()))
	}

	if err := h.kv.Set(kvstore.KeyRefreshToken, refreshToken); err != nil {
		slog.Warn("Failed to persist refresh token", slog.String("error", err.Error()))
	}
}

// Logout unconditionally clears the session state and its persisted mirror.
func (h *Holder) Logout() {

	h.mu.Lock()
	defer h.mu.Unlock()

	h.user = nil
	h.accessToken = ""
	h.refreshToken = ""
	h.clearMirror()
}

// SetAccessToken silently replaces the access token after a refresh
// exchange, leaving the user record and refresh token untouched.
func (h *Holder) SetAccessToken(accessToken string) {

	h.mu.Lock()
	defer h.mu.Unlock()

	h.accessToken = accessToken

	if err := h.kv.Set(kvstore.KeyAccessToken, accessToken); err != nil {
		slog.Warn("Failed to persist access token", slog.String("error", err.Error()))
	}
}

func (h *Holder) User() (models.User, bool) {

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.user == nil {
		return models.User{}, false
	}

	return *h.user, true
}

func (h *Holder) AccessToken() string {

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.accessToken
}

func (h *Holder) RefreshToken() string {

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.refreshToken
}

func (h *Holder) IsAuthenticated() bool {

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.user != nil && h.accessToken != ""
}

// TokenExpiry reads the exp claim of the held access token without
// verifying its signature; verification is the server's job. Returns false
// when there is no token or it carries no parsable expiry.
func (h *Holder) TokenExpiry() (time.Time, bool) {

	h.mu.Lock()
	token := h.accessToken
	h.mu.Unlock()

	if token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// caller holds the lock (or is in single-threaded construction)
func (h *Holder) clearMirror() {

	for _, key := range []string{kvstore.KeyUser, kvstore.KeyAccessToken, kvstore.KeyRefreshToken} {
		if err := h.kv.Delete(key); err != nil {
			slog.Warn("Failed to clear persisted session key", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}

// RedirectPath resolves the post-login landing route for a role. Anything
// other than the restaurant role, including an unknown or missing one,
// lands on the customer route, so an unrecognized role can never reach the
// staff surface.
func RedirectPath(role string) string {

	if role == models.RoleRestaurant {
		return StaffLandingPath
	}

	return CustomerLandingPath
}
