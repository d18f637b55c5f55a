package middleware

import (
	"net/http"

	"github.com/freshplate/ordering-client/internal/errors"
	"github.com/freshplate/ordering-client/internal/models"
	"github.com/freshplate/ordering-client/internal/session"
	"github.com/freshplate/ordering-client/internal/utils/response"
)

// SessionGuard gates routes on the locally-held session. The upstream API
// still enforces authorization on its side; this only stops obviously
// unauthenticated local calls before they leave the process.
type SessionGuard struct {
	session *session.Holder
}

func NewSessionGuard(sess *session.Holder) *SessionGuard {
	return &SessionGuard{session: sess}
}

func (g *SessionGuard) RequireSession(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if !g.session.IsAuthenticated() {
			LoggerFromContext(r.Context()).Warn("Rejected unauthenticated request")
			response.Error(w, errors.UnauthorizedError("Not logged in"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireStaff additionally requires the restaurant role. Anything else,
// including an unknown role, is denied; unrecognized roles never gain
// staff access.
func (g *SessionGuard) RequireStaff(next http.Handler) http.HandlerFunc {
	return g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		user, ok := g.session.User()
		if !ok || user.Role != models.RoleRestaurant {
			LoggerFromContext(r.Context()).Warn("Rejected non-staff request")
			response.Error(w, errors.ForbiddenError("Restaurant staff only"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}
