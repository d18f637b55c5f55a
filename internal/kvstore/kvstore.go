package kvstore

// Store is the durable, synchronous, string-keyed storage the client-owned
// state (cart, session) is mirrored into. It survives restarts; it is not
// lockable, so concurrent writers race with last-write-wins semantics.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Fixed keys for persisted client state. All values are strings; all are
// absent on first run.
const (
	KeyCart         = "cart"
	KeyUser         = "user"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)
