// Package storage provides the durable local key-value store the cart and
// session stores persist into. It is origin-scoped in the browser sense:
// one store per state directory, last write wins, no cross-process locking.
package storage

// Well-known keys. Kept as package constants so the cart, session and
// checkout packages cannot drift apart on spelling.
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "user"
	KeyCart      = "cart"
	KeyOrders    = "orders"
)

// Store is a small key-value persistence surface.
//
// Implementations: File (production), Memory (tests).
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool)

	// Set stores the value. Failures are best-effort for callers: a store
	// that cannot write degrades to state not surviving a restart.
	Set(key string, value []byte) error

	// Delete removes a key; deleting an absent key is not an error.
	Delete(key string) error

	// Clear removes every key.
	Clear() error
}
