package dialogue

import "context"

// Store keeps per-user conversation state between turns. Implementations
// must also serialize turns per user: Lock blocks while another turn for
// the same user is in flight, which closes the rapid-double-send race on
// shared state.
type Store interface {
	// Lock acquires the per-user turn lock and returns its release func.
	Lock(userID string) (unlock func())
	// Get returns the user's manager, creating an idle one if absent.
	Get(ctx context.Context, userID string) (*Manager, error)
	// Put saves the user's manager and refreshes its idle TTL.
	Put(ctx context.Context, userID string, m *Manager) error
	// Close releases store resources.
	Close() error
}
