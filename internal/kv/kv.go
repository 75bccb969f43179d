// Package kv provides the flat key/value capability kiosk persists
// through. The read tracker is its only in-tree consumer; it stores a
// handful of small JSON payloads under fixed keys.
package kv

// Store is a durable key/value capability.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key. ok is false when absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
	// List returns all stored keys in sorted order.
	List() ([]string, error)
	// Close releases the backing resources.
	Close() error
}
