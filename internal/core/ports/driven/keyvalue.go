package driven

// KeyValueStore persists string values under string keys for one installation.
// Implementations must be safe for concurrent use within a process.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// A missing key yields an empty string and a nil error.
	Get(key string) (string, error)

	// Set stores value under key and persists it immediately.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Path describes where values are persisted.
	Path() string
}
