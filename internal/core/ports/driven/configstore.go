package driven

// ConfigStore provides persistent application configuration.
// Keys use dot notation (e.g. "api.url", "upload.concurrency").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Path returns the backing file path.
	Path() string
}
