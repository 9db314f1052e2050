package driven

// Well-known configuration keys.
const (
	// ConfigKeyDataDir is the root of all persisted state.
	ConfigKeyDataDir = "data_dir"

	// ConfigKeyAPIKey is the Anthropic API key.
	ConfigKeyAPIKey = "api_key"

	// ConfigKeyModel overrides the default model name.
	ConfigKeyModel = "model"

	// ConfigKeyTokenBudget overrides the default context token budget.
	ConfigKeyTokenBudget = "token_budget"

	// ConfigKeyYearFilter toggles year-based relevance narrowing.
	ConfigKeyYearFilter = "year_filter"

	// ConfigKeySelectedGroups is the persisted group selection.
	// Working-set state only; it carries no consistency guarantee
	// against groups added or removed since it was written.
	ConfigKeySelectedGroups = "selected_groups"

	// ConfigKeyCurrentSession is the current session pointer.
	ConfigKeyCurrentSession = "current_session"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
