package domain

// Config represents the application configuration.
type Config struct {
	GatewayURL string    // Base URL of the auth+storage service (required)
	AnonKey    string    // Public API key for the service (required)
	Log        LogConfig // [log] settings
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks that the required gateway settings are present.
func (c *Config) Validate() error {
	if c.GatewayURL == "" || c.AnonKey == "" {
		return ErrMissingConfig
	}
	return nil
}
