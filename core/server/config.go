package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// DataDir is the only directory whose files API requests may read or
	// write. Empty restricts requests to object storage locations.
	DataDir string `mapstructure:"data_dir" default:""`
	// MaxJobs is the number of background comparisons kept for polling.
	MaxJobs int `mapstructure:"max_jobs" default:"100"`
}

// Address returns the listen address for fiber.
func (c Config) Address() string {
	return ":" + c.Port
}

// IsAuthEnabled reports whether requests must carry the API key.
func (c Config) IsAuthEnabled() bool {
	return c.ApiKey != ""
}
