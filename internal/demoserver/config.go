package demoserver

// Config holds configuration for the demo reporting backend.
type Config struct {
	// Port is the port on which the demo backend listens.
	Port int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port: 9090,
	}
}
