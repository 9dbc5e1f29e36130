package instrumentation

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: drivesh)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active. When false, metric
	// recording is a no-op; when true, metrics are dumped to stdout on
	// shutdown via the periodic stdout exporter.
	Enabled bool
}

// DefaultConfig returns a Config with instrumentation disabled, the normal
// mode for an interactive shell.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "drivesh",
		ServiceVersion: "unknown",
		Enabled:        false,
	}
}
