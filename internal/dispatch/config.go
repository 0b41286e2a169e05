package dispatch

// Config holds dispatcher configuration options.
type Config struct {
	// LegacyMouseEvents mirrors primary pointer down, up, move and cancel
	// events into mouse-shaped shadow events.
	LegacyMouseEvents bool

	// CapturePrePass gives the mouse captor a first look at focus-routed
	// events whose path does not contain it.
	CapturePrePass bool

	// EnableMetrics enables dispatch statistics collection.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LegacyMouseEvents: true,
		CapturePrePass:    true,
		EnableMetrics:     false,
	}
}

// WithLegacyMouseEvents returns a copy of the config with mirroring set.
func (c Config) WithLegacyMouseEvents(enabled bool) Config {
	c.LegacyMouseEvents = enabled
	return c
}

// WithCapturePrePass returns a copy of the config with the captor pre-pass set.
func (c Config) WithCapturePrePass(enabled bool) Config {
	c.CapturePrePass = enabled
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
