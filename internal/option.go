package internal

// Option configures the application before Run starts it.
type Option func(*application)

// application collects the settings applied through options.
type application struct {
	config *Config
}

// WithConfig supplies the loaded configuration. Run fails without it.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
