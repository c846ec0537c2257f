package pymp

import (
	"os"

	"github.com/rs/zerolog"
)

type config struct {
	conf   *Config
	logger zerolog.Logger
	name   string
}

// Option configures a parallel region at entry.
type Option func(*config)

func defaultRegionConfig() config {
	return config{
		logger: defaultLogger,
	}
}

var defaultLogger = zerolog.New(os.Stderr).
	With().Timestamp().Logger().
	Level(zerolog.WarnLevel)

// WithConfig makes the region resolve its worker count from c instead of
// the process-wide [DefaultConfig]. Nested regions entered through the
// region's handle inherit c. It panics if c is nil.
func WithConfig(c *Config) Option {
	return func(cfg *config) {
		if c == nil {
			panic("pymp: WithConfig requires a non-nil Config")
		}
		cfg.conf = c
	}
}

// WithLogger routes the region's lifecycle and failure logging to l.
// The default logger writes to stderr at warn level and above.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithName attaches a name to the region for log attribution.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}
