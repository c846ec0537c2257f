package pymp

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds the process-wide tunables consulted when a parallel region
// is entered. The zero value is not useful; start from [Defaults],
// [FromEnv], or [FromFile].
//
// Fields are plain mutable state. A region snapshots the values it needs
// at entry, so mutating a Config while a region is running affects only
// regions entered afterwards.
type Config struct {
	// Nested allows regions to be entered inside another region with
	// more than one worker. When false, a nested region always resolves
	// to a single worker.
	Nested bool `yaml:"nested"`

	// ThreadLimit caps the resolved worker count of every region.
	// Zero means no cap.
	ThreadLimit int `yaml:"thread_limit"`

	// NumThreads clamps the worker count per nesting level. A single
	// entry applies at every depth; with several entries, depths beyond
	// the last entry reuse it. Every entry must be positive.
	NumThreads []int `yaml:"num_threads"`
}

// ConfigError reports an invalid configuration value or an invalid
// thread-count request. It is always returned synchronously, never
// deferred into a running region.
type ConfigError struct {
	// Setting names the environment variable, file field, or parameter
	// at fault.
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pymp: invalid %s: %s", e.Setting, e.Reason)
}

// Defaults returns the built-in configuration: nesting disabled, no
// thread limit, and one worker per CPU at every depth.
func Defaults() *Config {
	return &Config{
		NumThreads: []int{runtime.NumCPU()},
	}
}

// FromEnv builds a Config from the environment, starting from [Defaults].
//
// Recognized variables, with the PYMP_ form winning when both are set:
//
//	PYMP_NESTED / OMP_NESTED             "TRUE" or "FALSE"
//	PYMP_THREAD_LIMIT / OMP_THREAD_LIMIT positive integer
//	PYMP_NUM_THREADS / OMP_NUM_THREADS   comma-separated positive integers,
//	                                     one per nesting level or a single
//	                                     value for all levels
func FromEnv() (*Config, error) {
	cfg := Defaults()

	if name, raw, ok := lookupEnv("NESTED"); ok {
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case "TRUE":
			cfg.Nested = true
		case "FALSE":
			cfg.Nested = false
		default:
			return nil, &ConfigError{name, fmt.Sprintf("want TRUE or FALSE, got %q", raw)}
		}
	}

	if name, raw, ok := lookupEnv("THREAD_LIMIT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			return nil, &ConfigError{name, fmt.Sprintf("want a positive integer, got %q", raw)}
		}
		cfg.ThreadLimit = n
	}

	if name, raw, ok := lookupEnv("NUM_THREADS"); ok {
		parts := strings.Split(raw, ",")
		counts := make([]int, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n <= 0 {
				return nil, &ConfigError{name,
					fmt.Sprintf("want comma-separated positive integers, got %q", raw)}
			}
			counts = append(counts, n)
		}
		cfg.NumThreads = counts
	}

	return cfg, nil
}

// FromFile builds a Config from a YAML document with the fields nested,
// thread_limit, and num_threads. Fields absent from the document keep
// their [Defaults] values.
func FromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pymp: reading config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, &ConfigError{path, err.Error()}
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(setting string) error {
	if c.ThreadLimit < 0 {
		return &ConfigError{setting, "thread limit must not be negative"}
	}
	for _, n := range c.NumThreads {
		if n <= 0 {
			return &ConfigError{setting,
				fmt.Sprintf("thread counts must be positive, got %d", n)}
		}
	}
	return nil
}

// lookupEnv returns the value of PYMP_<key>, falling back to OMP_<key>,
// together with the name of the variable that supplied it.
func lookupEnv(key string) (name, value string, ok bool) {
	for _, prefix := range [...]string{"PYMP_", "OMP_"} {
		name = prefix + key
		if value, ok = os.LookupEnv(name); ok {
			return name, value, true
		}
	}
	return "", "", false
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
	defaultErr  error
)

// DefaultConfig returns the process-wide configuration, loaded from the
// environment on first use. Regions entered without [WithConfig] consult
// it. The returned Config may be mutated; an environment parse error is
// returned on every call and by any region entry relying on it.
func DefaultConfig() (*Config, error) {
	defaultOnce.Do(func() {
		defaultCfg, defaultErr = FromEnv()
	})
	return defaultCfg, defaultErr
}
