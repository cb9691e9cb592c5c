package config

import (
	"fmt"
	"time"
)

const defaultBaseURL = "https://yosemite.org/wp-content/plugins/wildtrails/query.php"

// APIConfig defines the reservation backend endpoint.
type APIConfig struct {
	// BaseURL is the wildtrails query endpoint.
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be non-negative")
	}
	return nil
}

// WindowConfig defines the walk-up reporting window.
type WindowConfig struct {
	// Start is the first reported date in YYYY-MM-DD form. Empty means
	// today in park-local time, resolved at the command boundary.
	Start string `json:"start"`
	// Days is the window length in days, inclusive of the start date.
	Days int `json:"days"`
}

// SetDefaults applies sane defaults.
func (c *WindowConfig) SetDefaults() {
	if c.Days == 0 {
		c.Days = 15
	}
}

// Validate checks mandatory fields.
func (c WindowConfig) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("window days must be positive, got %d", c.Days)
	}
	if c.Start != "" {
		if _, err := time.Parse("2006-01-02", c.Start); err != nil {
			return fmt.Errorf("invalid window start %q: %w", c.Start, err)
		}
	}
	return nil
}

// StartDate parses Start. ok is false when no explicit start is configured.
func (c WindowConfig) StartDate() (t time.Time, ok bool, err error) {
	if c.Start == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse("2006-01-02", c.Start)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid window start %q: %w", c.Start, err)
	}
	return t, true, nil
}

// OutputConfig defines where the CSV report goes.
type OutputConfig struct {
	// Path is the output file; "-" writes to standard output.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "-"
	}
}

// LoggingConfig defines log verbosity.
type LoggingConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %s", c.Level)
}
