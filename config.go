package mealbook

import (
	"errors"
	"net/url"
	"time"
)

// Config defines a public type used by mealbook APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Booking BookingConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by mealbook APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	BaseURL string
	// Timeout bounds every request end-to-end; 0 falls back to the HTTP
	// client's own default.
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by mealbook APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RedisPrefix namespaces the persisted fields when a Redis store is used.
	RedisPrefix string
	// FilePath, when set and no explicit store is injected, selects a
	// file-backed store at this path.
	FilePath string
}

/*
====================================
BOOKING CONFIG
====================================
*/

// BookingConfig defines a public type used by mealbook APIs.
//
// BookingConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BookingConfig struct {
	// Holidays lists booking-blocked dates in 2006-01-02 form.
	Holidays []string
	// HolidayFile points at a JSON array of additional holiday dates.
	HolidayFile string
	// MaxAdvanceDays caps how far ahead a booking may start; 0 disables the
	// window check entirely.
	MaxAdvanceDays int
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by mealbook APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by mealbook APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: a 15 second request
// timeout, audit and metrics disabled, and no booking window cap.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   15 * time.Second,
			UserAgent: "mealbook-go",
		},
		Session: SessionConfig{
			RedisPrefix: "mb",
		},
		Booking: BookingConfig{
			MaxAdvanceDays: 0,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Booking.Holidays != nil {
		out.Booking.Holidays = append([]string(nil), cfg.Booking.Holidays...)
	}
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL is required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.New("API BaseURL must be an absolute http(s) URL")
	}
	if c.API.Timeout < 0 {
		return errors.New("API Timeout must not be negative")
	}
	if c.Booking.MaxAdvanceDays < 0 {
		return errors.New("Booking MaxAdvanceDays must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}
