// Package constants provides shared constants used throughout docserve.
// This includes listening defaults, timeouts, file permissions, and the
// document conventions that decide which requests are rendered.
package constants

import "time"

// Listening defaults
const (
	// DefaultHost binds every interface
	DefaultHost = ""

	// DefaultPort is the port docserve listens on when none is configured
	DefaultPort = 8000

	// DefaultRoot is the directory served when none is configured
	DefaultRoot = "."

	// DisplayHost replaces an all-interfaces bind address in human-facing URLs
	DisplayHost = "localhost"
)

// Timeout constants define transport-level timeouts for the HTTP server
const (
	// ReadTimeout bounds reading an entire request
	ReadTimeout = 10 * time.Second

	// WriteTimeout bounds writing a response
	WriteTimeout = 10 * time.Second

	// IdleTimeout bounds keep-alive connections between requests
	IdleTimeout = 120 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on shutdown
	ShutdownTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Document conventions
const (
	// MarkupExtension is the suffix of documents rendered instead of served raw
	MarkupExtension = ".md"

	// ConfigName is the config file base name searched in the working and home directories
	ConfigName = ".docserve"

	// EnvPrefix prefixes every environment variable read by viper
	EnvPrefix = "DOCSERVE"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"
)
