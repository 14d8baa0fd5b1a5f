package server

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/agentstation/docserve/pkg/constants"
	"github.com/agentstation/docserve/pkg/errors"
)

// Config holds server configuration.
type Config struct {
	// Listener settings
	Host string
	Port int

	// Directory to serve
	Root string

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		Root:            constants.DefaultRoot,
		ReadTimeout:     constants.ReadTimeout,
		WriteTimeout:    constants.WriteTimeout,
		IdleTimeout:     constants.IdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
	}
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DisplayURL returns the address users should open in a browser. Binding to
// all interfaces is shown as localhost.
func (c Config) DisplayURL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = constants.DisplayHost
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port))
}

// Validate checks the configuration for values the server cannot use.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.NewConfigError("port", fmt.Sprintf("port out of range: %d", c.Port), nil)
	}
	for name, d := range map[string]time.Duration{
		"read-timeout":     c.ReadTimeout,
		"write-timeout":    c.WriteTimeout,
		"idle-timeout":     c.IdleTimeout,
		"shutdown-timeout": c.ShutdownTimeout,
	} {
		if d < 0 {
			return errors.NewConfigError(name, "must not be negative", nil)
		}
	}
	return nil
}

// ParsePort parses a port string into an integer in the valid TCP range.
func ParsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, errors.NewConfigError("port", fmt.Sprintf("invalid port number: %s", portStr), err)
	}
	if port < 0 || port > 65535 {
		return 0, errors.NewConfigError("port", fmt.Sprintf("port out of range: %d", port), nil)
	}
	return port, nil
}
