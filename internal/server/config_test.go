package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docserve/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		host    string
		port    int
		addr    string
		display string
	}{
		{"", 8000, ":8000", "http://localhost:8000"},
		{"0.0.0.0", 8000, "0.0.0.0:8000", "http://localhost:8000"},
		{"::", 9000, "[::]:9000", "http://localhost:9000"},
		{"127.0.0.1", 8080, "127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"docs.internal", 80, "docs.internal:80", "http://docs.internal:80"},
		{"::1", 8000, "[::1]:8000", "http://[::1]:8000"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			cfg := Config{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.addr, cfg.Addr())
			assert.Equal(t, tt.display, cfg.DisplayURL())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = -1
	assert.ErrorIs(t, cfg.Validate(), errors.ErrInvalidInput)

	cfg = DefaultConfig()
	cfg.IdleTimeout = -time.Second
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "idle-timeout", cfgErr.Component)

	cfg = DefaultConfig()
	cfg.Port = 0
	assert.NoError(t, cfg.Validate())
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"8000", 8000, false},
		{"0", 0, false},
		{"65535", 65535, false},
		{"65536", 0, true},
		{"-1", 0, true},
		{"http", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePort(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
