package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/docserve/internal/server"
	"github.com/agentstation/docserve/pkg/constants"
	pkgerrors "github.com/agentstation/docserve/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Server configuration
	Host            string
	Port            int
	Root            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Configuration keys shared by viper, flags and the config file.
const (
	keyHost            = "host"
	keyPort            = "port"
	keyRoot            = "root"
	keyReadTimeout     = "read-timeout"
	keyWriteTimeout    = "write-timeout"
	keyIdleTimeout     = "idle-timeout"
	keyShutdownTimeout = "shutdown-timeout"
	keyConfig          = "config"
	keyVerbose         = "verbose"
	keyQuiet           = "quiet"
	keyNoColor         = "no-color"
	keyLogLevel        = "log-level"
)

// DefaultConfig returns the configuration used when no source sets a value.
func DefaultConfig() *Config {
	return &Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		Root:            constants.DefaultRoot,
		ReadTimeout:     constants.ReadTimeout,
		WriteTimeout:    constants.WriteTimeout,
		IdleTimeout:     constants.IdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
		LogFormat:       "auto",
		LogOutput:       "stderr",
	}
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (when flags is non-nil)
// 2. Environment variables (DOCSERVE_*)
// 3. .env files
// 4. Config file (.docserve.yaml in the working or home directory)
// 5. Defaults
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := newViper()

	configFile := v.GetString(keyConfig)
	if flags != nil {
		if f := flags.Lookup(keyConfig); f != nil && f.Changed {
			configFile = f.Value.String()
		}
	}
	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, pkgerrors.WrapConfig("flags", err)
		}
	}

	port, err := server.ParsePort(v.GetString(keyPort))
	if err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	config := &Config{
		Verbose: v.GetBool(keyVerbose),
		Quiet:   v.GetBool(keyQuiet),
		NoColor: v.GetBool(keyNoColor),

		ConfigFile: v.ConfigFileUsed(),

		Host:            v.GetString(keyHost),
		Port:            port,
		Root:            v.GetString(keyRoot),
		ReadTimeout:     v.GetDuration(keyReadTimeout),
		WriteTimeout:    v.GetDuration(keyWriteTimeout),
		IdleTimeout:     v.GetDuration(keyIdleTimeout),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),

		LogLevel:  v.GetString(keyLogLevel),
		LogFormat: getEnvOrDefault("LOG_FORMAT", defaults.LogFormat),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", defaults.LogOutput),
	}

	if strings.TrimSpace(config.Root) == "" {
		config.Root = constants.DefaultRoot
	}

	return config, nil
}

// newViper creates a viper instance with defaults and environment binding.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(keyHost, defaults.Host)
	v.SetDefault(keyPort, defaults.Port)
	v.SetDefault(keyRoot, defaults.Root)
	v.SetDefault(keyReadTimeout, defaults.ReadTimeout)
	v.SetDefault(keyWriteTimeout, defaults.WriteTimeout)
	v.SetDefault(keyIdleTimeout, defaults.IdleTimeout)
	v.SetDefault(keyShutdownTimeout, defaults.ShutdownTimeout)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// readConfigFile reads an explicit config file, or searches the standard
// locations. A missing file in the standard locations is not an error.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return pkgerrors.NewConfigError("config", fmt.Sprintf("reading %s: %v", configFile, err), err)
		}
		return nil
	}

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetConfigType("yaml")
	v.SetConfigName(constants.ConfigName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return pkgerrors.NewConfigError("config", err.Error(), err)
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides variables that are already set, so .env.local only fills what
// the environment and .env left unset.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
