package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Remote modes select which store the client talks to
const (
	ModeLocal  = "local"  // in-process sqlite store
	ModeSocket = "socket" // store daemon over a unix socket
	ModeHTTP   = "http"   // GraphQL-style HTTP endpoint
)

// Config represents the application configuration
type Config struct {
	DataDir     string       `yaml:"data_dir"`
	LogLevel    string       `yaml:"log_level"`
	Remote      RemoteConfig `yaml:"remote"`
	Sync        SyncConfig   `yaml:"sync"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
	ColorScheme ColorScheme  `yaml:"theme"`
}

// RemoteConfig selects and configures the backing store
type RemoteConfig struct {
	Mode           string        `yaml:"mode"`
	SocketPath     string        `yaml:"socket_path"`
	Endpoint       string        `yaml:"endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SyncConfig tunes the board synchronization core
type SyncConfig struct {
	// PendingTimeout bounds how long a moved card may wait for the store
	PendingTimeout time.Duration `yaml:"pending_timeout"`
}

const (
	defaultEndpoint       = "http://localhost:5000/"
	defaultRequestTimeout = 5 * time.Second
	defaultPendingTimeout = 10 * time.Second
)

// Default returns the configuration used when no file exists
func Default() *Config {
	config := &Config{
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: DefaultColorScheme(),
	}
	config.applyDefaults()
	return config
}

// loadThemeFile loads and merges theme from MINITRELLO_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("MINITRELLO_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		return finish(&Config{})
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, falling back to defaults when the file
// does not exist. Environment overrides are applied last.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return finish(&Config{})
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return finish(&config)
}

func finish(config *Config) (*Config, error) {
	// Load theme from MINITRELLO_THEME_FILE if set
	loadThemeFile(config)

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings no client can be built from
func (c *Config) Validate() error {
	switch c.Remote.Mode {
	case ModeLocal, ModeSocket, ModeHTTP:
	default:
		return fmt.Errorf("unknown remote mode %q (want %s, %s or %s)", c.Remote.Mode, ModeLocal, ModeSocket, ModeHTTP)
	}
	if c.Remote.RequestTimeout <= 0 {
		return fmt.Errorf("remote.request_timeout must be positive, got %s", c.Remote.RequestTimeout)
	}
	if c.Sync.PendingTimeout <= 0 {
		return fmt.Errorf("sync.pending_timeout must be positive, got %s", c.Sync.PendingTimeout)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "minitrello", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "minitrello", "config.yaml"), nil
}

// applyEnv overrides file values with MINITRELLO_* environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("MINITRELLO_REMOTE_MODE"); v != "" {
		c.Remote.Mode = v
	}
	if v := os.Getenv("MINITRELLO_SOCKET"); v != "" {
		c.Remote.SocketPath = v
	}
	if v := os.Getenv("MINITRELLO_ENDPOINT"); v != "" {
		c.Remote.Endpoint = v
	}
	if v := os.Getenv("MINITRELLO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MINITRELLO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MINITRELLO_PENDING_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid MINITRELLO_PENDING_TIMEOUT_MS %q", v)
		}
		c.Sync.PendingTimeout = time.Duration(ms) * time.Millisecond
	}
	return nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Remote.Mode == "" {
		c.Remote.Mode = ModeLocal
	}
	if c.Remote.SocketPath == "" {
		c.Remote.SocketPath = filepath.Join(c.DataDir, "minitrello.sock")
	}
	if c.Remote.Endpoint == "" {
		c.Remote.Endpoint = defaultEndpoint
	}
	if c.Remote.RequestTimeout == 0 {
		c.Remote.RequestTimeout = defaultRequestTimeout
	}
	if c.Sync.PendingTimeout == 0 {
		c.Sync.PendingTimeout = defaultPendingTimeout
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// defaultDataDir is ~/.minitrello, or a relative directory when HOME is unknown
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".minitrello"
	}
	return filepath.Join(homeDir, ".minitrello")
}
