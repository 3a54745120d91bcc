// Package config handles loading and hot-reloading penwell configuration:
// store endpoint, engine tunables, and per-viewer annotation options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/penwell/penwell/internal/annotator"
)

// Config is the full penwell configuration.
type Config struct {
	Server  ServerConfig                 `mapstructure:"server" yaml:"server"`
	Store   StoreConfig                  `mapstructure:"store" yaml:"store"`
	Engine  EngineConfig                 `mapstructure:"engine" yaml:"engine"`
	Viewers map[string]annotator.Options `mapstructure:"viewers" yaml:"viewers"`
}

// ServerConfig configures the reference annotation store server.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// StoreConfig configures the annotation store client.
type StoreConfig struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     uint   `mapstructure:"max_retries" yaml:"max_retries"`
}

// EngineConfig holds the interaction tunables.
type EngineConfig struct {
	// MoveIntervalMS bounds how often cached pointer-move events are
	// processed.
	MoveIntervalMS int `mapstructure:"move_interval_ms" yaml:"move_interval_ms"`
}

// ViewerOptions returns the options for a viewer name, or nil when the
// viewer has no explicit configuration (profile defaults apply). Lookup is
// case-insensitive because viper lowercases map keys on unmarshal, so
// config-file entries come back case-folded.
func (c *Config) ViewerOptions(viewerName string) *annotator.Options {
	if c == nil || c.Viewers == nil {
		return nil
	}
	if opts, ok := c.Viewers[viewerName]; ok {
		return &opts
	}
	for name, opts := range c.Viewers {
		if strings.EqualFold(name, viewerName) {
			o := opts
			return &o
		}
	}
	return nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: "8080"},
		Store: StoreConfig{
			BaseURL:        "http://127.0.0.1:8080",
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
		Engine: EngineConfig{MoveIntervalMS: 50},
		Viewers: map[string]annotator.Options{
			"Document": {Enabled: true},
			"Image":    {Enabled: true},
		},
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a config manager and loads the initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file discovery.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("server", defaults.Server)
	viper.SetDefault("store", defaults.Store)
	viper.SetDefault("engine", defaults.Engine)
	viper.SetDefault("viewers", defaults.Viewers)

	// Environment variables with PENWELL_ prefix
	viper.SetEnvPrefix("PENWELL")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.penwell")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# penwell configuration
# Per-viewer annotation options live under "viewers"; an absent viewer
# falls back to its annotator profile defaults.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
