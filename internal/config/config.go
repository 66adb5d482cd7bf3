// Package config loads winctl settings from winctl.yaml, WINCTL_*
// environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/mj1618/winctl/internal/logging"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configName = "winctl"
	configType = "yaml"
	envPrefix  = "WINCTL"

	KeyPollInterval   = "poll_interval"
	KeyLogLevel       = "log_level"
	KeyLogFile        = "log_file"
	KeyMenuCacheTTL   = "menu_cache.ttl"
	KeyMenuCacheSize  = "menu_cache.size"
	KeyServeTransport = "serve.transport"
	KeyServePort      = "serve.port"

	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

var defaults = map[string]interface{}{
	KeyPollInterval:   500 * time.Millisecond,
	KeyLogLevel:       logging.DefaultLevel,
	KeyLogFile:        "",
	KeyMenuCacheTTL:   30 * time.Second,
	KeyMenuCacheSize:  64,
	KeyServeTransport: TransportStdio,
	KeyServePort:      8080,
}

// Config is the decoded configuration.
type Config struct {
	PollInterval time.Duration   `mapstructure:"poll_interval" yaml:"poll_interval"`
	LogLevel     string          `mapstructure:"log_level"     yaml:"log_level"`
	LogFile      string          `mapstructure:"log_file"      yaml:"log_file,omitempty"`
	MenuCache    MenuCacheConfig `mapstructure:"menu_cache"    yaml:"menu_cache"`
	Serve        ServeConfig     `mapstructure:"serve"         yaml:"serve"`
}

// MenuCacheConfig sizes the server's cache of built menu trees.
type MenuCacheConfig struct {
	TTL  time.Duration `mapstructure:"ttl"  yaml:"ttl"`
	Size int           `mapstructure:"size" yaml:"size"`
}

// ServeConfig selects the MCP transport.
type ServeConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Port      int    `mapstructure:"port"      yaml:"port"`
}

// Loader reads and re-reads the configuration.
type Loader struct {
	v           *viper.Viper
	path        string
	searchPaths []string
	logger      *zap.SugaredLogger
}

// NewLoader returns a loader for the file at path, or for winctl.yaml in the
// working directory and the user config directory when path is empty.
func NewLoader(path string, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = logging.Nop()
	}
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	searchPaths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(dir, configName))
	}
	return &Loader{v: v, path: path, searchPaths: searchPaths, logger: logger.Named("config")}
}

// Viper exposes the underlying instance so command flags can be bound to keys.
func (l *Loader) Viper() *viper.Viper { return l.v }

// ConfigFile returns the file that was read, or "" when running on defaults.
func (l *Loader) ConfigFile() string { return l.v.ConfigFileUsed() }

// Load reads .env, the config file and the environment, and validates the result.
// A missing config file is not an error unless it was named explicitly.
func (l *Loader) Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		l.logger.Debugw("Failed to load .env", "error", err)
	}

	if l.path != "" {
		l.v.SetConfigFile(l.path)
	} else {
		l.v.SetConfigName(configName)
		l.v.SetConfigType(configType)
		for _, p := range l.searchPaths {
			l.v.AddConfigPath(p)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		l.logger.Debug("No config file found, using defaults")
	} else {
		l.logger.Debugw("Loaded config file", "path", l.v.ConfigFileUsed())
	}

	return l.decode()
}

// Watch calls fn with the new configuration whenever the config file
// changes. Invalid edits are logged and ignored.
func (l *Loader) Watch(fn func(*Config)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.decode()
		if err != nil {
			l.logger.Warnw("Ignoring invalid config change", "path", e.Name, "error", err)
			return
		}
		l.logger.Infow("Config file changed", "path", e.Name, "op", e.Op.String())
		fn(cfg)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyPollInterval, c.PollInterval)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if c.MenuCache.Size <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyMenuCacheSize, c.MenuCache.Size)
	}
	if c.MenuCache.TTL < 0 {
		return fmt.Errorf("%s must not be negative, got %s", KeyMenuCacheTTL, c.MenuCache.TTL)
	}
	switch c.Serve.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%s: unsupported transport %q (use %s or %s)", KeyServeTransport, c.Serve.Transport, TransportStdio, TransportHTTP)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("%s must be in 1..65535, got %d", KeyServePort, c.Serve.Port)
	}
	return nil
}
