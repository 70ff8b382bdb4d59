// Package config loads the blc configuration file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/you-not-fish/bl/internal/syntax"
)

// EnvVar names the environment variable that points at the config file.
const EnvVar = "BL_CONFIG"

// Config is the root configuration structure.
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// ParserConfig configures parsing.
type ParserConfig struct {
	// MaxDepth limits IF/WHILE nesting. Zero means unlimited.
	MaxDepth int `toml:"max_depth"`
}

// ServerConfig configures the HTTP parse service.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
	CacheSize      int      `toml:"cache_size"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`  // logrus level name
	Format string `toml:"format"` // text or json
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Parser: ParserConfig{MaxDepth: syntax.DefaultMaxDepth},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the file named by BL_CONFIG, or
// from ./bl.toml or ~/.config/bl/config.toml if present. Without any of
// them it returns the defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	defaultPaths := []string{
		"./bl.toml",
		filepath.Join(os.Getenv("HOME"), ".config/bl/config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 256
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must not be negative, got %d", c.Server.CacheSize)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewLogger builds a logger writing to w with the configured level and
// format.
func (c *LogConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	if c.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
