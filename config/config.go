package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultFile is the configuration file looked up when no path is given.
const DefaultFile = "itemserver.yaml"

// Config is the main configuration structure.
type Config struct {
	Server ServerConf `yaml:"server"`
	CORS   CORSConf   `yaml:"cors"`
	Client ClientConf `yaml:"client"`
}

// ServerConf controls the HTTP listener and route layout.
type ServerConf struct {
	Port                   int    `yaml:"port"`
	PathPrefix             string `yaml:"pathPrefix"` // e.g. /api/server
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeoutSeconds,omitempty"`
	MaxBodyBytes           int64  `yaml:"maxBodyBytes,omitempty"`
}

// CORSConf mirrors the subset of rs/cors options the server exposes.
type CORSConf struct {
	AllowedOrigins   []string `yaml:"allowedOrigins"`
	AllowedMethods   []string `yaml:"allowedMethods"`
	AllowedHeaders   []string `yaml:"allowedHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials"`
}

// ClientConf is used by the `call` commands to reach a running server.
type ClientConf struct {
	BaseURL        string `yaml:"baseURL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConf{
			Port:                   8080,
			PathPrefix:             "/api/server",
			ShutdownTimeoutSeconds: 5,
			MaxBodyBytes:           1 << 20,
		},
		CORS: CORSConf{
			AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:5174"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-Authorization", "X-Request-Id"},
			AllowCredentials: true,
		},
		Client: ClientConf{
			BaseURL:        "http://localhost:8080/api/server",
			TimeoutSeconds: 10,
		},
	}
}

// LoadConfig reads a YAML file and returns a Config struct.
// A missing file is not an error: the defaults are returned instead.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filePath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filePath, err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Server.Port <= 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.PathPrefix == "" {
		c.Server.PathPrefix = def.Server.PathPrefix
	}
	c.Server.PathPrefix = NormalizePrefix(c.Server.PathPrefix)
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = def.Server.ShutdownTimeoutSeconds
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = def.CORS.AllowedOrigins
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = def.CORS.AllowedMethods
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = def.CORS.AllowedHeaders
	}

	if c.Client.BaseURL == "" {
		c.Client.BaseURL = fmt.Sprintf("http://localhost:%d%s", c.Server.Port, c.Server.PathPrefix)
	}
	if c.Client.TimeoutSeconds <= 0 {
		c.Client.TimeoutSeconds = def.Client.TimeoutSeconds
	}
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (s ServerConf) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// Timeout returns the HTTP client timeout as a duration.
func (c ClientConf) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NormalizePrefix makes sure a route prefix starts with a slash and has no
// trailing one. An empty prefix stays empty (routes mounted at the root).
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
