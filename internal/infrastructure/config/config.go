package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Volume source kinds accepted by StorageConfig.Source.
const (
	SourceMounts  = "mounts"
	SourceGlob    = "glob"
	SourceFixture = "fixture"
)

// Rate limit modes accepted by RateLimitConfig.Mode.
const (
	RateLimitPerIP  = "ip"
	RateLimitGlobal = "global"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	GRPC      GRPCConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	DiskSpace DiskSpaceConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// GRPCConfig holds the gRPC bridge configuration.
type GRPCConfig struct {
	Address string `envconfig:"GRPC_ADDR" default:"0.0.0.0:50061"`
	Enabled bool   `envconfig:"GRPC_ENABLED" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int    `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int    `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool   `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Mode              string `envconfig:"RATE_LIMIT_MODE" default:"ip"`
}

// StorageConfig holds the storage channel and volume discovery settings.
type StorageConfig struct {
	Channel  string   `envconfig:"STORAGE_CHANNEL" default:"com.example.drivy/storage"`
	Package  string   `envconfig:"STORAGE_PACKAGE" default:"com.example.drivy"`
	Marker   string   `envconfig:"STORAGE_MARKER" default:"/Android"`
	Source   string   `envconfig:"STORAGE_SOURCE" default:"mounts"`
	Roots    []string `envconfig:"STORAGE_ROOTS" default:"/storage"`
	Glob     string   `envconfig:"STORAGE_GLOB"`
	Fixture  string   `envconfig:"STORAGE_FIXTURE"`
	External string   `envconfig:"EXTERNAL_STORAGE" default:"/storage/emulated/0"`
}

// DiskSpaceConfig holds the disk space channel settings.
type DiskSpaceConfig struct {
	Channel string `envconfig:"DISK_SPACE_CHANNEL" default:"disk_space"`
	Path    string `envconfig:"DISK_SPACE_PATH" default:"/data"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		GRPC: GRPCConfig{
			Address: "0.0.0.0:50061",
			Enabled: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
			Mode:              RateLimitPerIP,
		},
		Storage: StorageConfig{
			Channel:  "com.example.drivy/storage",
			Package:  "com.example.drivy",
			Marker:   "/Android",
			Source:   SourceMounts,
			Roots:    []string{"/storage"},
			External: "/storage/emulated/0",
		},
		DiskSpace: DiskSpaceConfig{
			Channel: "disk_space",
			Path:    "/data",
		},
	}
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Source {
	case SourceMounts:
	case SourceGlob:
		if c.Storage.Glob == "" {
			return fmt.Errorf("STORAGE_GLOB is required when STORAGE_SOURCE=%s", SourceGlob)
		}
	case SourceFixture:
		if c.Storage.Fixture == "" {
			return fmt.Errorf("STORAGE_FIXTURE is required when STORAGE_SOURCE=%s", SourceFixture)
		}
	default:
		return fmt.Errorf("unknown STORAGE_SOURCE %q", c.Storage.Source)
	}
	switch c.RateLimit.Mode {
	case RateLimitPerIP, RateLimitGlobal:
	default:
		return fmt.Errorf("unknown RATE_LIMIT_MODE %q", c.RateLimit.Mode)
	}
	if c.Storage.Channel == "" || c.DiskSpace.Channel == "" {
		return fmt.Errorf("channel names cannot be empty")
	}
	return nil
}
