package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/dyluth/kanban/pkg/board"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "kanban.yml"

// MaxProfileLength is the maximum length for a profile name.
const MaxProfileLength = 63

// ProfilePattern is the regex pattern for valid profile names.
// Profiles become Redis key segments: lowercase alphanumeric, hyphens allowed
// (but not at start/end).
var ProfilePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidateProfile checks that a profile name is safe to embed in Redis keys.
func ValidateProfile(name string) error {
	if name == "" {
		return fmt.Errorf("profile is required")
	}

	if len(name) > MaxProfileLength {
		return fmt.Errorf("profile name too long: %d characters (max: %d)", len(name), MaxProfileLength)
	}

	if !ProfilePattern.MatchString(name) {
		return fmt.Errorf("invalid profile name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}

// KanbanConfig represents the top-level kanban.yml configuration
type KanbanConfig struct {
	Version    string       `yaml:"version"`
	Profile    string       `yaml:"profile"`     // Namespaces the Redis keys, one document per profile
	Redis      *RedisConfig `yaml:"redis,omitempty"`
	StorageKey string       `yaml:"storage_key"` // Well-known document key within the profile
	LogLevel   string       `yaml:"log_level"`
}

// RedisConfig specifies how to reach the persistence store
type RedisConfig struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used when no file exists.
func Default() *KanbanConfig {
	return &KanbanConfig{
		Version:    "1.0",
		Profile:    "default",
		Redis:      &RedisConfig{URL: "redis://localhost:6379/0"},
		StorageKey: board.DefaultStorageKey,
		LogLevel:   "info",
	}
}

// Validate performs strict validation on the configuration and fills in defaults
// for optional fields.
func (c *KanbanConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if err := ValidateProfile(c.Profile); err != nil {
		return err
	}

	if c.Redis == nil || c.Redis.URL == "" {
		c.Redis = &RedisConfig{URL: Default().Redis.URL}
	}
	if _, err := redis.ParseURL(c.Redis.URL); err != nil {
		return fmt.Errorf("invalid redis.url: %w", err)
	}

	if c.StorageKey == "" {
		c.StorageKey = board.DefaultStorageKey
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %s (must be one of panic, fatal, error, warn, info, debug, trace)", c.LogLevel)
	}

	return nil
}

// RedisOptions parses the configured Redis URL.
func (c *KanbanConfig) RedisOptions() (*redis.Options, error) {
	opts, err := redis.ParseURL(c.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return opts, nil
}

// ApplyEnv overrides file values with KANBAN_* environment variables.
func (c *KanbanConfig) ApplyEnv(getenv func(string) string) error {
	if v := getenv("KANBAN_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := getenv("KANBAN_REDIS_URL"); v != "" {
		c.Redis = &RedisConfig{URL: v}
	}
	if v := getenv("KANBAN_STORAGE_KEY"); v != "" {
		c.StorageKey = v
	}
	if v := getenv("KANBAN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("KANBAN_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("failed to parse KANBAN_DEBUG as bool: %w", err)
		}
		if debug {
			c.LogLevel = "debug"
		}
	}
	return nil
}

// Load reads kanban.yml from the specified path, applies environment overrides and
// validates the result. A missing file at path yields the defaults.
func Load(path string) (*KanbanConfig, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults stand.
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
