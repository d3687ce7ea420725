package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "kanban.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `version: "1.0"
profile: work
redis:
  url: redis://cache:6380/2
storage_key: boards.v1
log_level: debug
`)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "work", config.Profile)
	assert.Equal(t, "redis://cache:6380/2", config.Redis.URL)
	assert.Equal(t, "boards.v1", config.StorageKey)
	assert.Equal(t, "debug", config.LogLevel)

	opts, err := config.RedisOptions()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
}

func TestLoad_FileNotFoundUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "default", config.Profile)
	assert.Equal(t, "kanban.v1", config.StorageKey)
	assert.Equal(t, "redis://localhost:6379/0", config.Redis.URL)
}

func TestLoad_UnreadablePath(t *testing.T) {
	// A directory cannot be read as a file.
	config, err := Load(t.TempDir())
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `version: "1.0"
profile:
  - this is invalid
    yaml syntax
`)

	config, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	configPath := writeConfig(t, `version: "1.0"
profile: home
`)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "home", config.Profile)
	assert.Equal(t, "redis://localhost:6379/0", config.Redis.URL)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	configPath := writeConfig(t, `version: "1.0"
profile: home
`)
	t.Setenv("KANBAN_PROFILE", "ci")
	t.Setenv("KANBAN_REDIS_URL", "redis://elsewhere:6379")
	t.Setenv("KANBAN_STORAGE_KEY", "alt")
	t.Setenv("KANBAN_DEBUG", "true")

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "ci", config.Profile)
	assert.Equal(t, "redis://elsewhere:6379", config.Redis.URL)
	assert.Equal(t, "alt", config.StorageKey)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoad_InvalidDebugFlag(t *testing.T) {
	t.Setenv("KANBAN_DEBUG", "sometimes")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "KANBAN_DEBUG")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *KanbanConfig)
		wantErr string
	}{
		{"unsupported version", func(c *KanbanConfig) { c.Version = "2.0" }, "unsupported version: 2.0"},
		{"empty profile", func(c *KanbanConfig) { c.Profile = "" }, "profile is required"},
		{"uppercase profile", func(c *KanbanConfig) { c.Profile = "Work" }, "invalid profile name 'Work'"},
		{"profile with spaces", func(c *KanbanConfig) { c.Profile = "my board" }, "invalid profile name"},
		{"trailing hyphen", func(c *KanbanConfig) { c.Profile = "work-" }, "invalid profile name"},
		{"bad redis url", func(c *KanbanConfig) { c.Redis.URL = "http://nope" }, "invalid redis.url"},
		{"bad log level", func(c *KanbanConfig) { c.LogLevel = "chatty" }, "invalid log_level: chatty"},
		{"missing redis section defaults", func(c *KanbanConfig) { c.Redis = nil }, ""},
		{"missing storage key defaults", func(c *KanbanConfig) { c.StorageKey = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, config.Redis)
				assert.NotEmpty(t, config.StorageKey)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProfile(t *testing.T) {
	for _, name := range []string{"a", "default", "test-profile", "team-2"} {
		assert.NoError(t, ValidateProfile(name), name)
	}

	long := make([]byte, MaxProfileLength+1)
	for i := range long {
		long[i] = 'a'
	}
	err := ValidateProfile(string(long))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}
