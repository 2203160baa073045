package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp("", "stories_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

const upstreamSection = `
upstream:
  base_url: https://hacker-news.firebaseio.com
  dataset_path: /v0/beststories.json
  item_path_template: /v0/item/{id}.json
`

func TestLoadConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)

	validConfig := `
environment: development
server:
  address: ":9090"
  request_timeout: 2500
` + upstreamSection + `
  timeout: 3000
stories:
  max_items_per_request: 50
  cache_duration_seconds: 120
  max_concurrency: 8
  rank_ordered: true
failure:
  tolerate_detail_errors: true
bigcache:
  enabled: true
  size: 200
keydb:
  enabled: true
  key_prefix: hn
  connection:
    connect_timeout: 2000
    send_timeout: 2000
    read_timeout: 2000
  keepalive:
    pool_size: 20
    max_idle_timeout: 20000
multi_cache:
  enable_propagation: true
`

	configFile := createTestConfigFile(t, validConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	require.NoError(t, err)

	assert.Equal(t, EnvironmentDevelopment, config.Environment)
	assert.False(t, config.IsProduction())
	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, 2500*time.Millisecond, config.Server.GetRequestTimeout())

	assert.Equal(t, "https://hacker-news.firebaseio.com", config.Upstream.BaseURL)
	assert.Equal(t, "/v0/beststories.json", config.Upstream.DatasetPath)
	assert.Equal(t, "/v0/item/{id}.json", config.Upstream.ItemPathTemplate)
	assert.Equal(t, 3*time.Second, config.Upstream.GetTimeout())

	assert.Equal(t, 50, config.Stories.MaxItems())
	assert.Equal(t, 2*time.Minute, config.Stories.CacheDuration())
	assert.Equal(t, 8, config.Stories.MaxConcurrency)
	assert.True(t, config.Stories.RankOrdered)
	assert.True(t, config.Failure.TolerateDetailErrors)

	assert.True(t, config.BigCache.Enabled)
	assert.Equal(t, 200, config.BigCache.Size)

	assert.True(t, config.KeyDB.Enabled)
	assert.Equal(t, "hn", config.KeyDB.KeyPrefix)
	assert.Equal(t, 2000, config.KeyDB.Connection.ConnectTimeout)
	assert.Equal(t, 20, config.KeyDB.Keepalive.PoolSize)
	assert.True(t, config.MultiCache.EnablePropagation)
}

func TestLoadConfig_WithDefaults(t *testing.T) {
	logger := zaptest.NewLogger(t)

	minimalConfig := upstreamSection + `
bigcache:
  enabled: true
`

	configFile := createTestConfigFile(t, minimalConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	require.NoError(t, err)

	assert.Equal(t, EnvironmentProduction, config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, 10*time.Second, config.Upstream.GetTimeout())
	assert.Equal(t, 200, config.Stories.MaxItems())
	assert.Equal(t, time.Minute, config.Stories.CacheDuration())
	assert.Equal(t, 0, config.Stories.MaxConcurrency)
	assert.Equal(t, 64, config.BigCache.Size)
	assert.Equal(t, time.Hour, config.BigCache.GetLifeWindow())
	assert.Equal(t, "story", config.KeyDB.KeyPrefix)
	assert.Equal(t, 10, config.KeyDB.Keepalive.PoolSize)
}

func TestLoadConfig_ExplicitZeroIsKept(t *testing.T) {
	logger := zaptest.NewLogger(t)

	zeroConfig := upstreamSection + `
stories:
  max_items_per_request: 0
  cache_duration_seconds: -5
bigcache:
  enabled: true
`

	configFile := createTestConfigFile(t, zeroConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	require.NoError(t, err)

	assert.Equal(t, 0, config.Stories.MaxItems())
	assert.Equal(t, -5*time.Second, config.Stories.CacheDuration())
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	logger := zaptest.NewLogger(t)

	_, err := LoadConfig("/nonexistent/file.yaml", logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for nonexistent file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	logger := zaptest.NewLogger(t)

	invalidConfig := `
bigcache:
  enabled: true
  invalid yaml syntax [
`

	configFile := createTestConfigFile(t, invalidConfig)
	defer os.Remove(configFile)

	_, err := LoadConfig(configFile, logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for invalid YAML")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := &Config{
			Upstream: UpstreamConfig{
				BaseURL:          "https://hacker-news.firebaseio.com",
				DatasetPath:      "/v0/beststories.json",
				ItemPathTemplate: "/v0/item/{id}.json",
			},
			BigCache: BigCacheConfig{Enabled: true},
		}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing base url", mutate: func(c *Config) { c.Upstream.BaseURL = "" }, wantErr: true},
		{name: "base url not a url", mutate: func(c *Config) { c.Upstream.BaseURL = "not a url" }, wantErr: true},
		{name: "missing dataset path", mutate: func(c *Config) { c.Upstream.DatasetPath = "" }, wantErr: true},
		{name: "item template without placeholder", mutate: func(c *Config) { c.Upstream.ItemPathTemplate = "/v0/item/{0}.json" }, wantErr: true},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "staging" }, wantErr: true},
		{name: "negative concurrency", mutate: func(c *Config) { c.Stories.MaxConcurrency = -1 }, wantErr: true},
		{name: "no cache level", mutate: func(c *Config) { c.BigCache.Enabled = false }, wantErr: true},
		{name: "keydb only", mutate: func(c *Config) { c.BigCache.Enabled = false; c.KeyDB.Enabled = true }, wantErr: false},
		{
			name:    "life window shorter than ttl",
			mutate:  func(c *Config) { c.BigCache.LifeWindow = 3600; c.Stories.CacheDurationSeconds = intPtr(7200) },
			wantErr: true,
		},
		{
			name:    "life window equal to ttl",
			mutate:  func(c *Config) { c.BigCache.LifeWindow = 120; c.Stories.CacheDurationSeconds = intPtr(120) },
			wantErr: false,
		},
		{
			name: "life window ignored without bigcache",
			mutate: func(c *Config) {
				c.BigCache.Enabled = false
				c.KeyDB.Enabled = true
				c.BigCache.LifeWindow = 1
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TimeoutMethods(t *testing.T) {
	keydb := KeyDBConfig{
		Connection: ConnectionConfig{
			ConnectTimeout: 1500,
			SendTimeout:    2500,
			ReadTimeout:    3500,
		},
		Keepalive: KeepaliveConfig{
			MaxIdleTimeout: 15000,
		},
	}

	tests := []struct {
		name     string
		method   func() time.Duration
		expected time.Duration
	}{
		{name: "GetConnectTimeout", method: keydb.GetConnectTimeout, expected: 1500 * time.Millisecond},
		{name: "GetSendTimeout", method: keydb.GetSendTimeout, expected: 2500 * time.Millisecond},
		{name: "GetReadTimeout", method: keydb.GetReadTimeout, expected: 3500 * time.Millisecond},
		{name: "GetMaxIdleTimeout", method: keydb.GetMaxIdleTimeout, expected: 15000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.method()
			if result != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, result, tt.expected)
			}
		})
	}
}

func TestConfig_PartialDefaults(t *testing.T) {
	config := &Config{
		BigCache: BigCacheConfig{
			Size: 250,
		},
		KeyDB: KeyDBConfig{
			Connection: ConnectionConfig{
				ConnectTimeout: 2000,
			},
		},
	}

	config.applyDefaults()

	if config.BigCache.Size != 250 {
		t.Errorf("applyDefaults() should preserve custom BigCache.Size = %v", config.BigCache.Size)
	}
	if config.KeyDB.Connection.ConnectTimeout != 2000 {
		t.Errorf("applyDefaults() should preserve custom KeyDB.Connection.ConnectTimeout = %v", config.KeyDB.Connection.ConnectTimeout)
	}
	if config.KeyDB.Connection.SendTimeout != 1000 {
		t.Errorf("applyDefaults() KeyDB.Connection.SendTimeout = %v, want 1000 (default)", config.KeyDB.Connection.SendTimeout)
	}
	if config.KeyDB.Connection.ReadTimeout != 1000 {
		t.Errorf("applyDefaults() KeyDB.Connection.ReadTimeout = %v, want 1000 (default)", config.KeyDB.Connection.ReadTimeout)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Setenv("APP_ENV", EnvironmentDevelopment)
	t.Setenv("STORIES_SERVER_ADDRESS", ":7070")
	t.Setenv("STORIES_UPSTREAM_BASE_URL", "http://upstream.local")
	t.Setenv("STORIES_MAX_CONCURRENCY", "4")
	t.Setenv("STORIES_TOLERATE_DETAIL_ERRORS", "true")
	t.Setenv("STORIES_KEYDB_ENABLED", "true")
	t.Setenv("KEYDB_URL", "redis://env-keydb:6379/1")

	configFile := createTestConfigFile(t, `
environment: production
server:
  address: ":9090"
`+upstreamSection+`
bigcache:
  enabled: true
`)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	require.NoError(t, err)

	assert.Equal(t, EnvironmentDevelopment, config.Environment)
	assert.Equal(t, ":7070", config.Server.Address)
	assert.Equal(t, "http://upstream.local", config.Upstream.BaseURL)
	assert.Equal(t, 4, config.Stories.MaxConcurrency)
	assert.True(t, config.Failure.TolerateDetailErrors)
	assert.True(t, config.KeyDB.Enabled)
	assert.Equal(t, "redis://env-keydb:6379/1", config.KeyDB.URL)
	assert.True(t, config.BigCache.Enabled)
}

func TestLoadConfig_EnvOverrideIsValidated(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Setenv("APP_ENV", "staging")

	configFile := createTestConfigFile(t, upstreamSection+`
bigcache:
  enabled: true
`)
	defer os.Remove(configFile)

	_, err := LoadConfig(configFile, logger)
	assert.Error(t, err)
}

func TestLoadConfig_MalformedEnvOverride(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Setenv("STORIES_MAX_CONCURRENCY", "many")

	configFile := createTestConfigFile(t, upstreamSection+`
bigcache:
  enabled: true
`)
	defer os.Remove(configFile)

	_, err := LoadConfig(configFile, logger)
	assert.ErrorContains(t, err, "environment overrides")
}

func intPtr(v int) *int {
	return &v
}

func TestLoadConfig_LifeWindowCoversTTL(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("default life window grows to the ttl", func(t *testing.T) {
		configFile := createTestConfigFile(t, upstreamSection+`
stories:
  cache_duration_seconds: 7200
bigcache:
  enabled: true
`)
		defer os.Remove(configFile)

		config, err := LoadConfig(configFile, logger)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, config.BigCache.GetLifeWindow())
	})

	t.Run("explicit shorter life window is rejected", func(t *testing.T) {
		configFile := createTestConfigFile(t, upstreamSection+`
stories:
  cache_duration_seconds: 7200
bigcache:
  enabled: true
  life_window: 3600
`)
		defer os.Remove(configFile)

		_, err := LoadConfig(configFile, logger)
		assert.ErrorContains(t, err, "life_window")
	})
}
