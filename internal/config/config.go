package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"

	// ItemIDPlaceholder is substituted with the story id in ItemPathTemplate
	ItemIDPlaceholder = "{id}"

	defaultMaxItemsPerRequest   = 200
	defaultCacheDurationSeconds = 60
	defaultLifeWindowSeconds    = 3600
)

var validate = validator.New()

// Config represents the main configuration structure
type Config struct {
	Environment string           `yaml:"environment" env:"APP_ENV" validate:"oneof=production development"`
	Server      ServerConfig     `yaml:"server"`
	Upstream    UpstreamConfig   `yaml:"upstream"`
	Stories     StoriesConfig    `yaml:"stories"`
	Failure     FailureConfig    `yaml:"failure"`
	BigCache    BigCacheConfig   `yaml:"bigcache"`
	KeyDB       KeyDBConfig      `yaml:"keydb"`
	MultiCache  MultiCacheConfig `yaml:"multi_cache"`
}

// ServerConfig configures the inbound HTTP listener
type ServerConfig struct {
	Address        string `yaml:"address" env:"STORIES_SERVER_ADDRESS"`
	SocketPath     string `yaml:"socket_path" env:"STORIES_SOCKET_PATH"`
	RequestTimeout int    `yaml:"request_timeout" validate:"gte=0"` // milliseconds
}

// UpstreamConfig points at the story ranking service
type UpstreamConfig struct {
	BaseURL          string `yaml:"base_url" env:"STORIES_UPSTREAM_BASE_URL" validate:"required,url"`
	DatasetPath      string `yaml:"dataset_path" validate:"required"`
	ItemPathTemplate string `yaml:"item_path_template" validate:"required"`
	Timeout          int    `yaml:"timeout" validate:"gte=0"` // milliseconds
}

// StoriesConfig holds the request parameters of the aggregation pipeline.
// Pointers keep an explicit zero apart from an omitted key.
type StoriesConfig struct {
	MaxItemsPerRequest   *int `yaml:"max_items_per_request"`
	CacheDurationSeconds *int `yaml:"cache_duration_seconds"`
	MaxConcurrency       int  `yaml:"max_concurrency" env:"STORIES_MAX_CONCURRENCY" validate:"gte=0"`
	RankOrdered          bool `yaml:"rank_ordered" env:"STORIES_RANK_ORDERED"`
}

// FailureConfig tunes the failure policy
type FailureConfig struct {
	TolerateDetailErrors bool `yaml:"tolerate_detail_errors" env:"STORIES_TOLERATE_DETAIL_ERRORS"`
}

// BigCacheConfig configures the in-process L1 cache
type BigCacheConfig struct {
	Enabled    bool `yaml:"enabled" env:"STORIES_BIGCACHE_ENABLED"`
	Size       int  `yaml:"size" validate:"gte=0"`        // MB
	LifeWindow int  `yaml:"life_window" validate:"gte=0"` // seconds
}

// KeyDBConfig configures the shared L2 cache
type KeyDBConfig struct {
	Enabled    bool             `yaml:"enabled" env:"STORIES_KEYDB_ENABLED"`
	URL        string           `yaml:"url" env:"KEYDB_URL"`
	KeyPrefix  string           `yaml:"key_prefix" env:"STORIES_KEYDB_KEY_PREFIX"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
}

// ConnectionConfig holds KeyDB timeouts in milliseconds
type ConnectionConfig struct {
	ConnectTimeout int `yaml:"connect_timeout"`
	SendTimeout    int `yaml:"send_timeout"`
	ReadTimeout    int `yaml:"read_timeout"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int `yaml:"pool_size"`
	MaxIdleTimeout int `yaml:"max_idle_timeout"` // milliseconds
}

// MultiCacheConfig configures the tiered cache
type MultiCacheConfig struct {
	EnablePropagation bool `yaml:"enable_propagation"`
}

// LoadConfig loads configuration from file path. Variables named in the
// env tags override the file.
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.warnIneffectiveValues(logger)

	return &config, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !strings.Contains(c.Upstream.ItemPathTemplate, ItemIDPlaceholder) {
		return fmt.Errorf("invalid configuration: item_path_template must contain %s", ItemIDPlaceholder)
	}
	if !c.BigCache.Enabled && !c.KeyDB.Enabled {
		return errors.New("invalid configuration: at least one of bigcache or keydb must be enabled")
	}
	// bigcache evicts on its own clock once the life window has passed
	if c.BigCache.Enabled && c.BigCache.GetLifeWindow() < c.Stories.CacheDuration() {
		return fmt.Errorf("invalid configuration: bigcache life_window (%s) is shorter than cache_duration_seconds (%s)",
			c.BigCache.GetLifeWindow(), c.Stories.CacheDuration())
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvironmentProduction
	}

	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 10000
	}

	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 10000
	}

	if c.Stories.MaxItemsPerRequest == nil {
		v := defaultMaxItemsPerRequest
		c.Stories.MaxItemsPerRequest = &v
	}
	if c.Stories.CacheDurationSeconds == nil {
		v := defaultCacheDurationSeconds
		c.Stories.CacheDurationSeconds = &v
	}

	if c.BigCache.Size == 0 {
		c.BigCache.Size = 64
	}
	if c.BigCache.LifeWindow == 0 {
		c.BigCache.LifeWindow = max(defaultLifeWindowSeconds, int(c.Stories.CacheDuration()/time.Second))
	}

	if c.KeyDB.KeyPrefix == "" {
		c.KeyDB.KeyPrefix = "story"
	}
	if c.KeyDB.Connection.ConnectTimeout == 0 {
		c.KeyDB.Connection.ConnectTimeout = 1000
	}
	if c.KeyDB.Connection.SendTimeout == 0 {
		c.KeyDB.Connection.SendTimeout = 1000
	}
	if c.KeyDB.Connection.ReadTimeout == 0 {
		c.KeyDB.Connection.ReadTimeout = 1000
	}
	if c.KeyDB.Keepalive.PoolSize == 0 {
		c.KeyDB.Keepalive.PoolSize = 10
	}
	if c.KeyDB.Keepalive.MaxIdleTimeout == 0 {
		c.KeyDB.Keepalive.MaxIdleTimeout = 10000
	}
}

// warnIneffectiveValues logs values that are accepted but neutralise the cache
// or the endpoint
func (c *Config) warnIneffectiveValues(logger *zap.Logger) {
	if c.Stories.MaxItems() <= 0 {
		logger.Warn("max_items_per_request is not positive, every request will return an empty list",
			zap.Int("max_items_per_request", c.Stories.MaxItems()))
	}
	if c.Stories.CacheDurationSeconds != nil && *c.Stories.CacheDurationSeconds <= 0 {
		logger.Warn("cache_duration_seconds is not positive, stories will never be served from cache",
			zap.Int("cache_duration_seconds", *c.Stories.CacheDurationSeconds))
	}
}

// IsProduction reports whether errors must be hidden from callers
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// MaxItems returns the per-request cap
func (s StoriesConfig) MaxItems() int {
	if s.MaxItemsPerRequest == nil {
		return defaultMaxItemsPerRequest
	}
	return *s.MaxItemsPerRequest
}

// CacheDuration returns the TTL given to freshly fetched stories
func (s StoriesConfig) CacheDuration() time.Duration {
	if s.CacheDurationSeconds == nil {
		return defaultCacheDurationSeconds * time.Second
	}
	return time.Duration(*s.CacheDurationSeconds) * time.Second
}

// GetRequestTimeout returns the per-request deadline of the HTTP server
func (s ServerConfig) GetRequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Millisecond
}

// GetTimeout returns the HTTP client timeout for upstream calls
func (u UpstreamConfig) GetTimeout() time.Duration {
	return time.Duration(u.Timeout) * time.Millisecond
}

// GetLifeWindow returns the BigCache eviction window
func (b BigCacheConfig) GetLifeWindow() time.Duration {
	return time.Duration(b.LifeWindow) * time.Second
}

// GetConnectTimeout returns connect timeout as duration
func (k KeyDBConfig) GetConnectTimeout() time.Duration {
	return time.Duration(k.Connection.ConnectTimeout) * time.Millisecond
}

// GetSendTimeout returns send timeout as duration
func (k KeyDBConfig) GetSendTimeout() time.Duration {
	return time.Duration(k.Connection.SendTimeout) * time.Millisecond
}

// GetReadTimeout returns read timeout as duration
func (k KeyDBConfig) GetReadTimeout() time.Duration {
	return time.Duration(k.Connection.ReadTimeout) * time.Millisecond
}

// GetMaxIdleTimeout returns max idle timeout as duration
func (k KeyDBConfig) GetMaxIdleTimeout() time.Duration {
	return time.Duration(k.Keepalive.MaxIdleTimeout) * time.Millisecond
}
