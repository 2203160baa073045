package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-best-stories/internal/cache"
	"go-best-stories/internal/cache/l1"
	"go-best-stories/internal/cache/l2"
	"go-best-stories/internal/cache/multi"
	"go-best-stories/internal/cache/noop"
	"go-best-stories/internal/config"
	"go-best-stories/internal/failure"
	"go-best-stories/internal/httpserver"
	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/models"
	"go-best-stories/internal/service"
	"go-best-stories/internal/upstream"
)

// CompositionRoot holds all application dependencies and wires them
// together in one place.
type CompositionRoot struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock

	// Cache components
	L1Cache    interfaces.Cache
	L2Cache    interfaces.Cache
	StoryCache *cache.StoryCache

	Upstream       *upstream.Client
	StoriesService *service.StoriesService
	HTTPServer     *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger
// 2. Configuration
// 3. Cache components (L1, L2, multi, story cache)
// 4. Upstream client, failure policy and stories service
// 5. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clock.New()}

	if err := root.initLogger(os.Getenv("APP_ENV")); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger builds a development logger for the development environment
// and a production logger otherwise
func (r *CompositionRoot) initLogger(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == config.EnvironmentDevelopment {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	r.Logger = logger
	redis.SetLogger(NewRedisLogger(logger))
	return nil
}

// loadConfig loads the application configuration and switches to a
// development logger when the file asks for one
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("STORIES_CONFIG_FILE")
	if configPath == "" {
		configPath = "/app/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	// The bootstrap logger only saw APP_ENV, not the file
	if cfg.Environment == config.EnvironmentDevelopment && os.Getenv("APP_ENV") != cfg.Environment {
		_ = r.Logger.Sync()
		if err := r.initLogger(cfg.Environment); err != nil {
			return err
		}
	}

	r.Config = cfg
	r.Logger.Info("Configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.Int("max_items_per_request", cfg.Stories.MaxItems()),
		zap.Duration("cache_duration", cfg.Stories.CacheDuration()),
		zap.Bool("bigcache", cfg.BigCache.Enabled),
		zap.Bool("keydb", cfg.KeyDB.Enabled))
	return nil
}

// initCacheComponents initializes all cache-related components
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}

	if err := r.initL2Cache(); err != nil {
		return fmt.Errorf("failed to initialize L2 cache: %w", err)
	}

	store := multi.NewMultiCache([]multi.Level{
		{Name: models.CacheLevelL1, Cache: r.L1Cache},
		{Name: models.CacheLevelL2, Cache: r.L2Cache},
	}, r.Config.MultiCache.EnablePropagation, r.Clock, r.Logger)

	r.StoryCache = cache.NewStoryCache(store, cache.NewKeyBuilder(r.Config.KeyDB.KeyPrefix), r.Logger)
	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if !r.Config.BigCache.Enabled {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
		return nil
	}

	l1Cache, err := l1.NewBigCache(&r.Config.BigCache, r.Clock, r.Logger)
	if err != nil {
		return err
	}
	r.L1Cache = l1Cache
	r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.BigCache.Size))
	return nil
}

// initL2Cache initializes the L2 cache (KeyDB). An unreachable KeyDB is
// tolerated only while L1 can still serve as the cache.
func (r *CompositionRoot) initL2Cache() error {
	if !r.Config.KeyDB.Enabled {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("KeyDB (L2) disabled")
		return nil
	}

	keydbURL := GetKeyDBURL(r.Config.KeyDB.URL, r.Logger)

	keydbClient, err := l2.NewRedisKeyDbClient(&r.Config.KeyDB, keydbURL, r.Logger)
	if err != nil {
		if !r.Config.BigCache.Enabled {
			return err
		}
		r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache", zap.Error(err))
		r.L2Cache = noop.NewNoOpCache()
		return nil
	}

	keydbCache := l2.NewKeyDBCache(&r.Config.KeyDB, keydbClient, r.Clock, r.Logger)
	keydbCache.StartMetricsCollection()
	r.L2Cache = keydbCache
	r.Logger.Info("KeyDB (L2) initialized")
	return nil
}

// initServices initializes the upstream client and the stories service
func (r *CompositionRoot) initServices() {
	r.Upstream = upstream.NewClient(&r.Config.Upstream, r.Logger)

	r.StoriesService = service.NewStoriesService(
		r.Upstream,
		r.Upstream,
		r.StoryCache,
		failure.NewPolicy(r.Config.Failure.TolerateDetailErrors, r.Logger),
		r.Config.Stories,
		r.Logger,
	)
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(
		r.StoriesService,
		failure.NewResponder(r.Config.IsProduction(), "", r.Logger),
		r.Config.Server,
		r.Logger,
	)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if bc, ok := r.L1Cache.(*l1.BigCache); ok {
		if err := bc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}

	if kc, ok := r.L2Cache.(*l2.KeyDBCache); ok {
		if err := kc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}

	if r.Logger != nil {
		// Sync on stderr returns EINVAL on some platforms and is not worth reporting
		_ = r.Logger.Sync()
	}

	return errors.Join(errs...)
}
