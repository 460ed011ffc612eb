package container

import (
	"channelscout/internal/config"
	"channelscout/internal/service"
	"channelscout/internal/service/discovery"
	"channelscout/pkg/logger"
	"channelscout/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Discovery   service.DiscoveryService
}

// New creates a new dependency injection container. Redis and the discovery
// service are both optional: the listing endpoint works without either, and
// their absence is reported per request where it matters.
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	var discoveryService service.DiscoveryService
	if cfg.YouTubeAPIKey != "" {
		discoveryService = discovery.NewService(cfg.YouTubeAPIKey, discovery.Options{
			Keyword:           cfg.SearchKeyword,
			Region:            cfg.SearchRegion,
			RelevanceLanguage: cfg.RelevanceLanguage,
			ResultCap:         cfg.ResultCap,
			ChunkSize:         cfg.ChunkSize,
		}, logger)
	} else {
		logger.Warn("YouTube API key not configured, channel refresh is disabled")
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Discovery:   discoveryService,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetDiscoveryService returns the discovery service (nil without an API key)
func (c *Container) GetDiscoveryService() service.DiscoveryService {
	return c.Discovery
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// GetPageCache returns a page cache instance (nil if Redis is not available)
func (c *Container) GetPageCache() *service.PageCache {
	if c.RedisClient == nil {
		return nil
	}
	return service.NewPageCache(c.RedisClient, c.Logger)
}
