package service

import (
	"context"
	"encoding/json"
	"strconv"

	"channelscout/internal/domain"
	"channelscout/pkg/logger"
	"channelscout/pkg/redis"
)

// PageCache caches rendered listing pages in Redis. Every operation is best
// effort: a cache failure degrades to a storage read, never to a request
// failure. Callers hold a nil *PageCache when Redis is not configured.
type PageCache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewPageCache creates a new page cache
func NewPageCache(client *redis.Client, logger *logger.Logger) *PageCache {
	return &PageCache{
		client: client,
		logger: logger,
	}
}

// GetPage returns a cached page for the filter, if present
func (c *PageCache) GetPage(ctx context.Context, filter domain.ChannelListFilter) (*domain.ChannelPage, bool) {
	key := c.pageKey(ctx, filter)
	raw, err := c.client.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var page domain.ChannelPage
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		c.logger.WithError(err).Warn("Failed to decode cached channel page")
		return nil, false
	}

	return &page, true
}

// SetPage caches a page under the current catalog version
func (c *PageCache) SetPage(ctx context.Context, filter domain.ChannelListFilter, page *domain.ChannelPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to encode channel page for cache")
		return
	}

	key := c.pageKey(ctx, filter)
	if err := c.client.Set(ctx, key, string(raw), redis.TTLChannelPage); err != nil {
		c.logger.WithError(err).Warn("Failed to cache channel page")
	}
}

// Invalidate bumps the catalog version so every cached page under the old
// version stops being served.
func (c *PageCache) Invalidate(ctx context.Context) {
	if _, err := c.client.Incr(ctx, c.client.KeyBuilder.KeyCatalogVersion()); err != nil {
		c.logger.WithError(err).Warn("Failed to bump catalog cache version")
	}
}

// pageKey builds the version-stamped cache key for a filter
func (c *PageCache) pageKey(ctx context.Context, filter domain.ChannelListFilter) string {
	version := int64(0)
	raw, err := c.client.Get(ctx, c.client.KeyBuilder.KeyCatalogVersion())
	if err == nil && raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			version = parsed
		}
	}
	return c.client.KeyBuilder.KeyChannelPage(version, filter.MinSubscribers, filter.MaxSubscribers, filter.Page)
}
