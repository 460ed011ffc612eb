package service

import (
	"context"

	"channelscout/internal/domain"
)

// DiscoveryService defines the interface for channel discovery operations
type DiscoveryService interface {
	// Discover fetches up to the configured result cap of channels matching
	// the configured keyword, deduplicated and in search relevance order.
	Discover(ctx context.Context) ([]domain.ChannelRecord, error)
}

// CatalogService defines the interface for channel catalog operations
type CatalogService interface {
	// Sync upserts the fetched records into the catalog and returns how
	// many records were synced.
	Sync(ctx context.Context, records []domain.ChannelRecord) (int, error)

	// List returns one filtered, paginated page of the catalog.
	List(ctx context.Context, filter domain.ChannelListFilter) (*domain.ChannelPage, error)
}

// Services aggregates all service interfaces. Discovery is nil when no API
// key is configured; Catalog is nil when no database is configured.
type Services struct {
	Discovery DiscoveryService
	Catalog   CatalogService
}
