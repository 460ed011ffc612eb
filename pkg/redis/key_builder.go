package redis

import "fmt"

// Cache key templates. Listing pages carry the catalog version so a refresh
// invalidates every cached page with one INCR instead of a key scan.
const (
	keyCatalogVersion = "channels:version"
	keyChannelPage    = "channels:page:v%d:%d:%d:%d" // version, min, max, page
)

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyCatalogVersion returns the catalog version counter key
func (kb *KeyBuilder) KeyCatalogVersion() string {
	return kb.BuildKey(keyCatalogVersion)
}

// KeyChannelPage returns the cache key for one filtered listing page
func (kb *KeyBuilder) KeyChannelPage(version, minSubs, maxSubs int64, page int) string {
	return kb.BuildKey(fmt.Sprintf(keyChannelPage, version, minSubs, maxSubs, page))
}
