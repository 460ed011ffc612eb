package container

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channelscout/internal/config"
	"channelscout/pkg/logger"
)

func TestNewWithoutOptionalDependencies(t *testing.T) {
	cfg := &config.Config{Environment: "test"}

	c, err := New(cfg, logger.NewNop())
	require.NoError(t, err)

	assert.Nil(t, c.GetRedisClient())
	assert.False(t, c.HasRedis())
	assert.Nil(t, c.GetPageCache())
	assert.Nil(t, c.GetDiscoveryService())
	assert.Equal(t, cfg, c.GetConfig())
}

func TestNewWithAPIKeyEnablesDiscovery(t *testing.T) {
	cfg := &config.Config{
		Environment:   "test",
		YouTubeAPIKey: "test-key",
		SearchKeyword: "woodworking",
		ResultCap:     100,
		ChunkSize:     50,
	}

	c, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, c.GetDiscoveryService())
}

func TestNewWithRedisEnablesPageCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{
		Environment: "test",
		RedisURL:    "redis://" + mr.Addr(),
	}

	c, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.True(t, c.HasRedis())
	assert.NotNil(t, c.GetPageCache())
}

func TestNewWithUnreachableRedisDegradesGracefully(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		RedisURL:    "redis://127.0.0.1:1", // nothing listens here
	}

	c, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, c.HasRedis())
	assert.Nil(t, c.GetPageCache())
}
