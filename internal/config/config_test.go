package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channelscout/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SEARCH_RESULT_CAP", "SEARCH_CHUNK_SIZE", "PAGE_SIZE", "MAX_SUBSCRIBERS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 100, cfg.ResultCap)
	assert.Equal(t, 50, cfg.ChunkSize)
	assert.Equal(t, 30, cfg.PageSize)
	assert.Equal(t, int64(domain.MaxSubscriberCeiling), cfg.MaxSubscribers)
}

func TestChunkSizeCappedAtSearchLimit(t *testing.T) {
	t.Setenv("SEARCH_CHUNK_SIZE", "200")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, searchChunkLimit, cfg.ChunkSize)
}

func TestChunkSizeFloor(t *testing.T) {
	t.Setenv("SEARCH_CHUNK_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ChunkSize)
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    []string
	}{
		{
			name:    "comma separated with spaces",
			origins: "http://a.test, http://b.test",
			want:    []string{"http://a.test", "http://b.test"},
		},
		{
			name:    "empty",
			origins: "",
			want:    []string{},
		},
		{
			name:    "trailing comma",
			origins: "http://a.test,",
			want:    []string{"http://a.test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.origins))
		})
	}
}
