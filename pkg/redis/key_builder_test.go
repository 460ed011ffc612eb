package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilderPrefix(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		want        string
	}{
		{name: "production", environment: "production", want: "prod"},
		{name: "development", environment: "development", want: "staging"},
		{name: "staging", environment: "staging", want: "staging"},
		{name: "test", environment: "test", want: "staging"},
		{name: "unknown defaults to prod", environment: "", want: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.want, kb.GetPrefix())
		})
	}
}

func TestKeyChannelPageIncludesVersionAndFilter(t *testing.T) {
	kb := NewKeyBuilder("production")

	key := kb.KeyChannelPage(3, 500, 2000, 2)
	assert.Equal(t, "prod:channels:page:v3:500:2000:2", key)
}

func TestKeyCatalogVersion(t *testing.T) {
	kb := NewKeyBuilder("staging")
	assert.Equal(t, "staging:channels:version", kb.KeyCatalogVersion())
}
