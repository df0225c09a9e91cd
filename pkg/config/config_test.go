package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("QUERY_JOIN_CONCURRENCY", "0")
	t.Setenv("STORE_QUERY_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 8, cfg.Store.JoinConcurrency)
	assert.Equal(t, 5*time.Second, cfg.Store.QueryTimeout)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.Redis.Enabled)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitAndTrim(" http://a , ,http://b"))
}
