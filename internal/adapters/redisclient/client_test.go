package redisclient_test

import (
	"os"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/redisclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesURL(t *testing.T) {
	client, err := redisclient.New("redis://:secret@cache.internal:6380/3")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	opts := client.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := redisclient.New("http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestPing(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client, err := redisclient.New("redis://" + addr + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, redisclient.Ping(t.Context(), client, 2*time.Second))
}
