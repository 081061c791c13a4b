package kv

import (
	"context"
	"os"
	"testing"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set DIARY_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run these.
func openRedis(t *testing.T) *RedisStore {
	t.Helper()
	url := os.Getenv("DIARY_TEST_REDIS_URL")
	if url == "" {
		t.Skip("DIARY_TEST_REDIS_URL not set")
	}
	s, err := OpenRedis(context.Background(), url)
	require.NoError(t, err)
	s.prefix = "gophdiary-test:" + uuid.NewString() + ":"
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedis_KeyPrefix(t *testing.T) {
	s := NewRedisStore(nil, "p:")
	assert.Equal(t, "p:diaries", s.key("diaries"))
}

func TestRedis_OpenBadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "http://not-redis")
	require.ErrorContains(t, err, "redis url")
}

func TestRedis_GetPutUpdate(t *testing.T) {
	s := openRedis(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "diaries")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.Put(ctx, "diaries", []byte("a")))
	require.NoError(t, s.Update(ctx, "diaries", func(cur []byte, found bool) ([]byte, error) {
		require.True(t, found)
		return append(cur, 'b'), nil
	}))

	v, err := s.Get(ctx, "diaries")
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), v)
	require.NoError(t, s.Ping(ctx))
}
