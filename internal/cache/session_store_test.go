package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis 设置测试用 Redis
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr, rdb
}

func TestSessionStore_CreateAndResolve(t *testing.T) {
	_, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	_, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, err := store.Create(ctx, int64(i))
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestSessionStore_Resolve_NotFound(t *testing.T) {
	_, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()

	_, err := store.Resolve(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// 空令牌同样视为未登录
	_, err = store.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Resolve_Expired(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, time.Second)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Resolve_SlidingTTL(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, 10*time.Second)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	// 接近过期时访问一次, TTL 被刷新
	mr.FastForward(8 * time.Second)
	_, err = store.Resolve(ctx, token)
	require.NoError(t, err)

	mr.FastForward(8 * time.Second)
	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestSessionStore_Delete(t *testing.T) {
	_, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// 删除不存在的令牌不报错
	assert.NoError(t, store.Delete(ctx, "gone"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_KeyPrefix(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	defer rdb.Close()

	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, 42)
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], SessionKeyPrefix))
}
