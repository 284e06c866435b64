// Package cache 提供缓存相关功能
package cache

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionKeyPrefix 会话 Redis Key 前缀
	SessionKeyPrefix = "linkpepper:session:"
	// DefaultSessionTTL 默认会话 TTL
	DefaultSessionTTL = 24 * time.Hour
	// sessionTokenBytes 会话令牌随机字节数
	sessionTokenBytes = 32
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// SessionStore 钱包登录会话存储
// 令牌 -> 用户 ID, 带滑动 TTL
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionStore 创建会话存储
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Create 为用户创建新会话, 返回令牌
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	key := SessionKeyPrefix + token
	if err := s.rdb.Set(ctx, key, strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve 解析令牌为用户 ID, 命中时刷新 TTL
func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	key := SessionKeyPrefix + token
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}

	// 滑动过期, 刷新失败不影响本次解析
	_ = s.rdb.Expire(ctx, key, s.ttl).Err()

	return userID, nil
}

// Delete 删除会话 (登出)
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, SessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
