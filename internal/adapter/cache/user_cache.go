package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "users-page-service/internal/domain/user"
)

// ListKey is the Redis key holding the full users list.
const ListKey = "users:all"

// UserListCache caches the full, ordered users list.
type UserListCache interface {
	// Get returns the cached list, or nil on a cache miss.
	Get(ctx context.Context) ([]domain.User, error)

	// Set stores the list with the configured TTL.
	Set(ctx context.Context, users []domain.User) error

	// Invalidate drops the cached list.
	Invalidate(ctx context.Context) error
}

// cachedUser is the stored form of a user.
type cachedUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	UpdatedAt string `json:"updatedAt"`
}

// RedisUserListCache implements UserListCache using Redis as the backing store.
type RedisUserListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserListCache creates a new Redis-backed users list cache.
func NewRedisUserListCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserListCache {
	return &RedisUserListCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Get retrieves the users list from Redis.
func (c *RedisUserListCache) Get(ctx context.Context) ([]domain.User, error) {
	data, err := c.client.Get(ctx, ListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("key", ListKey))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", ListKey), zap.Error(err))
		return nil, err
	}

	var stored []cachedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		c.log.Error("failed to unmarshal cached users", zap.Error(err))
		return nil, err
	}

	users := make([]domain.User, len(stored))
	for i, u := range stored {
		users[i] = domain.User{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Phone:     u.Phone,
			UpdatedAt: u.UpdatedAt,
		}
	}

	c.log.Debug("cache hit", zap.Int("count", len(users)))
	return users, nil
}

// Set stores the users list in Redis with TTL.
func (c *RedisUserListCache) Set(ctx context.Context, users []domain.User) error {
	stored := make([]cachedUser, len(users))
	for i, u := range users {
		stored[i] = cachedUser{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Phone:     u.Phone,
			UpdatedAt: u.UpdatedAt,
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, ListKey, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("key", ListKey), zap.Error(err))
		return err
	}

	c.log.Debug("cached users", zap.Int("count", len(users)), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes the users list from Redis.
func (c *RedisUserListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, ListKey).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("key", ListKey), zap.Error(err))
		return err
	}

	c.log.Debug("invalidated cache", zap.String("key", ListKey))
	return nil
}
