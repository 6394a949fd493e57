package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist defines the interface for token revocation
type TokenBlacklist interface {
	// AddToBlacklist adds a token JTI to the blacklist with a TTL
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	// IsBlacklisted checks if a token JTI is blacklisted
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// AddUserTokensToBlacklist invalidates all tokens for a user issued before now
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error
	// IsUserTokenInvalidated checks if a user's token was issued before a blanket invalidation
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}, nil
}

// NewRedisTokenBlacklistWithClient creates a blacklist with an existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

// AddToBlacklist adds a token JTI to the blacklist
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to blacklist
		return nil
	}
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token JTI is blacklisted
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

// AddUserTokensToBlacklist invalidates all tokens for a user issued before now.
// Stores the invalidation timestamp; tokens with an earlier IssuedAt are rejected.
func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := b.client.Set(ctx, b.userKey(userID), now, ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

// IsUserTokenInvalidated checks whether a token issued at tokenIssuedAt
// predates a blanket user invalidation.
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	val, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}

	invalidatedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("invalid invalidation timestamp: %w", err)
	}

	return tokenIssuedAt.Unix() <= invalidatedAt, nil
}

// InMemoryTokenBlacklist is an in-memory implementation for testing
type InMemoryTokenBlacklist struct {
	mu          sync.RWMutex
	jtis        map[string]time.Time // jti -> expiry
	invalidated map[string]time.Time // userID -> invalidation time
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)

// NewInMemoryTokenBlacklist creates an in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtis:        make(map[string]time.Time),
		invalidated: make(map[string]time.Time),
	}
}

// AddToBlacklist adds a token JTI to the blacklist
func (b *InMemoryTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token JTI is blacklisted
func (b *InMemoryTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	expiry, ok := b.jtis[jti]
	if !ok {
		return false, nil
	}
	return time.Now().Before(expiry), nil
}

// AddUserTokensToBlacklist invalidates all tokens for a user issued before now
func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidated[userID] = time.Now()
	return nil
}

// IsUserTokenInvalidated checks whether a token predates a blanket user invalidation
func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	invalidatedAt, ok := b.invalidated[userID]
	if !ok {
		return false, nil
	}
	return !tokenIssuedAt.After(invalidatedAt), nil
}
