// README: One-time code storage. Redis-backed when available, with an
// in-process fallback so local development works without Redis.
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPCache stores phone -> code with an expiry. Codes are evicted on read.
type OTPCache interface {
	Put(ctx context.Context, phone, code string, ttl time.Duration) error
	Take(ctx context.Context, phone string) (string, bool)
}

// GenerateOTP returns a zero-padded 6 digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type RedisOTPCache struct {
	client *redis.Client
}

func NewRedisOTPCache(client *redis.Client) *RedisOTPCache {
	return &RedisOTPCache{client: client}
}

func otpKey(phone string) string { return "otp:" + phone }

func (c *RedisOTPCache) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	if err := c.client.Set(ctx, otpKey(phone), code, ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

func (c *RedisOTPCache) Take(ctx context.Context, phone string) (string, bool) {
	code, err := c.client.GetDel(ctx, otpKey(phone)).Result()
	if err != nil {
		return "", false
	}
	return code, true
}

type memoryOTPEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryOTPCache keeps codes in process memory. Suitable for tests and
// single-instance deployments only.
type MemoryOTPCache struct {
	mu      sync.Mutex
	entries map[string]memoryOTPEntry
}

func NewMemoryOTPCache() *MemoryOTPCache {
	return &MemoryOTPCache{entries: make(map[string]memoryOTPEntry)}
}

func (c *MemoryOTPCache) Put(_ context.Context, phone, code string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[phone] = memoryOTPEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *MemoryOTPCache) Take(_ context.Context, phone string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[phone]
	if !ok {
		return "", false
	}
	delete(c.entries, phone)
	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.code, true
}
