package lock

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection used for leases
type RedisOptions struct {
	// Redis server address.
	Address string
	// Password required when connecting to the Redis server.
	Password string
	// DB to connect to.
	DB int
	// TLS config.
	TLSConfig *tls.Config
}

// DefaultRedisOptions points at a local Redis
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Address: "localhost:6379",
	}
}

// unlockScript deletes the key only while it still holds the caller's token
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker leases keys with SET NX PX so that migrations running in
// different processes exclude each other
type RedisLocker struct {
	client redis.UniversalClient
}

// NewRedisLocker wraps an existing client
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// OpenRedisLocker connects to Redis with the given options
func OpenRedisLocker(options RedisOptions) *RedisLocker {
	client := redis.NewClient(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB,
	})
	return NewRedisLocker(client)
}

func (r *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := newToken()
	acquired, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !acquired {
		return "", ErrLockHeld
	}
	return token, nil
}

func (r *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	deleted, err := unlockScript.Run(ctx, r.client, []string{key}, token).Int()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotOwner
	}
	return nil
}

// Close closes the underlying client
func (r *RedisLocker) Close() error {
	return r.client.Close()
}
