package lock

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dreambody:lock:"

// releaseScript deletes the key only when it still carries our token, so an
// expired holder never frees a lock that someone else re-acquired.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (locker *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	redisKey := redisKeyPrefix + key

	acquired, err := locker.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire redis lock %s: %w", key, err)
	}
	if !acquired {
		return nil, ErrHeld
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, locker.client, []string{redisKey}, token).Err(); err != nil {
				log.Printf("release redis lock %s: %v", key, err)
			}
		})
	}, nil
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings the server. It returns nil when the server
// is unreachable so callers can fall back to an in-process locker.
func NewRedisClient(options RedisOptions) *redis.Client {
	if options.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     options.Addr,
		Password: options.Password,
		DB:       options.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
