package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"mentorbook/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	Nil                   = redis.Nil
	lockValue             = "1"
)

// RedisCache durations are in seconds.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every key matching the glob pattern.
	Clear(ctx context.Context, pattern string) error
	// Lock reports false when the key is already held.
	Lock(ctx context.Context, key string, duration int) (bool, error)
	Unlock(ctx context.Context, key string) error
	// Increment bumps a counter whose window starts with its first increment.
	Increment(ctx context.Context, key string, window int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func fail(op, key, action string, err error) error {
	log.Error().Err(err).Str("key", key).Str("RedisCache", op).Msg("failed to " + action)

	return fmt.Errorf("failed to %s: %w", action, err)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	payload, ok := value.(string)
	if !ok {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fail("Save", key, "marshal cache value", err)
		}

		payload = string(encoded)
	}

	if err = cache.client.Set(ctx, key, payload, seconds(duration)).Err(); err != nil {
		return fail("Save", key, "set cache value", err)
	}

	return nil
}

// Get leaves value untouched and wraps Nil on a miss.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	raw, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if s, ok := value.(*string); ok {
		*s = raw

		return nil
	}

	if err = json.Unmarshal([]byte(raw), value); err != nil {
		return fail("Get", key, "unmarshal cache value", err)
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		return fail("Delete", key, "delete cache value", err)
	}

	return nil
}

func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer scope.TraceIfError(&err)

	iter := cache.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err = cache.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fail("Clear", iter.Val(), "delete cache value", err)
		}
	}

	if err = iter.Err(); err != nil {
		return fail("Clear", pattern, "scan cache keys", err)
	}

	return nil
}

func (cache *redisCache) Lock(ctx context.Context, key string, duration int) (acquired bool, err error) {
	ctx, scope := cache.scope(ctx, "Lock", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	acquired, err = cache.client.SetNX(ctx, key, lockValue, seconds(duration)).Result()
	if err != nil {
		return false, fail("Lock", key, "acquire lock", err)
	}

	return acquired, nil
}

func (cache *redisCache) Unlock(ctx context.Context, key string) (err error) {
	ctx, scope := cache.scope(ctx, "Unlock", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		return fail("Unlock", key, "release lock", err)
	}

	return nil
}

func (cache *redisCache) Increment(ctx context.Context, key string, window int) (count int64, err error) {
	ctx, scope := cache.scope(ctx, "Increment", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	var incr *redis.IntCmd

	_, err = cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, seconds(window))

		return nil
	})
	if err != nil {
		return 0, fail("Increment", key, "increment counter", err)
	}

	return incr.Val(), nil
}
