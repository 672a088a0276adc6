package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

const (
	keyShippingAddresses = "shipping-addresses:user:%s"
	keyCart              = "cart:user:%s"
	keyProducts          = "products"
	keyProductVariant    = "product-variant:slug:%s"
	keyGeneration        = "generation:%s"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStale is returned by SetIfGeneration when key was invalidated after the generation was read.
	ErrStale = errors.New("cache generation changed")
)

// Cache stores JSON values. Every Delete bumps the generation of the deleted keys so a reader that
// loaded its value before the invalidation can not write it back with SetIfGeneration.
type Cache interface {
	// Get decodes the value stored at key into dst, returning ErrCacheMiss when nothing is stored.
	Get(c context.Context, key string, dst interface{}) error
	Set(c context.Context, key string, value interface{}) error
	Delete(c context.Context, keys ...string) error
	Generation(c context.Context, key string) (int64, error)
	SetIfGeneration(c context.Context, key string, generation int64, value interface{}) error
}

func generationKey(key string) string {
	return fmt.Sprintf(keyGeneration, key)
}

func ShippingAddressesKey(userID uuid.UUID) string {
	return fmt.Sprintf(keyShippingAddresses, userID.String())
}

func CartKey(userID uuid.UUID) string {
	return fmt.Sprintf(keyCart, userID.String())
}

func ProductsKey() string {
	return keyProducts
}

func ProductVariantKey(slug string) string {
	return fmt.Sprintf(keyProductVariant, slug)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(c context.Context, key string, dst interface{}) error {
	c, span := otel.Tracer.Start(c, "RedisCache Get")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCache Get").
		Str(log.KeyCacheKey, key).
		Logger()

	logger.Trace().Msg("getting value from cache")
	value, err := r.client.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Trace().Msg("cache miss")
		return ErrCacheMiss
	}
	if err != nil {
		err = fmt.Errorf("failed getting key=%s from cache with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if err = json.Unmarshal(value, dst); err != nil {
		err = fmt.Errorf("failed unmarshaling cached key=%s with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("got value from cache")

	return nil
}

func (r *RedisCache) Set(c context.Context, key string, value interface{}) error {
	c, span := otel.Tracer.Start(c, "RedisCache Set")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCache Set").
		Str(log.KeyCacheKey, key).
		Logger()

	logger.Trace().Msg("marshaling value")
	encoded, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("failed marshaling value for key=%s with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Trace().Msg("setting value to cache")
	if err = r.client.Set(c, key, encoded, r.ttl).Err(); err != nil {
		err = fmt.Errorf("failed setting key=%s to cache with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("set value to cache")

	return nil
}

func (r *RedisCache) Delete(c context.Context, keys ...string) error {
	c, span := otel.Tracer.Start(c, "RedisCache Delete")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCache Delete").
		Strs(log.KeyCacheKey, keys).
		Logger()

	if len(keys) == 0 {
		return nil
	}

	logger.Trace().Msg("deleting keys from cache")
	_, err := r.client.TxPipelined(c, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(c, generationKey(key))
		}
		pipe.Del(c, keys...)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed deleting keys from cache with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("deleted keys from cache")

	return nil
}

func (r *RedisCache) Generation(c context.Context, key string) (int64, error) {
	c, span := otel.Tracer.Start(c, "RedisCache Generation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCache Generation").
		Str(log.KeyCacheKey, key).
		Logger()

	generation, err := r.client.Get(c, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		err = fmt.Errorf("failed getting generation of key=%s with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}
	return generation, nil
}

// SetIfGeneration sets key only while its generation still equals generation. The generation key
// is watched so a Delete racing the write aborts it.
func (r *RedisCache) SetIfGeneration(
	c context.Context,
	key string,
	generation int64,
	value interface{},
) error {
	c, span := otel.Tracer.Start(c, "RedisCache SetIfGeneration")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisCache SetIfGeneration").
		Str(log.KeyCacheKey, key).
		Int64("generation", generation).
		Logger()

	encoded, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("failed marshaling value for key=%s with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	genKey := generationKey(key)
	logger.Trace().Msg("setting value to cache")
	err = r.client.Watch(c, func(tx *redis.Tx) error {
		current, err := tx.Get(c, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStale
		}
		_, err = tx.TxPipelined(c, func(pipe redis.Pipeliner) error {
			pipe.Set(c, key, encoded, r.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		err = ErrStale
	}
	if errors.Is(err, ErrStale) {
		logger.Trace().Msg("key invalidated while loading, not caching")
		return ErrStale
	}
	if err != nil {
		err = fmt.Errorf("failed setting key=%s to cache with error=%w", key, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("set value to cache")

	return nil
}
