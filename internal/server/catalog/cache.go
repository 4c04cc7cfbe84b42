package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Provider is anything that can return a catalog document.
type Provider interface {
	GetItem(ctx context.Context, itemID int64) (json.RawMessage, error)
}

// ConnectRedis parses a redis:// URL and pings the server.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 2
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RedisCache stores documents as plain string values.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// CachedProvider serves documents from a cache and falls back to next.
// Cache failures are logged and treated as misses.
type CachedProvider struct {
	next   Provider
	cache  Cache
	ttl    time.Duration
	logger logging.Logger
}

func NewCachedProvider(next Provider, cache Cache, ttl time.Duration, l logging.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl, logger: l.With("collaborator", "catalog_cache")}
}

func cacheKey(itemID int64) string {
	return "catalog:item:" + strconv.FormatInt(itemID, 10)
}

func (p *CachedProvider) GetItem(ctx context.Context, itemID int64) (json.RawMessage, error) {
	key := cacheKey(itemID)

	b, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
		return json.RawMessage(b), nil
	case errors.Is(err, ErrCacheMiss):
		metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CatalogCacheLookups.WithLabelValues("error").Inc()
		p.logger.Warn(ctx, "catalog cache get failed", "key", key, "error", err)
	}

	doc, err := p.next.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, doc, p.ttl); err != nil {
		p.logger.Warn(ctx, "catalog cache set failed", "key", key, "error", err)
	}
	return doc, nil
}
