package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// keyPrefix namespaces every entry the map writes.
const keyPrefix = "treemap:boundaries:"

// pingTimeout bounds the connection check in Open.
const pingTimeout = 5 * time.Second

// Redis stores fetched boundary documents in Redis.
type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

// Open parses url, connects and pings the server.
func Open(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, eris.Wrap(err, "cache: parse redis url")
	}
	client := redis.NewClient(opts)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrapf(err, "cache: connect to %s", opts.Addr)
	}

	log := zap.L().With(zap.String("component", "cache"))
	log.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return New(client), nil
}

// New wraps an existing client.
func New(client *redis.Client) *Redis {
	return &Redis{client: client, log: zap.L().With(zap.String("component", "cache"))}
}

// Get returns the cached document for key; a miss is not an error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "cache: get")
	}
	r.log.Debug("cache hit", zap.String("key", key), zap.Int("bytes", len(data)))
	return data, true, nil
}

// Set stores value under key. A zero ttl keeps it forever.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return eris.Wrap(err, "cache: set")
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return eris.Wrap(r.client.Close(), "cache: close")
}
