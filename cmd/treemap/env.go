package main

import (
	"context"

	"go.uber.org/zap"

	"treemap/internal/cache"
	"treemap/internal/geom"
	"treemap/internal/loader"
)

// env bundles what every command needs to reach the data.
type env struct {
	Pipeline *loader.Pipeline
	cache    *cache.Redis
}

// initEnv wires the pipeline, attaching the Redis cache when one is configured.
// An unreachable cache is logged and skipped.
func initEnv(ctx context.Context) *env {
	e := &env{}
	var c geom.Cache
	if url := cfg.Cache.RedisURL; url != "" {
		rc, err := cache.Open(ctx, url)
		if err != nil {
			zap.L().Warn("boundary cache unavailable", zap.Error(err))
		} else {
			e.cache = rc
			c = rc
		}
	}
	e.Pipeline = loader.New(cfg, c)
	return e
}

func (e *env) Close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
}
