package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treemap/internal/geom"
)

var _ geom.Cache = (*Redis)(nil)

func TestRedis_RoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	c, err := Open(ctx, "redis://"+srv.Addr())
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "https://example.test/boroughs.geojson")
	require.NoError(t, err)
	assert.False(t, ok)

	doc := []byte(`{"type":"FeatureCollection","features":[]}`)
	require.NoError(t, c.Set(ctx, "https://example.test/boroughs.geojson", doc, time.Hour))

	got, ok, err := c.Get(ctx, "https://example.test/boroughs.geojson")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, got)

	assert.True(t, srv.Exists(keyPrefix+"https://example.test/boroughs.geojson"))
	assert.Equal(t, time.Hour, srv.TTL(keyPrefix+"https://example.test/boroughs.geojson"))
}

func TestRedis_Expiry(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()
	c, err := Open(ctx, "redis://"+srv.Addr())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	srv.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "not a url")
	assert.Error(t, err)

	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()
	_, err = Open(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
