package geom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	data map[string][]byte
	sets int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = value
	c.sets++
	return nil
}

func TestBoundaryLoader_Remote(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(boroughsJSON))
	}))
	defer srv.Close()

	cache := &memCache{}
	l := &BoundaryLoader{Client: srv.Client(), Cache: cache, CacheTTL: time.Hour, NameProperty: "BoroName"}

	features, err := l.Load(t.Context(), srv.URL+"/boroughs.geojson")
	require.NoError(t, err)
	assert.Len(t, features, 2)
	assert.Equal(t, 1, cache.sets)

	// second load is served from the cache
	features, err = l.Load(t.Context(), srv.URL+"/boroughs.geojson")
	require.NoError(t, err)
	assert.Len(t, features, 2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestBoundaryLoader_RemoteStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	l := &BoundaryLoader{Client: srv.Client()}
	_, err := l.Load(t.Context(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestBoundaryLoader_RemoteCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	l := &BoundaryLoader{Client: srv.Client()}
	_, err := l.Load(ctx, srv.URL)
	assert.Error(t, err)
}
