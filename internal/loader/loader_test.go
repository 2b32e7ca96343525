package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treemap/internal/config"
	"treemap/internal/geom"
)

const boroughs = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"BoroName":"Manhattan"},
  "geometry":{"type":"Polygon","coordinates":[[[-74.02,40.70],[-73.93,40.70],[-73.93,40.88],[-74.02,40.88],[-74.02,40.70]]]}}
]}`

const treeCSV = `tree_id,latitude,longitude,health,spc_common,tree_dbh,borough
1,40.7,-74.0,Good,oak,10,Manhattan
2,,-73.9,Fair,maple,5,Brooklyn
3,40.6,-73.9,Poor,elm,x,Queens
`

func testConfig(t *testing.T, source, treesPath string) *config.Config {
	t.Helper()
	return &config.Config{
		Boundaries: config.BoundariesConfig{Source: source, NameProperty: "BoroName", TimeoutSecs: 5},
		Trees:      config.TreesConfig{Path: treesPath, SampleSize: 1000, Seed: 7},
		Canvas:     config.CanvasConfig{Width: 800, Height: 600},
		Projection: config.ProjectionConfig{CenterLon: -74.006, CenterLat: 40.7128, Scale: 30000},
		Cache:      config.CacheConfig{TTLHours: 1},
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRun_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(boroughs))
	}))
	defer srv.Close()

	p := New(testConfig(t, srv.URL, writeFile(t, "trees.csv", treeCSV)), nil)
	ds, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Boundaries, 1)
	assert.Equal(t, "Manhattan", ds.Boundaries[0].Name)
	assert.Equal(t, 3, ds.Trees.TotalRows)
	assert.Equal(t, 2, ds.Trees.ValidRows)
	assert.Len(t, ds.Trees.Sample, 2)
	assert.Equal(t, 1, ds.Summary.Good)
	assert.Equal(t, 1, ds.Summary.Poor)
}

func TestRun_BoundaryFailureSkipsTrees(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New(testConfig(t, srv.URL, writeFile(t, "trees.csv", treeCSV)), nil)
	ds, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBoundaryLoad))
	assert.False(t, errors.Is(err, ErrTreeLoad))
	assert.Empty(t, ds.Boundaries)
	assert.Empty(t, ds.Trees.Sample)
}

func TestRun_TreeFailureKeepsBoundaries(t *testing.T) {
	src := writeFile(t, "boroughs.geojson", boroughs)
	p := New(testConfig(t, src, filepath.Join(t.TempDir(), "missing.csv")), nil)

	ds, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTreeLoad))
	assert.Len(t, ds.Boundaries, 1)
	assert.Empty(t, ds.Trees.Sample)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), "tree data unavailable")
}

func TestLoadTrees_CancelledContext(t *testing.T) {
	p := New(testConfig(t, "", writeFile(t, "trees.csv", treeCSV)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.LoadTrees(ctx)
	assert.True(t, errors.Is(err, ErrTreeLoad))
	assert.True(t, errors.Is(err, context.Canceled))
}

type countingCache struct {
	data map[string][]byte
	sets atomic.Int32
}

func (c *countingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *countingCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets.Add(1)
	c.data[key] = value
	return nil
}

var _ geom.Cache = (*countingCache)(nil)

func TestNew_WiresCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(boroughs))
	}))
	defer srv.Close()

	c := &countingCache{data: map[string][]byte{}}
	p := New(testConfig(t, srv.URL, ""), c)
	for i := 0; i < 2; i++ {
		_, err := p.LoadBoundaries(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, int32(1), c.sets.Load())
}

func TestProjection(t *testing.T) {
	proj := Projection(testConfig(t, "", ""))
	x, y := proj.Project(-74.006, 40.7128)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
}
