package geom

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// maxBoundaryBytes caps a remote boundary download.
const maxBoundaryBytes = 64 << 20

// Cache stores fetched boundary documents keyed by URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// BoundaryLoader resolves a boundary source (URL or local path) into features.
type BoundaryLoader struct {
	Client       *http.Client
	Cache        Cache
	CacheTTL     time.Duration
	NameProperty string
}

// Load fetches and parses source. Remote sources are GeoJSON; local files are
// dispatched on extension (.geojson, .json, .shp, .wkt).
func (l *BoundaryLoader) Load(ctx context.Context, source string) ([]Feature, error) {
	log := zap.L().With(zap.String("component", "geom.boundaries"))
	log.Info("loading boundaries", zap.String("source", source))

	var (
		features []Feature
		err      error
	)
	if isRemote(source) {
		var data []byte
		data, err = l.fetch(ctx, source)
		if err == nil {
			features, err = ParseGeoJSON(data, l.NameProperty)
		}
	} else {
		features, err = l.loadFile(source)
	}
	if err != nil {
		log.Error("boundary load failed", zap.Error(err))
		return nil, err
	}

	log.Info("boundaries loaded", zap.Int("features", len(features)))
	return features, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (l *BoundaryLoader) loadFile(path string) ([]Feature, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "geom: read geojson")
		}
		return ParseGeoJSON(data, l.NameProperty)
	case ".shp":
		return LoadShapefile(path, l.NameProperty)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "geom: read wkt")
		}
		return ParseWKT(string(data))
	default:
		return nil, eris.Errorf("geom: unsupported boundary file %q", ext)
	}
}

func (l *BoundaryLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	log := zap.L().With(zap.String("component", "geom.boundaries"))

	if l.Cache != nil {
		data, ok, err := l.Cache.Get(ctx, url)
		switch {
		case err != nil:
			log.Warn("boundary cache read failed", zap.Error(err))
		case ok:
			log.Debug("boundary cache hit", zap.String("url", url))
			return data, nil
		}
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geom: build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geom: fetch boundaries")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geom: fetch returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBoundaryBytes))
	if err != nil {
		return nil, eris.Wrap(err, "geom: read boundary body")
	}

	if l.Cache != nil {
		if err := l.Cache.Set(ctx, url, data, l.CacheTTL); err != nil {
			log.Warn("boundary cache write failed", zap.Error(err))
		}
	}
	return data, nil
}
