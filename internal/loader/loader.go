package loader

import (
	"context"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"treemap/internal/config"
	"treemap/internal/geom"
	"treemap/internal/trees"
)

// Stage sentinels. A StageError matches both its stage and its cause.
var (
	ErrBoundaryLoad = eris.New("boundary data unavailable")
	ErrTreeLoad     = eris.New("tree data unavailable")
)

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage error
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the stage sentinel and the underlying cause.
func (e *StageError) Unwrap() []error {
	return []error{e.Stage, e.Err}
}

// Dataset is everything the map renders.
type Dataset struct {
	Boundaries []geom.Feature
	Trees      trees.Result
	Summary    trees.Summary
}

// Pipeline loads boundaries first and trees only once boundaries succeeded.
type Pipeline struct {
	Boundaries     *geom.BoundaryLoader
	BoundarySource string
	TreesPath      string
	SampleSize     int
	Seed           uint64
	Timeout        time.Duration

	log *zap.Logger
}

// New builds a pipeline from configuration. cache may be nil.
func New(cfg *config.Config, cache geom.Cache) *Pipeline {
	return &Pipeline{
		Boundaries: &geom.BoundaryLoader{
			Client:       &http.Client{},
			Cache:        cache,
			CacheTTL:     cfg.Cache.TTL(),
			NameProperty: cfg.Boundaries.NameProperty,
		},
		BoundarySource: cfg.Boundaries.Source,
		TreesPath:      cfg.Trees.Path,
		SampleSize:     cfg.Trees.SampleSize,
		Seed:           cfg.Trees.Seed,
		Timeout:        cfg.Boundaries.Timeout(),
		log:            zap.L().With(zap.String("component", "loader")),
	}
}

// Projection builds the configured Mercator projection.
func Projection(cfg *config.Config) geom.Projection {
	return geom.NewMercator(
		orb.Point{cfg.Projection.CenterLon, cfg.Projection.CenterLat},
		cfg.Projection.Scale,
		cfg.Canvas.Width, cfg.Canvas.Height,
	)
}

func (p *Pipeline) logger() *zap.Logger {
	if p.log == nil {
		p.log = zap.L().With(zap.String("component", "loader"))
	}
	return p.log
}

// LoadBoundaries fetches and parses the boundary source.
func (p *Pipeline) LoadBoundaries(ctx context.Context) ([]geom.Feature, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	features, err := p.Boundaries.Load(ctx, p.BoundarySource)
	if err != nil {
		return nil, &StageError{Stage: ErrBoundaryLoad, Err: err}
	}
	p.logger().Info("borough data loaded", zap.Int("features", len(features)))
	return features, nil
}

// LoadTrees reads and samples the tree file.
func (p *Pipeline) LoadTrees(ctx context.Context) (trees.Result, error) {
	if err := ctx.Err(); err != nil {
		return trees.Result{}, &StageError{Stage: ErrTreeLoad, Err: err}
	}
	p.logger().Info("loading tree data", zap.String("path", p.TreesPath))
	res, err := trees.LoadFile(p.TreesPath, trees.Options{
		SampleSize: p.SampleSize,
		Rand:       trees.NewRand(p.Seed),
	})
	if err != nil {
		return trees.Result{}, &StageError{Stage: ErrTreeLoad, Err: err}
	}
	p.logger().Info("tree data processed", zap.Int("trees", len(res.Sample)))
	return res, nil
}

// Run loads both stages in order. When trees fail the returned dataset still
// carries the boundaries alongside the error; when boundaries fail nothing
// else is attempted.
func (p *Pipeline) Run(ctx context.Context) (Dataset, error) {
	var ds Dataset
	features, err := p.LoadBoundaries(ctx)
	if err != nil {
		p.logger().Error("error loading borough data", zap.Error(err))
		return ds, err
	}
	ds.Boundaries = features

	res, err := p.LoadTrees(ctx)
	if err != nil {
		p.logger().Error("error loading tree data", zap.Error(err))
		return ds, err
	}
	ds.Trees = res
	ds.Summary = trees.Summarize(res.Sample)
	return ds, nil
}
