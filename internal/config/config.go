package config

import (
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultBoundaryURL is the NYC borough boundary collection the map is drawn over.
const DefaultBoundaryURL = "https://raw.githubusercontent.com/dwillis/nyc-maps/master/boroughs.geojson"

// DefaultTreesPath is the street tree census extract, relative to the working directory.
const DefaultTreesPath = "data_files/2015_Street_Tree_Census_-_Tree_Data_20241120.csv"

// Config holds the full application configuration.
type Config struct {
	Boundaries BoundariesConfig `yaml:"boundaries" mapstructure:"boundaries"`
	Trees      TreesConfig      `yaml:"trees" mapstructure:"trees"`
	Canvas     CanvasConfig     `yaml:"canvas" mapstructure:"canvas"`
	Projection ProjectionConfig `yaml:"projection" mapstructure:"projection"`
	Zoom       ZoomConfig       `yaml:"zoom" mapstructure:"zoom"`
	Render     RenderConfig     `yaml:"render" mapstructure:"render"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// BoundariesConfig locates the borough polygons.
type BoundariesConfig struct {
	Source       string `yaml:"source" mapstructure:"source"`
	NameProperty string `yaml:"name_property" mapstructure:"name_property"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the fetch timeout; zero means none.
func (b BoundariesConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// TreesConfig locates the tree census CSV and controls sampling.
type TreesConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	SampleSize int    `yaml:"sample_size" mapstructure:"sample_size"`
	// Seed fixes the sample draw. Zero draws a fresh sample on every run.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

// CanvasConfig is the size of the rendered surface in pixels.
type CanvasConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// ProjectionConfig parameterizes the Mercator projection.
type ProjectionConfig struct {
	CenterLon float64 `yaml:"center_lon" mapstructure:"center_lon"`
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	Scale     float64 `yaml:"scale" mapstructure:"scale"`
}

// ZoomConfig bounds the view transform.
type ZoomConfig struct {
	Min     float64 `yaml:"min" mapstructure:"min"`
	Max     float64 `yaml:"max" mapstructure:"max"`
	ResetMS int     `yaml:"reset_ms" mapstructure:"reset_ms"`
}

// ResetDuration is the length of the animated zoom reset.
func (z ZoomConfig) ResetDuration() time.Duration {
	return time.Duration(z.ResetMS) * time.Millisecond
}

// RenderConfig holds animation timings.
type RenderConfig struct {
	EnterMS       int `yaml:"enter_ms" mapstructure:"enter_ms"`
	TooltipFadeMS int `yaml:"tooltip_fade_ms" mapstructure:"tooltip_fade_ms"`
}

// EnterDuration is how long a new tree circle takes to grow in.
func (r RenderConfig) EnterDuration() time.Duration {
	return time.Duration(r.EnterMS) * time.Millisecond
}

// TooltipFade is the tooltip fade length.
func (r RenderConfig) TooltipFade() time.Duration {
	return time.Duration(r.TooltipFadeMS) * time.Millisecond
}

// ExportConfig names the export artifacts.
type ExportConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`
	SVGPath string `yaml:"svg_path" mapstructure:"svg_path"`
}

// CacheConfig configures the optional boundary fetch cache.
type CacheConfig struct {
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// TTL is how long a cached boundary document stays valid.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TREEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("boundaries.source", DefaultBoundaryURL)
	v.SetDefault("boundaries.name_property", "BoroName")
	v.SetDefault("boundaries.timeout_secs", 30)
	v.SetDefault("trees.path", DefaultTreesPath)
	v.SetDefault("trees.sample_size", 1000)
	v.SetDefault("trees.seed", 0)
	v.SetDefault("canvas.width", 800)
	v.SetDefault("canvas.height", 600)
	v.SetDefault("projection.center_lon", -74.006)
	v.SetDefault("projection.center_lat", 40.7128)
	v.SetDefault("projection.scale", 30000.0)
	v.SetDefault("zoom.min", 1.0)
	v.SetDefault("zoom.max", 8.0)
	v.SetDefault("zoom.reset_ms", 750)
	v.SetDefault("render.enter_ms", 500)
	v.SetDefault("render.tooltip_fade_ms", 200)
	v.SetDefault("export.path", "tree_map.png")
	v.SetDefault("export.svg_path", "")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return eris.Errorf("config: canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if !(c.Projection.Scale > 0) || math.IsInf(c.Projection.Scale, 0) {
		return eris.Errorf("config: projection.scale must be positive, got %g", c.Projection.Scale)
	}
	if c.Trees.SampleSize <= 0 {
		return eris.Errorf("config: trees.sample_size must be positive, got %d", c.Trees.SampleSize)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		return eris.Errorf("config: invalid zoom range [%g, %g]", c.Zoom.Min, c.Zoom.Max)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
