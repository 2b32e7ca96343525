package tui

import (
	"context"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"treemap/internal/geom"
	"treemap/internal/interact"
	"treemap/internal/render"
	"treemap/internal/trees"
)

// Loader is the two-stage data source behind the map.
type Loader interface {
	LoadBoundaries(ctx context.Context) ([]geom.Feature, error)
	LoadTrees(ctx context.Context) (trees.Result, error)
}

// Options configures the interactive map.
type Options struct {
	Loader        Loader
	Projection    geom.Projection
	CanvasWidth   int
	CanvasHeight  int
	ZoomMin       float64
	ZoomMax       float64
	ResetDuration time.Duration
	EnterDuration time.Duration
	TooltipFade   time.Duration
	ExportPath    string
	SVGPath       string
	// Now replaces time.Now; tests pin it.
	Now func() time.Time
}

type Model struct {
	width  int
	height int

	opts Options
	now  func() time.Time
	log  *zap.Logger

	helpVisible bool
	showSidebar bool
	showPanel   bool
	showTable   bool

	status string
	failed bool

	engine *render.Engine
	zoom   *interact.Zoom
	filter interact.FilterState

	// Data
	boundaries []geom.Feature
	sample     trees.SampleSet
	summary    trees.Summary
	treesReady bool

	// borough picker
	l list.Model

	// tree table
	tbl table.Model

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverTree   int // record ID, 0 when none
	tooltip     tooltipState

	// drag-to-pan
	dragging     bool
	dragX, dragY int

	// export prompt
	exportMode bool
	ti         textinput.Model

	ticking bool
}

// New builds the model; Init starts loading.
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CanvasWidth <= 0 || opts.CanvasHeight <= 0 {
		opts.CanvasWidth, opts.CanvasHeight = 800, 600
	}
	if opts.ZoomMin <= 0 || opts.ZoomMax < opts.ZoomMin {
		opts.ZoomMin, opts.ZoomMax = 1, 8
	}
	if opts.ExportPath == "" {
		opts.ExportPath = "tree_map.png"
	}
	m := Model{
		opts:        opts,
		now:         opts.Now,
		log:         zap.L().With(zap.String("component", "tui")),
		helpVisible: true,
		showPanel:   true,
		status:      "loading borough data...",
		engine: render.NewEngine(opts.Projection, opts.CanvasWidth, opts.CanvasHeight,
			render.WithEnterDuration(opts.EnterDuration), render.WithClock(opts.Now)),
		zoom:   interact.NewZoom(opts.ZoomMin, opts.ZoomMax, opts.ResetDuration),
		filter: interact.NewFilterState(),
		l:      newBoroughList(),
		tbl:    newTreeTable(),
	}
	m.tooltip.fade = opts.TooltipFade
	m.ti = textinput.New()
	m.ti.Prompt = "save as: "
	m.ti.CharLimit = 512
	return m
}

func (m Model) Init() tea.Cmd {
	return loadBoundariesCmd(m.opts.Loader)
}

// Status is the current status line text.
func (m Model) Status() string { return m.status }

// Transform is the current view transform.
func (m Model) Transform() geom.Transform { return m.zoom.Transform(m.now()) }

// Borough is the active filter value.
func (m Model) Borough() string { return m.filter.Borough }

// Engine exposes the render engine.
func (m Model) Engine() *render.Engine { return m.engine }
