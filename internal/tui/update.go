package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"treemap/internal/interact"
	"treemap/internal/render"
)

const (
	keyZoomFactor   = 1.5
	wheelZoomFactor = 1.25
	panStep         = 40.0 // view pixels
)

type exportedMsg struct {
	path string
	err  error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		m.tbl.SetHeight(min(lo.mapH-4, 20))
		return m, nil
	case boundariesLoadedMsg:
		return m.onBoundaries(msg)
	case treesLoadedMsg:
		return m.onTrees(msg)
	case tickMsg:
		return m.onTick()
	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			m.log.Error("export failed", zap.Error(msg.err))
		} else {
			m.status = "saved " + msg.path
			m.log.Info("map exported", zap.String("path", msg.path))
		}
		return m, nil
	case tea.KeyMsg:
		return m.onKey(msg)
	case tea.MouseMsg:
		return m.onMouse(msg)
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exportMode {
		switch msg.String() {
		case "esc":
			m.exportMode = false
			m.ti.Blur()
			m.status = "export cancelled"
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.ti.Value())
			m.exportMode = false
			m.ti.Blur()
			if path == "" {
				m.status = "export: empty path"
				return m, nil
			}
			return m, m.exportCmd(path)
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	now := m.now()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		t := m.zoom.ScaleBy(now, keyZoomFactor, float64(m.opts.CanvasWidth)/2, float64(m.opts.CanvasHeight)/2)
		m.status = fmt.Sprintf("zoom: %.2fx", t.K)
		return m, nil
	case "-", "_":
		t := m.zoom.ScaleBy(now, 1/keyZoomFactor, float64(m.opts.CanvasWidth)/2, float64(m.opts.CanvasHeight)/2)
		m.status = fmt.Sprintf("zoom: %.2fx", t.K)
		return m, nil
	case "r":
		m.zoom.Reset(now)
		m.status = "zoom reset"
		return m, m.startTicking()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.showTable = false
			selectBorough(&m.l, m.filter.Borough)
		}
		return m, nil
	case "t":
		m.showTable = !m.showTable
		if m.showTable {
			m.showSidebar = false
			m.refreshTable()
		}
		return m, nil
	case "s":
		m.showPanel = !m.showPanel
		return m, nil
	case "b":
		m.setBorough(nextBorough(m.filter.Borough))
		return m, m.startTicking()
	case "d":
		m.exportMode = true
		m.ti.SetValue(m.opts.ExportPath)
		m.ti.CursorEnd()
		m.status = "export: enter a file name"
		return m, m.ti.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
		return m, nil
	}

	if m.showSidebar {
		if msg.String() == "enter" {
			if it, ok := m.l.SelectedItem().(boroughItem); ok {
				m.setBorough(it.value)
			}
			return m, m.startTicking()
		}
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable {
		if msg.String() == "enter" {
			if id, ok := m.selectedTreeID(); ok {
				if c, found := m.engine.Circle(id); found {
					m.hoverTree = id
					m.tooltip.show(c.Record, now)
					m.status = fmt.Sprintf("tree #%d", id)
				}
			}
			return m, m.startTicking()
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up":
		m.zoom.Pan(now, 0, panStep)
	case "down":
		m.zoom.Pan(now, 0, -panStep)
	case "left":
		m.zoom.Pan(now, panStep, 0)
	case "right":
		m.zoom.Pan(now, -panStep, 0)
	}
	return m, nil
}

func nextBorough(cur string) string {
	for i, b := range interact.Boroughs {
		if b == cur {
			return interact.Boroughs[(i+1)%len(interact.Boroughs)]
		}
	}
	return interact.AllBoroughs
}

// setBorough applies a filter choice and redraws the trees.
func (m *Model) setBorough(b string) {
	m.filter.Borough = b
	selectBorough(&m.l, b)
	if !m.treesReady {
		m.status = "filter: " + interact.Label(b)
		return
	}
	m.redraw()
	if _, ok := m.engine.Circle(m.hoverTree); !ok {
		m.hoverTree = 0
		m.tooltip.hide(m.now())
	}
	m.status = fmt.Sprintf("filter: %s (%d trees)", interact.Label(b), m.engine.Len())
}

func (m Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lo := m.layout()
	now := m.now()

	if m.showSidebar && msg.X < lo.sidebarW {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable || !lo.inMap(msg.X, msg.Y) {
		m.dragging = false
		m.clearHover(now)
		return m, m.startTicking()
	}

	vp := m.viewport(lo)
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	vx, vy := vp.cellToView(cx, cy)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		t := m.zoom.ScaleBy(now, wheelZoomFactor, vx, vy)
		m.status = fmt.Sprintf("zoom: %.2fx", t.K)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		t := m.zoom.ScaleBy(now, 1/wheelZoomFactor, vx, vy)
		m.status = fmt.Sprintf("zoom: %.2fx", t.K)
		return m, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
		return m, nil
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
		return m, nil
	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx := float64((msg.X-m.dragX)*2) / vp.scale
		dy := float64((msg.Y-m.dragY)*4) / vp.scale
		m.zoom.Pan(now, dx, dy)
		m.dragX, m.dragY = msg.X, msg.Y
		return m, nil
	}

	m.hover(now, cx, cy, vp)
	return m, m.startTicking()
}

// hover resolves what lies under map cell (cx, cy): coordinates, tree and borough.
func (m *Model) hover(now time.Time, cx, cy int, vp viewport) {
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy

	t := m.zoom.Transform(now)
	vx, vy := vp.cellToView(cx, cy)
	px, py := t.Invert(vx, vy)
	m.hoverLon, m.hoverLat = m.opts.Projection.Invert(px, py)
	m.hoverHasGeo = true

	// half a cell of slack, in canvas pixels
	slack := 2 / vp.scale / t.K
	if c, ok := m.engine.HitTree(px, py, slack); ok {
		m.hoverTree = c.ID
		m.tooltip.show(c.Record, now)
	} else {
		m.hoverTree = 0
		m.tooltip.hide(now)
	}

	name := ""
	if s, ok := m.engine.HitBoundary(px, py); ok {
		name = s.Name
	}
	m.engine.SetHighlight(name)
}

func (m *Model) clearHover(now time.Time) {
	m.hovering = false
	m.hoverHasGeo = false
	m.hoverTree = 0
	m.tooltip.hide(now)
	m.engine.SetHighlight("")
}

// exportCmd snapshots the current frame and writes it off the update loop.
func (m Model) exportCmd(path string) tea.Cmd {
	now := m.now()
	scene := m.engine.Scene(now, m.zoom.Transform(now))
	svgPath := m.opts.SVGPath
	return func() tea.Msg {
		if err := render.SavePNG(path, scene); err != nil {
			return exportedMsg{path: path, err: err}
		}
		if svgPath != "" {
			if err := render.SaveSVG(svgPath, scene); err != nil {
				return exportedMsg{path: svgPath, err: err}
			}
		}
		return exportedMsg{path: path}
	}
}
