package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"treemap/internal/geom"
	"treemap/internal/trees"
)

type boundariesLoadedMsg struct {
	features []geom.Feature
	err      error
}

type treesLoadedMsg struct {
	result trees.Result
	err    error
}

type tickMsg time.Time

// frameInterval paces animation frames.
const frameInterval = time.Second / 30

func loadBoundariesCmd(l Loader) tea.Cmd {
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		f, err := l.LoadBoundaries(context.Background())
		return boundariesLoadedMsg{features: f, err: err}
	}
}

func loadTreesCmd(l Loader) tea.Cmd {
	return func() tea.Msg {
		res, err := l.LoadTrees(context.Background())
		return treesLoadedMsg{result: res, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) onBoundaries(msg boundariesLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.failed = true
		m.status = "error loading borough data: " + msg.err.Error()
		m.log.Error("error loading borough data", zap.Error(msg.err))
		return m, nil
	}
	m.boundaries = msg.features
	m.engine.SetBoundaries(msg.features)
	m.status = fmt.Sprintf("borough data loaded (%d), loading tree data...", len(msg.features))
	return m, loadTreesCmd(m.opts.Loader)
}

func (m Model) onTrees(msg treesLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.failed = true
		m.status = "error loading tree data: " + msg.err.Error()
		m.log.Error("error loading tree data", zap.Error(msg.err))
		return m, nil
	}
	m.sample = msg.result.Sample
	m.summary = trees.Summarize(m.sample)
	m.treesReady = true
	m.l.SetItems(boroughItems(boroughCounts(m.sample)))
	selectBorough(&m.l, m.filter.Borough)
	m.redraw()
	m.status = fmt.Sprintf("%d trees sampled from %d valid rows", len(m.sample), msg.result.ValidRows)
	m.log.Info("tree visualization complete", zap.Int("trees", len(m.sample)))
	return m, m.startTicking()
}

// redraw reconciles the engine with the current filter.
func (m *Model) redraw() {
	visible := m.filter.Visible(m.sample)
	m.engine.DrawTrees(visible)
	m.refreshTable()
}

// animating reports whether another frame is needed.
func (m Model) animating(now time.Time) bool {
	return m.engine.Animating(now) || m.zoom.Animating(now) || m.tooltip.fading(now)
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.animating(m.now()) {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m Model) onTick() (Model, tea.Cmd) {
	if m.animating(m.now()) {
		return m, tickCmd()
	}
	m.ticking = false
	return m, nil
}
