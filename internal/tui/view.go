package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"treemap/internal/interact"
	"treemap/internal/render"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()
	now := m.now()

	// Header
	t := m.zoom.Transform(now)
	header := titleStyle.Render(" treemap ─ NYC street trees ") +
		dimStyle.Render(fmt.Sprintf(" borough: %s  zoom: %.2fx", interact.Label(m.filter.Borough), t.K))
	header = lipgloss.NewStyle().Width(lo.contentW).MaxHeight(headerHeight).Render(header)

	// Map viewport
	var mapView string
	if m.showTable {
		box := boxStyle.Render(titleStyle.Render("Trees") + "\n" + m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		scene := m.engine.Scene(now, t)
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).
			Render(renderScene(scene, m.viewport(lo), m.overlay(now)))
	}

	cols := []string{}
	if m.showSidebar {
		cols = append(cols, lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View()), " ")
	}
	cols = append(cols, mapView)
	if m.showPanel {
		cols = append(cols, " ", lipgloss.NewStyle().Width(lo.panelW).Height(lo.contentH).Render(m.renderPanel(lo)))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter(lo))
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// renderPanel stacks the legend and the health summary.
func (m Model) renderPanel(lo layout) string {
	var legend []string
	for _, e := range render.Legend {
		legend = append(legend, swatch(e.Color)+" "+e.Label)
	}
	boxes := []string{boxStyle.Width(lo.panelW - 2).Render(strings.Join(legend, "\n"))}

	if m.treesReady {
		lines := m.summary.Lines()
		lines[0] = boldStyle.Render(lines[0])
		boxes = append(boxes, boxStyle.Width(lo.panelW-2).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

// overlay anchors the tooltip at the pointer, or at the focused tree when the
// pointer is off the map (a pick from the tree table).
func (m Model) overlay(now time.Time) overlay {
	o := overlay{
		focusID: m.hoverTree,
		cursor:  m.hovering,
		cursorX: m.hoverCellX,
		cursorY: m.hoverCellY,
		tipBg:   tooltipFrom,
	}
	o.tip, o.tipFg = m.tooltip.lines(now)
	return o
}

func (m Model) renderFooter(lo layout) string {
	if m.exportMode {
		return lipgloss.NewStyle().Width(lo.contentW).Render(m.ti.View())
	}
	st := dimStyle
	if m.failed {
		st = errStyle
	}
	status := st.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		where := fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)
		if name := m.engine.Highlighted(); name != "" {
			where = name + "  " + where
		}
		coords = dimStyle.Render("  " + where + "  ")
	}
	spacerW := max(0, lo.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	top := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)
	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderHelp())
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→/drag pan",
		"+/-/wheel zoom",
		"r reset",
		"Tab borough",
		"b next borough",
		"t trees",
		"s panel",
		"d download",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
