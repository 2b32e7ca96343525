package tui

const (
	sidebarWidth = 28
	panelWidth   = 30
	headerHeight = 1
	footerHeight = 2
)

// layout is the cell geometry of one frame. Update and View must agree on it.
type layout struct {
	contentW, contentH int
	sidebarW, panelW   int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	lo := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
	}
	lo.mapW = lo.contentW
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
		lo.mapW -= sidebarWidth + 1
	}
	if m.showPanel {
		lo.panelW = panelWidth
		lo.mapW -= panelWidth + 1
	}
	lo.mapW = max(10, lo.mapW)
	lo.mapY = headerHeight
	lo.mapH = lo.contentH
	return lo
}

func (lo layout) inMap(x, y int) bool {
	return x >= lo.mapX && x < lo.mapX+lo.mapW && y >= lo.mapY && y < lo.mapY+lo.mapH
}

func (m Model) viewport(lo layout) viewport {
	return newViewport(lo.mapW, lo.mapH, m.opts.CanvasWidth, m.opts.CanvasHeight)
}
