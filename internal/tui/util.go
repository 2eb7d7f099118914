package tui

import (
	"math"

	"github.com/paulmach/orb"

	"mapedit/internal/proj"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout returns the map area in cells, origin included.
func (m Model) layout() (originX, originY, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	return sw, headerHeight, max(10, contentWidth-sw), contentHeight
}

// micro maps a map cell to the micro-pixel the editors see for it.
func micro(cx, cy int) (int, int) { return cx * 2, cy*4 + 2 }

// newProjection builds the view for a w x h micro-pixel map.
func newProjection(name string, w, h int, zoom float64, panX, panY int, rotation float64) proj.Projection {
	rot := rotation * math.Pi / 180
	switch name {
	case "mercator":
		p := proj.NewMercator(w, h)
		p.Scale /= zoom
		// the pan moves the center, found on the unrotated view
		lat, lon := p.Inverse(float64(w)/2-float64(panX), float64(h)/2-float64(panY))
		p.Center = orb.Point{lon, lat}
		p.Rot = rot
		return p
	default:
		p := proj.NewEquirect(w, h)
		p.Zoom = zoom
		p.OffsetX, p.OffsetY = panX, panY
		p.Rot = rot
		return p
	}
}
