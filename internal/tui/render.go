package tui

import (
	"strings"

	"mapedit/internal/canvas"
	"mapedit/internal/proj"
)

// syncView rebuilds the projection after a resize, zoom, pan or rotation and
// regenerates every graphic for it.
func (m *Model) syncView() {
	_, _, w, h := m.layout()
	m.mapW, m.mapH = w, h
	m.layer.SetProjection(newProjection(m.projection, w*2, h*4, m.zoom, m.panX, m.panY, m.rotation))
}

// cellToLonLat converts a map cell back to lon/lat through the current projection.
func (m Model) cellToLonLat(cx, cy int) (float64, float64, bool) {
	p := m.layer.Projection()
	if p == nil {
		return 0, 0, false
	}
	mx, my := micro(cx, cy)
	lat, lon := p.Inverse(float64(mx), float64(my))
	lon = proj.NormalizeLon(lon)
	if !p.IsPlotable(lat, lon) {
		return 0, 0, false
	}
	return lon, lat, true
}

func (m Model) renderMap(w, h int) string {
	br := canvas.New(w, h)
	m.layer.Render(br)

	// the handle being dragged or under the pointer is drawn in orange
	if a := m.layer.Active(); a != nil {
		if gp := a.Editor.Moving(); gp != nil {
			br.Highlight(gp.X, gp.Y)
		} else if m.hovering {
			if gp := a.Editor.HandleAt(m.hoverMicX, m.hoverMicY); gp != nil {
				br.Highlight(gp.X, gp.Y)
			}
		}
	}

	lines := br.Lines()
	for y, line := range lines {
		r := []rune(line)
		var sb strings.Builder
		plain := 0
		for x := range r {
			if !br.Highlighted(x, y) {
				continue
			}
			sb.WriteString(string(r[plain:x]))
			glyph := string(r[x])
			if r[x] == ' ' {
				glyph = "◯"
			}
			sb.WriteString(hoverStyle.Render(glyph))
			plain = x + 1
		}
		if plain == 0 {
			continue
		}
		sb.WriteString(string(r[plain:]))
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
