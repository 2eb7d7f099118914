package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mapedit/internal/edit"
	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

const (
	maxZoom   = 64
	minZoom   = 0.05
	zoomStep  = 1.2
	panStep   = 4  // micro-pixels
	turnStep  = 15 // degrees
	listInset = 2
)

var createKeys = map[string]geom.Kind{
	"o": geom.KindPoint,
	"y": geom.KindPoly,
	"s": geom.KindSector,
}

var commandKeys = map[string]edit.CommandKind{
	"n":     edit.CmdAddNode,
	"x":     edit.CmdDeleteNode,
	"e":     edit.CmdAddPoint,
	"c":     edit.CmdToggleEnclose,
	"enter": edit.CmdCommit,
	"esc":   edit.CmdCancel,
}

var commandHints = map[edit.CommandKind]string{
	edit.CmdAddNode:    "add node: click an edge",
	edit.CmdDeleteNode: "delete node: click a vertex",
	edit.CmdAddPoint:   "add point: click where the next vertex goes",
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncView()
		m.l.SetSize(sidebarWidth-listInset, m.mapH-listInset)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showForm {
			return m.updateForm(msg)
		}
		if kind, ok := createKeys[msg.String()]; ok {
			m.create(kind)
			return m, nil
		}
		if k, ok := commandKeys[msg.String()]; ok && !(k == edit.CmdCommit && m.showSidebar) {
			m.apply(k)
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < maxZoom {
				m.zoom *= zoomStep
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
				m.syncView()
			}
		case "-", "_":
			if m.zoom > minZoom {
				m.zoom /= zoomStep
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
				m.syncView()
			}
		case "up":
			m.panY -= panStep
			m.syncView()
		case "down":
			m.panY += panStep
			m.syncView()
		case "left":
			m.panX -= panStep
			m.syncView()
		case "right":
			m.panX += panStep
			m.syncView()
		case "[", "]":
			if msg.String() == "[" {
				m.rotation -= turnStep
			} else {
				m.rotation += turnStep
			}
			m.status = fmt.Sprintf("rotation: %g°", m.rotation)
			m.syncView()
		case "m":
			if m.projection == "mercator" {
				m.projection = "equirect"
			} else {
				m.projection = "mercator"
			}
			m.panX, m.panY = 0, 0
			m.status = "projection: " + m.projection
			m.syncView()
		case "t":
			m.attrs.RenderType = m.attrs.RenderType%geom.RenderLatLon + 1
			m.status = "new graphics: " + m.attrs.RenderType.String()
		case "l":
			m.attrs.LineType = (m.attrs.LineType + 1) % (proj.LineRhumb + 1)
			m.status = "new lines: " + m.attrs.LineType.String()
		case "f":
			m.openForm()
		case "delete", "backspace":
			if a := m.layer.Active(); a != nil {
				name := a.Graphic().Name()
				m.layer.Remove(a.ID)
				m.status = "deleted " + name
				m.afterEdit()
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			m.syncView()
			if m.showSidebar {
				m.refreshList()
				m.l.SetSize(sidebarWidth-listInset, m.mapH-listInset)
			}
		case "enter":
			if m.showSidebar {
				m.selectListed()
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			return m, m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		}
	case tea.MouseMsg:
		m.mouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if err := m.AddWKT(w); err != nil {
			m.fail(err)
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.afterEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// AddWKT adds the geometry in s to the layer and selects it.
func (m *Model) AddWKT(s string) error {
	g, err := geom.FromWKT(s, m.attrs.LineType)
	if err != nil {
		return err
	}
	it, err := m.layer.Add(g)
	if err != nil {
		return err
	}
	m.layer.Select(it.ID)
	m.status = fmt.Sprintf("added %s from WKT", g.Kind())
	return nil
}

func (m *Model) create(kind geom.Kind) {
	if _, err := m.layer.Create(kind, m.attrs); err != nil {
		m.fail(err)
		return
	}
	switch kind {
	case geom.KindPoly:
		m.status = "new poly: click the vertices, Enter to finish"
	default:
		m.status = fmt.Sprintf("new %s: drag on the map", kind)
	}
	m.afterEdit()
}

func (m *Model) apply(k edit.CommandKind) {
	if err := m.layer.Apply(edit.Command{Kind: k}); err != nil {
		m.fail(err)
		return
	}
	if hint, ok := commandHints[k]; ok {
		m.status = hint
	} else {
		m.status = k.String()
	}
	m.afterEdit()
}

// afterEdit brings the sidebar and the form up to date with the layer.
func (m *Model) afterEdit() {
	m.statusErr = false
	m.refreshList()
	if m.showForm {
		m.refreshForm()
	}
}

func (m *Model) fail(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.log.WithError(err).Info("tui: command rejected")
}

func (m *Model) mouse(msg tea.MouseMsg) {
	ox, oy, w, h := m.layout()
	cx, cy := msg.X-ox, msg.Y-oy
	inside := cx >= 0 && cx < w && cy >= 0 && cy < h
	mx, my := micro(cx, cy)

	m.hovering = inside
	m.hoverHasGeo = false
	m.hoverTip = ""
	if inside {
		m.hoverMicX, m.hoverMicY = mx, my
		if lon, lat, ok := m.cellToLonLat(cx, cy); ok {
			m.hoverHasGeo = true
			m.hoverLon = lon
			m.hoverLat = lat
		}
		m.hoverTip = m.layer.ToolTip(mx, my)
	}
	if m.pasteMode || m.showForm {
		return
	}

	var ev edit.PointerEvent
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if m.zoom < maxZoom {
			m.zoom *= zoomStep
			m.syncView()
		}
		return
	case msg.Button == tea.MouseButtonWheelDown:
		if m.zoom > minZoom {
			m.zoom /= zoomStep
			m.syncView()
		}
		return
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return
		}
		ev = edit.PointerEvent{Kind: edit.PointerDown, X: mx, Y: my}
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		ev = edit.PointerEvent{Kind: edit.PointerMove, X: mx, Y: my}
	case msg.Action == tea.MouseActionRelease:
		ev = edit.PointerEvent{Kind: edit.PointerUp, X: mx, Y: my}
	default:
		return
	}
	if m.layer.Pointer(ev) || ev.Kind == edit.PointerDown {
		m.afterEdit()
	}
}
