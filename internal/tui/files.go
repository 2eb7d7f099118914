package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/google/uuid"

	"mapedit/internal/layer"
)

type graphicItem struct {
	title, desc string
	id          uuid.UUID
}

func (g graphicItem) Title() string       { return g.title }
func (g graphicItem) Description() string { return g.desc }
func (g graphicItem) FilterValue() string { return g.title }

func newGraphicItem(it *layer.Item, active bool) graphicItem {
	g := it.Graphic()
	title := g.Name()
	if active {
		title = "● " + title
	}
	return graphicItem{
		title: title,
		desc:  fmt.Sprintf("%s %s  %s", g.RenderType(), g.Kind(), it.ID.String()[:8]),
		id:    it.ID,
	}
}

// refreshList mirrors the layer into the sidebar, topmost graphic first.
func (m *Model) refreshList() {
	items := m.layer.Items()
	out := make([]list.Item, 0, len(items))
	active := m.layer.Active()
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, newGraphicItem(items[i], items[i] == active))
	}
	m.l.SetItems(out)
}

// selectListed makes the graphic under the list cursor active.
func (m *Model) selectListed() {
	it, ok := m.l.SelectedItem().(graphicItem)
	if !ok {
		return
	}
	if m.layer.Select(it.id) {
		m.status = "selected " + it.title
		m.refreshList()
	}
}
