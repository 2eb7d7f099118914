package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapedit/internal/edit"
)

// refreshForm rebuilds the property rows from the active graphic.
func (m *Model) refreshForm() {
	a := m.layer.Active()
	if a == nil {
		m.showForm = false
		m.editing = false
		m.fields = nil
		m.tbl.SetRows(nil)
		return
	}
	m.fields = a.Editor.Fields()
	rows := make([]table.Row, 0, len(m.fields))
	for _, f := range m.fields {
		v := f.Value
		if f.ReadOnly {
			v += " (ro)"
		}
		rows = append(rows, table.Row{f.Label, v})
	}
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) {
		m.tbl.SetCursor(max(0, len(rows)-1))
	}
}

func (m *Model) openForm() {
	if m.layer.Active() == nil {
		m.status = "nothing selected"
		return
	}
	m.showForm = true
	m.editing = false
	m.refreshForm()
}

func (m *Model) closeForm() {
	m.showForm = false
	m.editing = false
	m.in.Blur()
}

// updateForm handles keys while the property form is open.
func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
			m.in.Blur()
			m.status = "edit cancelled"
			return m, nil
		case "enter":
			m.editing = false
			m.in.Blur()
			c := m.tbl.Cursor()
			if c < 0 || c >= len(m.fields) {
				return m, nil
			}
			f := m.fields[c]
			err := m.layer.Apply(edit.Command{Kind: f.Kind, Value: m.in.Value()})
			if err != nil {
				m.fail(err)
			} else {
				m.status = fmt.Sprintf("%s set", f.Label)
				m.refreshList()
			}
			m.refreshForm()
			return m, nil
		}
		var cmd tea.Cmd
		m.in, cmd = m.in.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "esc", "f":
		m.closeForm()
		return m, nil
	case "enter":
		c := m.tbl.Cursor()
		if c < 0 || c >= len(m.fields) {
			return m, nil
		}
		f := m.fields[c]
		if f.ReadOnly || f.Kind == edit.CmdNone {
			m.status = f.Label + " is read-only"
			return m, nil
		}
		m.editing = true
		m.in.SetValue(f.Value)
		m.in.CursorEnd()
		m.status = "editing " + f.Label
		return m, m.in.Focus()
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m Model) formView(w, h int) string {
	title := "Properties"
	if a := m.layer.Active(); a != nil {
		g := a.Graphic()
		title = fmt.Sprintf("%s  %s/%s  %s", g.Name(), g.Kind(), g.RenderType(), a.Editor.State())
	}
	colW := 0
	for _, c := range m.tbl.Columns() {
		colW += c.Width + 3
	}
	maxW := min(w, max(32, colW))
	m.tbl.SetWidth(maxW - 4)
	m.tbl.SetHeight(min(h-5, len(m.fields)+1))
	body := []string{titleStyle.Render(title), m.tbl.View()}
	if m.editing {
		body = append(body, m.in.View())
	} else {
		body = append(body, dimStyle.Render("Enter edit  Esc close"))
	}
	box := boxStyle.Width(maxW).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
