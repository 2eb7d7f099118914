// Package layer keeps the graphics of one map view and routes input to the one being
// edited.
package layer

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mapedit/internal/edit"
	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

// ErrNoSelection is returned by Apply when no graphic is active.
var ErrNoSelection = errors.New("layer: nothing selected")

// Item is a graphic in the layer with its editor.
type Item struct {
	ID     uuid.UUID
	Editor edit.Editor
}

func (it *Item) Graphic() geom.Graphic { return it.Editor.Graphic() }

// Layer holds graphics in drawing order. At most one is active; it gets the pointer
// first and draws its handles.
type Layer struct {
	items  []*Item
	active *Item
	proj   proj.Projection
	log    logrus.FieldLogger
}

type Option func(*Layer)

func WithLogger(l logrus.FieldLogger) Option {
	return func(ly *Layer) { ly.log = l }
}

func New(p proj.Projection, opts ...Option) *Layer {
	l := &Layer{proj: p, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Layer) Projection() proj.Projection { return l.proj }

// SetProjection regenerates every graphic for p.
func (l *Layer) SetProjection(p proj.Projection) {
	l.proj = p
	for _, it := range l.items {
		it.Editor.SetProjection(p)
	}
}

func (l *Layer) editOptions() []edit.Option {
	return []edit.Option{edit.WithProjection(l.proj), edit.WithLogger(l.log)}
}

// Add puts an existing graphic on top of the layer.
func (l *Layer) Add(g geom.Graphic) (*Item, error) {
	e, err := edit.For(g, l.editOptions()...)
	if err != nil {
		return nil, err
	}
	return l.push(e), nil
}

// Create starts a new graphic of kind and makes it active. Its first pointer
// gestures place it.
func (l *Layer) Create(kind geom.Kind, attrs edit.Attributes) (*Item, error) {
	e, err := edit.New(kind, attrs, l.editOptions()...)
	if err != nil {
		return nil, err
	}
	l.Deselect()
	it := l.push(e)
	l.active = it
	return it, nil
}

func (l *Layer) push(e edit.Editor) *Item {
	it := &Item{ID: uuid.New(), Editor: e}
	l.items = append(l.items, it)
	l.log.WithFields(logrus.Fields{
		"id":   it.ID.String(),
		"kind": e.Graphic().Kind().String(),
	}).Info("layer: graphic added")
	return it
}

// Items returns the graphics in drawing order.
func (l *Layer) Items() []*Item { return append([]*Item(nil), l.items...) }

func (l *Layer) Len() int { return len(l.items) }

func (l *Layer) Get(id uuid.UUID) (*Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

func (l *Layer) Active() *Item { return l.active }

// Select makes the graphic with id active.
func (l *Layer) Select(id uuid.UUID) bool {
	it, ok := l.Get(id)
	if !ok {
		return false
	}
	if it != l.active {
		l.Deselect()
		l.active = it
	}
	return true
}

// Deselect drops the active graphic. An unfinished drag is committed, and a graphic
// that was never placed is removed.
func (l *Layer) Deselect() {
	it := l.active
	if it == nil {
		return
	}
	l.active = nil
	switch it.Editor.State() {
	case edit.StateUndefined:
		if err := it.Editor.Apply(edit.Command{Kind: edit.CmdCommit}); err != nil || it.Editor.State() == edit.StateUndefined {
			l.Remove(it.ID)
		}
	case edit.StateSelected:
	default:
		_ = it.Editor.Apply(edit.Command{Kind: edit.CmdCommit})
	}
}

// Remove deletes the graphic with id.
func (l *Layer) Remove(id uuid.UUID) bool {
	for i, it := range l.items {
		if it.ID != id {
			continue
		}
		l.items = append(l.items[:i], l.items[i+1:]...)
		if l.active == it {
			l.active = nil
		}
		l.log.WithField("id", id.String()).Info("layer: graphic removed")
		return true
	}
	return false
}

// Hit returns the topmost graphic within reach of (x, y), nil when there is none.
func (l *Layer) Hit(x, y int) *Item {
	var best *Item
	bestD := math.Inf(1)
	for i := len(l.items) - 1; i >= 0; i-- {
		it := l.items[i]
		d := it.Graphic().Distance(float64(x), float64(y))
		if it == l.active && it.Editor.HandleAt(x, y) != nil {
			d = 0
		}
		if d <= edit.HandleTolerance && d < bestD {
			best, bestD = it, d
		}
	}
	return best
}

// Pointer hands ev to the active graphic. A press it does not use selects the
// graphic under the pointer and starts a drag on it.
func (l *Layer) Pointer(ev edit.PointerEvent) bool {
	if a := l.active; a != nil {
		if a.Editor.Pointer(ev) {
			return true
		}
		// placing and node picking keep the focus
		if a.Editor.State() != edit.StateSelected {
			return false
		}
	}
	if ev.Kind != edit.PointerDown {
		return false
	}
	hit := l.Hit(ev.X, ev.Y)
	if hit == nil {
		l.Deselect()
		return false
	}
	if hit == l.active {
		return false
	}
	l.Select(hit.ID)
	hit.Editor.Pointer(ev)
	return true
}

// Apply sends cmd to the active graphic. A cancel that leaves the graphic unplaced
// removes it.
func (l *Layer) Apply(cmd edit.Command) error {
	a := l.active
	if a == nil {
		return ErrNoSelection
	}
	err := a.Editor.Apply(cmd)
	if cmd.Kind == edit.CmdCancel && a.Editor.State() == edit.StateUndefined {
		l.Remove(a.ID)
	}
	return err
}

// ToolTip is the name of the graphic under (x, y).
func (l *Layer) ToolTip(x, y int) string {
	if it := l.Hit(x, y); it != nil {
		return it.Graphic().Name()
	}
	return ""
}

// Render draws every graphic, then the active one with its handles on top.
func (l *Layer) Render(c geom.Canvas) {
	for _, it := range l.items {
		if it == l.active {
			continue
		}
		it.Graphic().Render(c)
	}
	if l.active != nil {
		l.active.Editor.Render(c)
	}
}
