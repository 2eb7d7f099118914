package edit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

// Editor drives one graphic through the editing states.
type Editor interface {
	Graphic() geom.Graphic
	State() State
	Projection() proj.Projection
	// SetProjection regenerates the graphic for p and re-places the handles.
	SetProjection(p proj.Projection)
	// Pointer feeds a mouse gesture; it reports whether the editor used it.
	Pointer(ev PointerEvent) bool
	Apply(cmd Command) error
	Fields() []Field
	// Render draws the shape and the handles visible in the current state.
	Render(c geom.Canvas)
	Handles() []*GrabPoint
	HandleAt(x, y int) *GrabPoint
	// Moving is the handle being dragged, nil when idle.
	Moving() *GrabPoint
}

// impl is what each graphic kind plugs into the shared state machine.
type impl interface {
	graphic() geom.Graphic
	// handles lists the handles visible in the current state.
	handles() []*GrabPoint
	// anchor is the OFFSET anchor, nil for other render types.
	anchor() *OffsetGrabPoint
	// setGrabPoints places the handles from the logical fields.
	setGrabPoints()
	// readGrabPoints writes the logical fields from the handles. moved is the handle
	// that was dragged; nil means every handle moved together.
	readGrabPoints(moved *GrabPoint)
	// grabbed is called when a drag of gp starts.
	grabbed(gp *GrabPoint)
	// place handles a press while nothing is placed yet. It returns the handle to
	// drag, if any, and whether the press was used.
	place(x, y int) (*GrabPoint, bool)
}

// nodeEditor is implemented by editors with vertex insertion and removal.
type nodeEditor interface {
	node(ev PointerEvent) bool
}

type editor struct {
	impl      impl
	proj      proj.Projection
	state     State
	moving    *GrabPoint
	group     *OffsetGrabPoint
	wholesale bool
	dx, dy    int
	snapshot  geom.Graphic
	log       logrus.FieldLogger
}

func (e *editor) Graphic() geom.Graphic { return e.impl.graphic() }

func (e *editor) State() State { return e.state }

func (e *editor) Projection() proj.Projection { return e.proj }

func (e *editor) Moving() *GrabPoint { return e.moving }

func (e *editor) Handles() []*GrabPoint { return e.impl.handles() }

func (e *editor) fields() logrus.Fields {
	g := e.impl.graphic()
	return logrus.Fields{
		"graphic": g.Name(),
		"kind":    g.Kind().String(),
		"state":   e.state.String(),
	}
}

func (e *editor) setState(s State) {
	if s == e.state {
		return
	}
	e.log.WithFields(e.fields()).WithField("next", s.String()).Debug("edit: state change")
	e.state = s
}

func (e *editor) SetProjection(p proj.Projection) {
	e.proj = p
	e.impl.graphic().SetNeedToRegenerate(true)
	e.regenerate()
}

// regenerate rebuilds a stale shape and re-places the handles from it.
func (e *editor) regenerate() {
	g := e.impl.graphic()
	if !g.Regenerate(e.proj) {
		e.log.WithFields(e.fields()).Debug("edit: shape not generated")
	}
	e.impl.setGrabPoints()
}

func (e *editor) HandleAt(x, y int) *GrabPoint {
	var best *GrabPoint
	bestD := math.MaxInt
	for _, gp := range e.impl.handles() {
		if !gp.Near(x, y, HandleTolerance) {
			continue
		}
		dx, dy := gp.X-x, gp.Y-y
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = gp, d
		}
	}
	return best
}

func (e *editor) Render(c geom.Canvas) {
	if c == nil {
		return
	}
	hs := e.impl.handles()
	// nothing is placed yet; the graphic still sits at its off-view default
	if e.state == StateUndefined && len(hs) == 0 {
		return
	}
	e.impl.graphic().Render(c)
	for _, gp := range hs {
		c.Handle(gp.X, gp.Y)
	}
}

func (e *editor) Pointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		return e.down(ev.X, ev.Y)
	case PointerMove:
		if e.moving == nil {
			return false
		}
		e.drag(ev.X, ev.Y)
		return true
	case PointerUp:
		if e.moving == nil {
			return false
		}
		e.drag(ev.X, ev.Y)
		e.release()
		return true
	}
	return false
}

func (e *editor) down(x, y int) bool {
	switch e.state {
	case StateUndefined:
		gp, ok := e.impl.place(x, y)
		if !ok || gp == nil {
			return ok
		}
		e.begin(gp, nil, x, y)
		e.setState(StateEdit)
		return true
	case StateSelected:
		if gp := e.HandleAt(x, y); gp != nil {
			if a := e.impl.anchor(); a != nil && gp == &a.GrabPoint {
				e.begin(gp, a, x, y)
				e.setState(StateSetOffset)
				return true
			}
			e.begin(gp, nil, x, y)
			e.setState(StateEdit)
			return true
		}
		if e.impl.graphic().Distance(float64(x), float64(y)) <= HandleTolerance {
			e.move(x, y)
			e.setState(StateEdit)
			return true
		}
		return false
	case StateAddNode, StateDeleteNode, StateAddPoint:
		if n, ok := e.impl.(nodeEditor); ok {
			return n.node(PointerEvent{Kind: PointerDown, X: x, Y: y})
		}
	}
	return false
}

func (e *editor) begin(gp *GrabPoint, group *OffsetGrabPoint, x, y int) {
	e.snapshot = e.impl.graphic().Clone()
	e.moving = gp
	e.group = group
	e.wholesale = false
	e.dx, e.dy = gp.X-x, gp.Y-y
	if group != nil {
		group.UpdateOffsets()
	}
	e.impl.grabbed(gp)
	e.log.WithFields(e.fields()).WithField("handle", gp.String()).Debug("edit: drag start")
}

// move starts dragging the whole graphic. OFFSET graphics move through their anchor;
// the others through a temporary anchor owning every handle.
func (e *editor) move(x, y int) {
	if a := e.impl.anchor(); a != nil {
		e.begin(&a.GrabPoint, a, x, y)
		return
	}
	syn := NewOffsetGrabPoint(x, y)
	for _, gp := range e.impl.handles() {
		syn.Add(gp)
	}
	e.begin(&syn.GrabPoint, syn, x, y)
	e.wholesale = true
}

func (e *editor) drag(x, y int) {
	tx, ty := x+e.dx, y+e.dy
	if e.group != nil {
		e.group.Set(tx, ty)
	} else {
		e.moving.Set(tx, ty)
	}
	if e.proj == nil {
		return
	}
	if e.wholesale {
		e.impl.readGrabPoints(nil)
	} else {
		e.impl.readGrabPoints(e.moving)
	}
	e.regenerate()
}

func (e *editor) release() {
	e.log.WithFields(e.fields()).Debug("edit: drag end")
	e.moving = nil
	e.group = nil
	e.wholesale = false
	e.snapshot = nil
	e.setState(StateSelected)
}

// cancelDrag puts the graphic back the way it was when the drag started.
func (e *editor) cancelDrag() {
	if e.snapshot != nil {
		e.impl.graphic().Restore(e.snapshot)
		e.impl.graphic().SetNeedToRegenerate(true)
	}
	e.moving = nil
	e.group = nil
	e.wholesale = false
	e.snapshot = nil
	e.regenerate()
	e.setState(StateSelected)
}

// applyCommon handles the commands every editor understands. ok is false when the
// command is left to the caller.
func (e *editor) applyCommon(cmd Command) (ok bool, err error) {
	switch cmd.Kind {
	case CmdCommitName:
		n, isNameable := e.impl.graphic().(geom.Nameable)
		if !isNameable {
			return true, fmt.Errorf("%w: %s has no name", ErrNotApplicable, e.impl.graphic().Kind())
		}
		n.SetName(strings.TrimSpace(cmd.Value))
		return true, nil
	case CmdCommitRotation:
		r, isRotatable := e.impl.graphic().(geom.Rotatable)
		if !isRotatable {
			return true, fmt.Errorf("%w: %s has no rotation", ErrNotApplicable, e.impl.graphic().Kind())
		}
		deg, err := parseFloat(cmd.Value, "rotation")
		if err != nil {
			return true, err
		}
		r.SetRotation(deg * math.Pi / 180)
		e.regenerate()
		return true, nil
	case CmdCancel:
		switch e.state {
		case StateEdit, StateSetOffset:
			e.cancelDrag()
		case StateAddNode, StateDeleteNode, StateAddPoint:
			e.setState(StateSelected)
		}
		return true, nil
	case CmdCommit:
		switch e.state {
		case StateAddNode, StateDeleteNode, StateAddPoint:
			e.setState(StateSelected)
		case StateEdit, StateSetOffset:
			e.release()
		}
		return true, nil
	}
	return false, nil
}

func notApplicable(cmd Command, g geom.Graphic) error {
	return fmt.Errorf("%w: %s on %s %s", ErrNotApplicable, cmd.Kind, g.RenderType(), g.Kind())
}

func parseFloat(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidInput, what, s)
	}
	return v, nil
}

func parseLat(s string) (float64, error) {
	v, err := parseFloat(s, "latitude")
	if err != nil {
		return 0, err
	}
	if v < -90 || v > 90 {
		return 0, fmt.Errorf("%w: latitude %v out of range", ErrInvalidInput, v)
	}
	return v, nil
}

func parseLon(s string) (float64, error) {
	v, err := parseFloat(s, "longitude")
	if err != nil {
		return 0, err
	}
	if v < -180 || v > 180 {
		return 0, fmt.Errorf("%w: longitude %v out of range", ErrInvalidInput, v)
	}
	return v, nil
}

func parseInt(s, what string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid(what, s)
	}
	return v, nil
}

func invalid(what, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidInput, what, value)
}

// formatFloat drops the noise left by degree/radian conversions.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e9)/1e9, 'f', -1, 64)
}

func deg(r float64) float64 { return r * 180 / math.Pi }
func rad(d float64) float64 { return d * math.Pi / 180 }

func round(v float64) int { return int(math.Round(v)) }

func pixel(p orb.Point) (int, int) { return round(p[0]), round(p[1]) }

// inverse returns the plotable lat/lon under (x, y).
func (e *editor) inverse(x, y int) (lat, lon float64, ok bool) {
	if e.proj == nil {
		return 0, 0, false
	}
	lat, lon = e.proj.Inverse(float64(x), float64(y))
	lon = proj.NormalizeLon(lon)
	return lat, lon, e.proj.IsPlotable(lat, lon)
}

// samePixel reports whether lat/lon projects onto the pixel of gp.
func (e *editor) samePixel(gp *GrabPoint, lat, lon float64) bool {
	if e.proj == nil || !e.proj.IsPlotable(lat, lon) {
		return false
	}
	x, y := pixel(e.proj.Forward(lat, lon))
	return x == gp.X && y == gp.Y
}
