package edit

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"mapedit/internal/geom"
)

// PolyEditor edits a geom.Poly with one handle per vertex, plus the anchor for
// OFFSET polys.
type PolyEditor struct {
	editor
	poly  *geom.Poly
	verts []*GrabPoint
	anch  *OffsetGrabPoint
}

func newPolyEditor(p *geom.Poly, state State, o options) *PolyEditor {
	e := &PolyEditor{poly: p}
	e.editor = editor{impl: e, state: state, log: o.log, proj: o.proj}
	if p.RenderType() == geom.RenderOffset {
		e.anch = NewOffsetGrabPoint(-1, -1)
	}
	for i := 0; i < p.Len(); i++ {
		gp := &GrabPoint{X: -1, Y: -1, Role: RoleVertex, Index: i}
		e.verts = append(e.verts, gp)
		if e.anch != nil {
			e.anch.Add(gp)
		}
	}
	if e.proj != nil {
		e.regenerate()
	}
	return e
}

func (e *PolyEditor) Poly() *geom.Poly { return e.poly }

func (e *PolyEditor) graphic() geom.Graphic     { return e.poly }
func (e *PolyEditor) anchor() *OffsetGrabPoint { return e.anch }

func (e *PolyEditor) handles() []*GrabPoint {
	out := slices.Clone(e.verts)
	switch e.state {
	case StateAddNode, StateDeleteNode, StateAddPoint:
		return out
	case StateUndefined:
		if len(out) == 0 {
			return nil
		}
	}
	if e.anch != nil {
		out = append(out, &e.anch.GrabPoint)
	}
	return out
}

func (e *PolyEditor) setGrabPoints() {
	if e.proj == nil || e.poly.NeedToRegenerate() {
		return
	}
	switch e.poly.RenderType() {
	case geom.RenderLatLon:
		for i, gp := range e.verts {
			lat, lon := e.poly.Vertex(i)
			lat, lon = deg(lat), deg(lon)
			if e.proj.IsPlotable(lat, lon) {
				gp.Set(pixel(e.proj.Forward(lat, lon)))
			}
		}
	case geom.RenderXY, geom.RenderOffset:
		pts, ok := e.poly.ScreenXY(e.proj)
		if !ok {
			return
		}
		for i, gp := range e.verts {
			gp.Set(pixel(pts[i]))
		}
		if e.anch != nil {
			lat, lon := e.poly.Anchor()
			e.anch.GrabPoint.Set(pixel(e.proj.Forward(deg(lat), deg(lon))))
			e.anch.UpdateOffsets()
		}
	}
}

func (e *PolyEditor) readGrabPoints(moved *GrabPoint) {
	if e.proj == nil {
		return
	}
	p := e.poly
	switch p.RenderType() {
	case geom.RenderLatLon:
		for i, gp := range e.verts {
			lat, lon := p.Vertex(i)
			if e.samePixel(gp, deg(lat), deg(lon)) {
				continue
			}
			if la, lo, ok := e.inverse(gp.X, gp.Y); ok {
				p.SetVertex(i, rad(la), rad(lo))
			}
		}
	case geom.RenderXY:
		for i, gp := range e.verts {
			p.SetVertexXY(i, gp.X, gp.Y)
		}
	case geom.RenderOffset:
		if moved == &e.anch.GrabPoint {
			lat, lon := p.Anchor()
			if !e.samePixel(moved, deg(lat), deg(lon)) {
				if la, lo, ok := e.inverse(moved.X, moved.Y); ok {
					p.SetAnchor(rad(la), rad(lo))
				}
			}
		}
		px, py := e.anch.X, e.anch.Y
		for i, gp := range e.verts {
			p.SetVertexXY(i, gp.X-px, gp.Y-py)
			if p.CoordMode() == geom.CoordPrevious {
				px, py = gp.X, gp.Y
			}
		}
	}
}

func (e *PolyEditor) grabbed(*GrabPoint) {}

func (e *PolyEditor) place(x, y int) (*GrabPoint, bool) {
	n := len(e.verts)
	if n >= 3 && e.verts[0].Near(x, y, HandleTolerance) {
		e.enclose(true)
		e.regenerate()
		e.setState(StateSelected)
		return nil, true
	}
	switch e.poly.RenderType() {
	case geom.RenderLatLon:
		if _, _, ok := e.inverse(x, y); !ok {
			return nil, false
		}
	case geom.RenderOffset:
		if n == 0 {
			lat, lon, ok := e.inverse(x, y)
			if !ok {
				return nil, false
			}
			e.poly.SetAnchor(rad(lat), rad(lon))
			e.anch.GrabPoint.Set(x, y)
		}
	}
	return nil, e.AddPoint(&GrabPoint{X: x, Y: y, Role: RoleVertex}, n) >= 0
}

func (e *PolyEditor) checkCount() {
	if len(e.verts) != e.poly.Len() {
		panic(fmt.Sprintf("edit: %d grab points for %d vertices in %q", len(e.verts), e.poly.Len(), e.poly.Name()))
	}
}

func (e *PolyEditor) reindex() {
	for i, gp := range e.verts {
		gp.Index = i
	}
}

func (e *PolyEditor) enclose(on bool) {
	if e.poly.IsPolygon() == on {
		return
	}
	e.log.WithFields(e.fields()).WithField("enclosed", on).Debug("edit: enclose")
	e.poly.SetPolygon(on)
}

// AddPoint inserts a vertex at the position of gp before pos and returns the index it
// went to, or -1 when the position cannot be placed. pos <= 0 prepends and
// pos >= the vertex count appends.
func (e *PolyEditor) AddPoint(gp *GrabPoint, pos int) int {
	e.checkCount()
	n := len(e.verts)
	pos = max(0, min(pos, n))
	// an enclosed poly is opened across the seam while its ends change
	seam := e.poly.IsPolygon() && (pos == 0 || pos == n)
	if seam {
		e.enclose(false)
	}
	switch e.poly.RenderType() {
	case geom.RenderLatLon:
		lat, lon, ok := e.inverse(gp.X, gp.Y)
		if !ok {
			if seam {
				e.enclose(true)
			}
			return -1
		}
		pos = e.poly.InsertLatLon(pos, rad(lat), rad(lon))
	case geom.RenderXY:
		pos = e.poly.InsertXY(pos, gp.X, gp.Y)
	case geom.RenderOffset:
		px, py := e.anch.X, e.anch.Y
		if e.poly.CoordMode() == geom.CoordPrevious && pos > 0 {
			px, py = e.verts[pos-1].X, e.verts[pos-1].Y
		}
		pos = e.poly.InsertXY(pos, gp.X-px, gp.Y-py)
	}
	gp.Role = RoleVertex
	e.verts = slices.Insert(e.verts, pos, gp)
	e.reindex()
	if e.anch != nil {
		e.anch.Add(gp)
	}
	if seam {
		e.enclose(true)
	}
	e.checkCount()
	e.log.WithFields(e.fields()).WithField("index", pos).Debug("edit: vertex added")
	e.regenerate()
	return pos
}

// DeletePoint removes the vertex at pos, clamped to the ends, and returns the index
// removed or -1 for an empty poly.
func (e *PolyEditor) DeletePoint(pos int) int {
	e.checkCount()
	n := len(e.verts)
	if n == 0 {
		return -1
	}
	pos = max(0, min(pos, n-1))
	seam := e.poly.IsPolygon() && (pos == 0 || pos == n-1)
	if seam {
		e.enclose(false)
	}
	e.poly.DeleteVertex(pos)
	gp := e.verts[pos]
	e.verts = slices.Delete(e.verts, pos, pos+1)
	e.reindex()
	if e.anch != nil {
		e.anch.Remove(gp)
	}
	if seam {
		e.enclose(true)
	}
	e.checkCount()
	e.log.WithFields(e.fields()).WithField("index", pos).Debug("edit: vertex deleted")
	e.regenerate()
	return pos
}

// edgeAt returns the insert position for a new vertex on the edge under (x, y), or -1.
func (e *PolyEditor) edgeAt(x, y int) int {
	n := len(e.verts)
	pt := orb.Point{float64(x), float64(y)}
	at := func(i int) orb.Point { return orb.Point{float64(e.verts[i].X), float64(e.verts[i].Y)} }
	best, bestD := -1, math.Inf(1)
	for i := 1; i < n; i++ {
		if d := planar.DistanceFromSegment(at(i-1), at(i), pt); d <= HandleTolerance && d < bestD {
			best, bestD = i, d
		}
	}
	if e.poly.IsPolygon() && n > 2 {
		if d := planar.DistanceFromSegment(at(n-1), at(0), pt); d <= HandleTolerance && d < bestD {
			best = n
		}
	}
	return best
}

func (e *PolyEditor) node(ev PointerEvent) bool {
	switch e.state {
	case StateAddNode:
		pos := e.edgeAt(ev.X, ev.Y)
		if pos < 0 || e.AddPoint(&GrabPoint{X: ev.X, Y: ev.Y}, pos) < 0 {
			return false
		}
	case StateDeleteNode:
		gp := e.HandleAt(ev.X, ev.Y)
		if gp == nil || gp.Role != RoleVertex {
			return false
		}
		e.DeletePoint(gp.Index)
	case StateAddPoint:
		if e.AddPoint(&GrabPoint{X: ev.X, Y: ev.Y}, len(e.verts)) < 0 {
			return false
		}
	default:
		return false
	}
	e.setState(StateSelected)
	return true
}

// reset drops every vertex of a poly that was never finished.
func (e *PolyEditor) reset() {
	e.enclose(false)
	for len(e.verts) > 0 {
		e.DeletePoint(len(e.verts) - 1)
	}
}

func (e *PolyEditor) Fields() []Field {
	p := e.poly
	enclosed := "no"
	if p.IsPolygon() {
		enclosed = "yes"
	}
	fs := []Field{
		{Label: "Name", Kind: CmdCommitName, Value: p.Name()},
		{Label: "Vertices", Kind: CmdNone, Value: strconv.Itoa(p.Len()), ReadOnly: true},
		{Label: "Enclosed", Kind: CmdNone, Value: enclosed, ReadOnly: true},
	}
	switch p.RenderType() {
	case geom.RenderLatLon:
		fs = append(fs, Field{Label: "Line type", Kind: CmdNone, Value: p.LineType().String(), ReadOnly: true})
	case geom.RenderOffset:
		lat, lon := p.Anchor()
		fs = append(fs,
			Field{Label: "Anchor latitude", Kind: CmdCommitLatitude, Value: formatFloat(deg(lat))},
			Field{Label: "Anchor longitude", Kind: CmdCommitLongitude, Value: formatFloat(deg(lon))},
			Field{Label: "Offsets from", Kind: CmdNone, Value: p.CoordMode().String(), ReadOnly: true},
		)
	}
	return fs
}

func (e *PolyEditor) Apply(cmd Command) error {
	if e.state == StateUndefined {
		switch cmd.Kind {
		case CmdCommit:
			if len(e.verts) < 2 {
				return fmt.Errorf("%w: poly needs at least 2 vertices", ErrNotApplicable)
			}
			e.setState(StateSelected)
			return nil
		case CmdCancel:
			e.reset()
			return nil
		}
	}
	if ok, err := e.applyCommon(cmd); ok {
		return err
	}
	p := e.poly
	switch cmd.Kind {
	case CmdAddNode, CmdDeleteNode, CmdAddPoint:
		if e.state != StateSelected {
			return fmt.Errorf("%w: %s while %s", ErrNotApplicable, cmd.Kind, e.state)
		}
		switch cmd.Kind {
		case CmdAddNode:
			if len(e.verts) < 2 {
				return fmt.Errorf("%w: no edge to add a node to", ErrNotApplicable)
			}
			e.setState(StateAddNode)
		case CmdDeleteNode:
			if len(e.verts) == 0 {
				return fmt.Errorf("%w: no vertex to delete", ErrNotApplicable)
			}
			e.setState(StateDeleteNode)
		default:
			e.setState(StateAddPoint)
		}
		return nil
	case CmdToggleEnclose:
		e.enclose(!p.IsPolygon())
		e.regenerate()
		return nil
	case CmdCommitLatitude, CmdCommitLongitude:
		if p.RenderType() != geom.RenderOffset {
			return notApplicable(cmd, p)
		}
		lat, lon := p.Anchor()
		if cmd.Kind == CmdCommitLatitude {
			v, err := parseLat(cmd.Value)
			if err != nil {
				return err
			}
			lat = rad(v)
		} else {
			v, err := parseLon(cmd.Value)
			if err != nil {
				return err
			}
			lon = rad(v)
		}
		p.SetAnchor(lat, lon)
		e.regenerate()
		return nil
	}
	return notApplicable(cmd, p)
}
