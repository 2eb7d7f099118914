package edit

import (
	"math"
	"strconv"

	"mapedit/internal/geom"
)

// PointEditor edits a geom.Point through its center handle and, for OFFSET points,
// the anchor handle.
type PointEditor struct {
	editor
	point  *geom.Point
	center GrabPoint
	anch   *OffsetGrabPoint
}

func newPointEditor(p *geom.Point, state State, o options) *PointEditor {
	e := &PointEditor{point: p, center: GrabPoint{X: -1, Y: -1, Role: RoleCenter}}
	e.editor = editor{impl: e, state: state, log: o.log}
	if p.RenderType() == geom.RenderOffset {
		e.anch = NewOffsetGrabPoint(-1, -1)
		e.anch.Add(&e.center)
	}
	e.proj = o.proj
	if e.proj != nil {
		e.regenerate()
	}
	return e
}

func (e *PointEditor) Point() *geom.Point { return e.point }

func (e *PointEditor) graphic() geom.Graphic     { return e.point }
func (e *PointEditor) anchor() *OffsetGrabPoint { return e.anch }

func (e *PointEditor) handles() []*GrabPoint {
	if e.state == StateUndefined {
		return nil
	}
	out := []*GrabPoint{&e.center}
	if e.anch != nil {
		out = append(out, &e.anch.GrabPoint)
	}
	return out
}

func (e *PointEditor) setGrabPoints() {
	if e.proj == nil || e.point.NeedToRegenerate() {
		return
	}
	c, ok := e.point.Center(e.proj)
	if !ok {
		return
	}
	e.center.Set(pixel(c))
	if e.anch != nil {
		e.anch.GrabPoint.Set(pixel(e.proj.Forward(e.point.Lat(), e.point.Lon())))
		e.anch.UpdateOffsets()
	}
}

func (e *PointEditor) readGrabPoints(moved *GrabPoint) {
	if e.proj == nil {
		return
	}
	p := e.point
	switch p.RenderType() {
	case geom.RenderXY:
		p.SetXY(e.center.X, e.center.Y)
	case geom.RenderLatLon:
		if e.samePixel(&e.center, p.Lat(), p.Lon()) {
			return
		}
		if lat, lon, ok := e.inverse(e.center.X, e.center.Y); ok {
			p.SetLatLon(lat, lon)
		}
	case geom.RenderOffset:
		if moved == &e.anch.GrabPoint && !e.samePixel(moved, p.Lat(), p.Lon()) {
			if lat, lon, ok := e.inverse(moved.X, moved.Y); ok {
				p.SetLatLon(lat, lon)
			}
		}
		p.SetXY(e.center.X-e.anch.X, e.center.Y-e.anch.Y)
	}
}

func (e *PointEditor) grabbed(*GrabPoint) {}

func (e *PointEditor) place(x, y int) (*GrabPoint, bool) {
	if e.point.RenderType() != geom.RenderXY {
		lat, lon, ok := e.inverse(x, y)
		if !ok {
			return nil, false
		}
		e.point.SetLatLon(lat, lon)
		if e.anch != nil {
			e.anch.GrabPoint.Set(x, y)
			e.point.SetXY(0, 0)
		}
	}
	e.center.Set(x, y)
	if e.anch != nil {
		e.anch.UpdateOffsets()
	}
	e.readGrabPoints(&e.center)
	e.regenerate()
	return &e.center, true
}

func (e *PointEditor) Fields() []Field {
	p := e.point
	fs := []Field{{Label: "Name", Kind: CmdCommitName, Value: p.Name()}}
	if p.RenderType() != geom.RenderXY {
		fs = append(fs,
			Field{Label: "Latitude", Kind: CmdCommitLatitude, Value: formatFloat(p.Lat())},
			Field{Label: "Longitude", Kind: CmdCommitLongitude, Value: formatFloat(p.Lon())},
		)
	}
	if p.RenderType() != geom.RenderLatLon {
		fs = append(fs,
			Field{Label: "X", Kind: CmdNone, Value: strconv.Itoa(p.X()), ReadOnly: true},
			Field{Label: "Y", Kind: CmdNone, Value: strconv.Itoa(p.Y()), ReadOnly: true},
		)
	}
	return append(fs,
		Field{Label: "Radius", Kind: CmdCommitRadius, Value: strconv.Itoa(p.Radius())},
		Field{Label: "Rotation", Kind: CmdCommitRotation, Value: formatFloat(p.Rotation() * 180 / math.Pi)},
	)
}

func (e *PointEditor) Apply(cmd Command) error {
	if ok, err := e.applyCommon(cmd); ok {
		return err
	}
	p := e.point
	switch cmd.Kind {
	case CmdCommitLatitude, CmdCommitLongitude:
		if p.RenderType() == geom.RenderXY {
			return notApplicable(cmd, p)
		}
		if cmd.Kind == CmdCommitLatitude {
			lat, err := parseLat(cmd.Value)
			if err != nil {
				return err
			}
			p.SetLat(lat)
		} else {
			lon, err := parseLon(cmd.Value)
			if err != nil {
				return err
			}
			p.SetLon(lon)
		}
		e.regenerate()
		return nil
	case CmdCommitRadius:
		r, err := parseInt(cmd.Value, "radius")
		if err != nil || r < 1 {
			return invalid("radius", cmd.Value)
		}
		p.SetRadius(r)
		e.regenerate()
		return nil
	}
	return notApplicable(cmd, p)
}
