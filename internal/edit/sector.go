package edit

import (
	"fmt"
	"math"
	"strconv"

	"mapedit/internal/geom"
)

// SectorEditor edits a geom.Sector through its four corners and center.
// A corner drag keeps the opposite corner fixed; a center drag keeps the box size.
type SectorEditor struct {
	editor
	sector                 *geom.Sector
	nw, ne, sw, se, center GrabPoint
	anch                   *OffsetGrabPoint

	fixedLat, fixedLon float64
	fixedX, fixedY     int
}

func newSectorEditor(s *geom.Sector, state State, o options) *SectorEditor {
	e := &SectorEditor{
		sector: s,
		nw:     GrabPoint{X: -1, Y: -1, Role: RoleNW},
		ne:     GrabPoint{X: -1, Y: -1, Role: RoleNE},
		sw:     GrabPoint{X: -1, Y: -1, Role: RoleSW},
		se:     GrabPoint{X: -1, Y: -1, Role: RoleSE},
		center: GrabPoint{X: -1, Y: -1, Role: RoleCenter},
	}
	e.editor = editor{impl: e, state: state, log: o.log, proj: o.proj}
	s.Normalize()
	if s.RenderType() == geom.RenderOffset {
		e.anch = NewOffsetGrabPoint(-1, -1)
		for _, gp := range e.corners() {
			e.anch.Add(gp)
		}
		e.anch.Add(&e.center)
	}
	if e.proj != nil {
		e.regenerate()
	}
	return e
}

func (e *SectorEditor) Sector() *geom.Sector { return e.sector }

func (e *SectorEditor) graphic() geom.Graphic     { return e.sector }
func (e *SectorEditor) anchor() *OffsetGrabPoint { return e.anch }

func (e *SectorEditor) corners() []*GrabPoint {
	return []*GrabPoint{&e.nw, &e.ne, &e.sw, &e.se}
}

func (e *SectorEditor) handles() []*GrabPoint {
	if e.state == StateUndefined {
		return nil
	}
	out := append(e.corners(), &e.center)
	if e.anch != nil {
		out = append(out, &e.anch.GrabPoint)
	}
	return out
}

func (e *SectorEditor) opposite(r Role) *GrabPoint {
	switch r {
	case RoleNW:
		return &e.se
	case RoleNE:
		return &e.sw
	case RoleSW:
		return &e.ne
	case RoleSE:
		return &e.nw
	}
	return nil
}

func isCorner(r Role) bool {
	return r == RoleNW || r == RoleNE || r == RoleSW || r == RoleSE
}

// origin is the screen position offsets are measured from.
func (e *SectorEditor) origin() (float64, float64, bool) {
	switch e.sector.RenderType() {
	case geom.RenderXY:
		return 0, 0, true
	case geom.RenderOffset:
		lat, lon := e.sector.Anchor()
		if !e.proj.IsPlotable(lat, lon) {
			return 0, 0, false
		}
		o := e.proj.Forward(lat, lon)
		return o[0], o[1], true
	}
	return 0, 0, false
}

func (e *SectorEditor) setGrabPoints() {
	if e.proj == nil || e.sector.NeedToRegenerate() {
		return
	}
	s := e.sector
	if s.RenderType() == geom.RenderLatLon {
		s.Normalize()
		lat1, lon1, lat2, lon2 := s.LatLon()
		place := func(gp *GrabPoint, lat, lon float64) {
			if e.proj.IsPlotable(lat, lon) {
				gp.Set(pixel(e.proj.Forward(lat, lon)))
			}
		}
		place(&e.nw, lat2, lon1)
		place(&e.ne, lat2, lon2)
		place(&e.sw, lat1, lon1)
		place(&e.se, lat1, lon2)
		place(&e.center, (lat1+lat2)/2, (lon1+lon2)/2)
		return
	}
	ox, oy, ok := e.origin()
	if !ok {
		return
	}
	x1, y1, x2, y2 := s.XY()
	minX, maxX := ox+float64(min(x1, x2)), ox+float64(max(x1, x2))
	minY, maxY := oy+float64(min(y1, y2)), oy+float64(max(y1, y2))
	e.nw.Set(round(minX), round(minY))
	e.ne.Set(round(maxX), round(minY))
	e.sw.Set(round(minX), round(maxY))
	e.se.Set(round(maxX), round(maxY))
	e.center.Set(round((minX+maxX)/2), round((minY+maxY)/2))
	if e.anch != nil {
		e.anch.GrabPoint.Set(round(ox), round(oy))
		e.anch.UpdateOffsets()
	}
}

func (e *SectorEditor) grabbed(gp *GrabPoint) {
	if gp.Role == RoleCenter {
		// last seen center position
		e.fixedX, e.fixedY = gp.X, gp.Y
		return
	}
	if !isCorner(gp.Role) {
		return
	}
	opp := e.opposite(gp.Role)
	e.fixedX, e.fixedY = opp.X, opp.Y
	if e.sector.RenderType() == geom.RenderLatLon {
		lat1, lon1, lat2, lon2 := e.sector.LatLon()
		switch gp.Role {
		case RoleNW:
			e.fixedLat, e.fixedLon = lat1, lon2
		case RoleNE:
			e.fixedLat, e.fixedLon = lat1, lon1
		case RoleSW:
			e.fixedLat, e.fixedLon = lat2, lon2
		case RoleSE:
			e.fixedLat, e.fixedLon = lat2, lon1
		}
	}
}

func (e *SectorEditor) readGrabPoints(moved *GrabPoint) {
	if e.proj == nil {
		return
	}
	s := e.sector
	if s.RenderType() == geom.RenderLatLon {
		lat1, lon1, lat2, lon2 := s.LatLon()
		if moved != nil && isCorner(moved.Role) {
			lat, lon, ok := e.inverse(moved.X, moved.Y)
			if !ok {
				return
			}
			s.SetLatLon(math.Min(e.fixedLat, lat), math.Min(e.fixedLon, lon),
				math.Max(e.fixedLat, lat), math.Max(e.fixedLon, lon))
			return
		}
		// center drag or whole-sector move: shift the box by the center's motion
		cLat, cLon := (lat1+lat2)/2, (lon1+lon2)/2
		if e.samePixel(&e.center, cLat, cLon) {
			return
		}
		lat, lon, ok := e.inverse(e.center.X, e.center.Y)
		if !ok {
			return
		}
		dLat, dLon := lat-cLat, lon-cLon
		if lat1+dLat < -90 || lat2+dLat > 90 || lon1+dLon < -180 || lon2+dLon > 180 {
			return
		}
		s.SetLatLon(lat1+dLat, lon1+dLon, lat2+dLat, lon2+dLon)
		return
	}

	if e.anch != nil && moved == &e.anch.GrabPoint {
		lat, lon := s.Anchor()
		if !e.samePixel(moved, lat, lon) {
			if la, lo, ok := e.inverse(moved.X, moved.Y); ok {
				s.SetAnchor(la, lo)
			}
		}
	}
	var ox, oy int
	if e.anch != nil {
		ox, oy = e.anch.X, e.anch.Y
	}
	switch {
	case moved != nil && isCorner(moved.Role):
		s.SetXY(min(e.fixedX, moved.X)-ox, min(e.fixedY, moved.Y)-oy,
			max(e.fixedX, moved.X)-ox, max(e.fixedY, moved.Y)-oy)
	case moved != nil && moved.Role == RoleCenter:
		x1, y1, x2, y2 := s.XY()
		dx, dy := moved.X-e.fixedX, moved.Y-e.fixedY
		e.fixedX, e.fixedY = moved.X, moved.Y
		s.SetXY(x1+dx, y1+dy, x2+dx, y2+dy)
	default:
		s.SetXY(e.nw.X-ox, e.nw.Y-oy, e.se.X-ox, e.se.Y-oy)
	}
}

func (e *SectorEditor) place(x, y int) (*GrabPoint, bool) {
	s := e.sector
	switch s.RenderType() {
	case geom.RenderLatLon:
		lat, lon, ok := e.inverse(x, y)
		if !ok {
			return nil, false
		}
		s.SetLatLon(lat, lon, lat, lon)
	case geom.RenderOffset:
		lat, lon, ok := e.inverse(x, y)
		if !ok {
			return nil, false
		}
		s.SetAnchor(lat, lon)
		s.SetXY(0, 0, 0, 0)
		e.anch.GrabPoint.Set(x, y)
	default:
		s.SetXY(x, y, x, y)
	}
	for _, gp := range e.corners() {
		gp.Set(x, y)
	}
	e.center.Set(x, y)
	e.regenerate()
	return &e.se, true
}

func (e *SectorEditor) Fields() []Field {
	s := e.sector
	fs := []Field{{Label: "Name", Kind: CmdCommitName, Value: s.Name()}}
	switch s.RenderType() {
	case geom.RenderLatLon:
		lat1, lon1, lat2, lon2 := s.LatLon()
		return append(fs,
			Field{Label: "Min latitude", Kind: CmdCommitLatitude, Value: formatFloat(lat1)},
			Field{Label: "Min longitude", Kind: CmdCommitLongitude, Value: formatFloat(lon1)},
			Field{Label: "Lat radius", Kind: CmdCommitLatRadius, Value: formatFloat(math.Abs(lat2 - lat1))},
			Field{Label: "Lon radius", Kind: CmdCommitLonRadius, Value: formatFloat(math.Abs(lon2 - lon1))},
		)
	case geom.RenderOffset:
		lat, lon := s.Anchor()
		fs = append(fs,
			Field{Label: "Anchor latitude", Kind: CmdCommitLatitude, Value: formatFloat(lat)},
			Field{Label: "Anchor longitude", Kind: CmdCommitLongitude, Value: formatFloat(lon)},
		)
	}
	x1, y1, x2, y2 := s.XY()
	return append(fs,
		Field{Label: "Corner 1", Kind: CmdNone, Value: strconv.Itoa(x1) + "," + strconv.Itoa(y1), ReadOnly: true},
		Field{Label: "Corner 2", Kind: CmdNone, Value: strconv.Itoa(x2) + "," + strconv.Itoa(y2), ReadOnly: true},
	)
}

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func (e *SectorEditor) Apply(cmd Command) error {
	if ok, err := e.applyCommon(cmd); ok {
		return err
	}
	s := e.sector
	rt := s.RenderType()
	switch cmd.Kind {
	case CmdCommitLatitude, CmdCommitLongitude:
		if rt == geom.RenderXY {
			return notApplicable(cmd, s)
		}
		lat1, lon1, lat2, lon2 := s.LatLon()
		if cmd.Kind == CmdCommitLatitude {
			v, err := parseLat(cmd.Value)
			if err != nil {
				return err
			}
			if rt == geom.RenderOffset {
				s.SetAnchor(v, lon1)
			} else {
				s.SetLatLon(v, lon1, clamp(v+lat2-lat1, -90, 90), lon2)
			}
		} else {
			v, err := parseLon(cmd.Value)
			if err != nil {
				return err
			}
			if rt == geom.RenderOffset {
				s.SetAnchor(lat1, v)
			} else {
				s.SetLatLon(lat1, v, lat2, clamp(v+lon2-lon1, -180, 180))
			}
		}
	case CmdCommitLatRadius, CmdCommitLonRadius:
		if rt != geom.RenderLatLon {
			return notApplicable(cmd, s)
		}
		r, err := parseFloat(cmd.Value, cmd.Kind.String())
		if err != nil {
			return err
		}
		if r < 0 {
			return fmt.Errorf("%w: negative %s %v", ErrInvalidInput, cmd.Kind, r)
		}
		lat1, lon1, lat2, lon2 := s.LatLon()
		if cmd.Kind == CmdCommitLatRadius {
			lat2 = clamp(lat1+r, -90, 90)
		} else {
			lon2 = clamp(lon1+r, -180, 180)
		}
		s.SetLatLon(lat1, lon1, lat2, lon2)
	default:
		return notApplicable(cmd, s)
	}
	e.regenerate()
	return nil
}
