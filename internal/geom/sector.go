package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"mapedit/internal/proj"
)

const (
	// SectorSamples is the number of angular steps along a LATLON sector arc.
	SectorSamples = 18
	// SectorStart and SectorExtent describe the pie slice, degrees counterclockwise
	// from three o'clock.
	SectorStart  = -90.0
	SectorExtent = 90.0
)

// Sector is a quarter pie inscribed in the box between two corners.
type Sector struct {
	base
	lat1, lon1, lat2, lon2 float64
	x1, y1, x2, y2         int
	lt                     proj.LineType
}

func newSector(rt RenderType) *Sector {
	s := &Sector{lt: proj.LineStraight}
	s.init("sector", rt)
	return s
}

func NewLatLonSector(lat1, lon1, lat2, lon2 float64, lt proj.LineType) *Sector {
	s := newSector(RenderLatLon)
	s.lat1, s.lon1, s.lat2, s.lon2 = lat1, lon1, lat2, lon2
	s.lt = lt
	return s
}

func NewXYSector(x1, y1, x2, y2 int) *Sector {
	s := newSector(RenderXY)
	s.x1, s.y1, s.x2, s.y2 = x1, y1, x2, y2
	return s
}

// NewOffsetSector places the box corners at pixel offsets from lat/lon.
func NewOffsetSector(lat, lon float64, x1, y1, x2, y2 int) *Sector {
	s := newSector(RenderOffset)
	s.lat1, s.lon1 = lat, lon
	s.x1, s.y1, s.x2, s.y2 = x1, y1, x2, y2
	return s
}

func (s *Sector) Kind() Kind { return KindSector }

func (s *Sector) LatLon() (lat1, lon1, lat2, lon2 float64) { return s.lat1, s.lon1, s.lat2, s.lon2 }

func (s *Sector) XY() (x1, y1, x2, y2 int) { return s.x1, s.y1, s.x2, s.y2 }

func (s *Sector) SetLatLon(lat1, lon1, lat2, lon2 float64) {
	s.lat1, s.lon1, s.lat2, s.lon2 = lat1, lon1, lat2, lon2
	s.stale = true
}

func (s *Sector) SetXY(x1, y1, x2, y2 int) {
	s.x1, s.y1, s.x2, s.y2 = x1, y1, x2, y2
	s.stale = true
}

// Anchor is the OFFSET origin.
func (s *Sector) Anchor() (lat, lon float64) { return s.lat1, s.lon1 }

func (s *Sector) SetAnchor(lat, lon float64) {
	s.lat1, s.lon1 = lat, lon
	s.stale = true
}

func (s *Sector) LineType() proj.LineType { return s.lt }

func (s *Sector) SetLineType(lt proj.LineType) {
	s.lt = lt
	s.stale = true
}

// Normalize orders the LATLON corners as min-lat/min-lon, max-lat/max-lon.
func (s *Sector) Normalize() {
	if s.rt != RenderLatLon {
		return
	}
	s.lat1, s.lat2 = math.Min(s.lat1, s.lat2), math.Max(s.lat1, s.lat2)
	s.lon1, s.lon2 = math.Min(s.lon1, s.lon2), math.Max(s.lon1, s.lon2)
}

// BoundaryLatLon samples the LATLON arc. The ring starts due north of the minimum
// corner, sweeps clockwise to due east, runs back to the corner and closes on the
// first sample. The samples lie on the ellipse with semi-axes |lon2-lon1| east and
// |lat2-lat1| north, so they are an approximation of the box-inscribed arc.
func (s *Sector) BoundaryLatLon() orb.Ring {
	lat0, lat1 := math.Min(s.lat1, s.lat2), math.Max(s.lat1, s.lat2)
	lon0, lon1 := math.Min(s.lon1, s.lon2), math.Max(s.lon1, s.lon2)
	corner := orb.Point{lon0, lat0}
	a := rad(lon1 - lon0) // east
	b := rad(lat1 - lat0) // north

	ring := make(orb.Ring, 0, SectorSamples+3)
	for i := 0; i <= SectorSamples; i++ {
		az := SectorExtent * float64(i) / SectorSamples
		phi := rad(90 - az) // from east, counterclockwise
		var r float64
		switch {
		case a == 0 && b == 0:
			r = 0
		case a == 0:
			if i == 0 {
				r = b
			}
		case b == 0:
			if i == SectorSamples {
				r = a
			}
		default:
			r = a * b / math.Hypot(b*math.Cos(phi), a*math.Sin(phi))
		}
		ring = append(ring, geo.PointAtBearingAndDistance(corner, az, r*orb.EarthRadius))
	}
	ring = append(ring, corner, ring[0])
	return ring
}

func (s *Sector) screenBox(pr proj.Projection) (orb.Bound, bool) {
	var ox, oy float64
	switch s.rt {
	case RenderXY:
	case RenderOffset:
		if !pr.IsPlotable(s.lat1, s.lon1) {
			return orb.Bound{}, false
		}
		o := pr.Forward(s.lat1, s.lon1)
		ox, oy = o[0], o[1]
	default:
		return orb.Bound{}, false
	}
	p1 := orb.Point{ox + float64(s.x1), oy + float64(s.y1)}
	p2 := orb.Point{ox + float64(s.x2), oy + float64(s.y2)}
	return orb.Bound{Min: p1, Max: p1}.Extend(p2), true
}

// pie returns the slice inscribed in box: center, arc from SectorStart through
// SectorExtent, back to center.
func pie(box orb.Bound) orb.LineString {
	c := box.Center()
	rx, ry := (box.Max[0]-box.Min[0])/2, (box.Max[1]-box.Min[1])/2
	ls := make(orb.LineString, 0, SectorSamples+3)
	ls = append(ls, c)
	for i := 0; i <= SectorSamples; i++ {
		t := rad(SectorStart + SectorExtent*float64(i)/SectorSamples)
		// screen y grows downward
		ls = append(ls, orb.Point{c[0] + rx*math.Cos(t), c[1] - ry*math.Sin(t)})
	}
	return append(ls, c)
}

func (s *Sector) Generate(pr proj.Projection) bool {
	if pr == nil {
		return false
	}
	switch s.rt {
	case RenderLatLon:
		lat0, lon0 := math.Min(s.lat1, s.lat2), math.Min(s.lon1, s.lon2)
		if !pr.IsPlotable(lat0, lon0) {
			return false
		}
		ring := s.BoundaryLatLon()
		ll := make([]float64, 0, 2*len(ring))
		for _, pt := range ring {
			ll = append(ll, rad(pt.Lat()), rad(pt.Lon()))
		}
		parts := pr.ForwardPoly(ll, s.lt, -1, true)
		if len(parts) == 0 {
			return false
		}
		s.store(Shape{Parts: parts, Closed: true})
		return true
	case RenderXY, RenderOffset:
		box, ok := s.screenBox(pr)
		if !ok {
			return false
		}
		s.store(Shape{Parts: []orb.LineString{pie(box)}, Closed: true})
		return true
	}
	return unknownRenderType(s)
}

func (s *Sector) Regenerate(pr proj.Projection) bool {
	if !s.stale {
		return true
	}
	return s.Generate(pr)
}

func (s *Sector) Clone() Graphic {
	c := &Sector{}
	c.Restore(s)
	return c
}

func (s *Sector) Restore(src Graphic) bool {
	o, ok := src.(*Sector)
	if !ok {
		return false
	}
	s.copyFrom(&o.base)
	s.lat1, s.lon1, s.lat2, s.lon2 = o.lat1, o.lon1, o.lat2, o.lon2
	s.x1, s.y1, s.x2, s.y2 = o.x1, o.y1, o.x2, o.y2
	s.lt = o.lt
	return true
}
