package geom

import (
	"math"

	"github.com/paulmach/orb"

	"mapedit/internal/proj"
)

const (
	DefaultRadius = 2
	// DefaultRotation means the point has no explicit rotation.
	DefaultRotation = 0.0

	ovalSamples = 24
)

// Point is a box or oval marker.
type Point struct {
	base
	lat, lon float64
	x, y     int
	radius   int
	rotation float64
	oval     bool
	rotComp  bool
}

func newPoint(rt RenderType) *Point {
	p := &Point{radius: DefaultRadius, rotation: DefaultRotation}
	p.init("point", rt)
	return p
}

func NewLatLonPoint(lat, lon float64) *Point {
	p := newPoint(RenderLatLon)
	p.lat, p.lon = lat, lon
	return p
}

func NewXYPoint(x, y int) *Point {
	p := newPoint(RenderXY)
	p.x, p.y = x, y
	return p
}

// NewOffsetPoint places the point (x, y) pixels away from lat/lon.
func NewOffsetPoint(lat, lon float64, x, y int) *Point {
	p := newPoint(RenderOffset)
	p.lat, p.lon = lat, lon
	p.x, p.y = x, y
	return p
}

func (p *Point) Kind() Kind { return KindPoint }

func (p *Point) Lat() float64               { return p.lat }
func (p *Point) Lon() float64               { return p.lon }
func (p *Point) X() int                     { return p.x }
func (p *Point) Y() int                     { return p.y }
func (p *Point) Radius() int                { return p.radius }
func (p *Point) Rotation() float64          { return p.rotation }
func (p *Point) Oval() bool                 { return p.oval }
func (p *Point) RotationCompensation() bool { return p.rotComp }

func (p *Point) SetLatLon(lat, lon float64) {
	p.lat, p.lon = lat, lon
	p.stale = true
}

func (p *Point) SetLat(lat float64) { p.SetLatLon(lat, p.lon) }
func (p *Point) SetLon(lon float64) { p.SetLatLon(p.lat, lon) }

func (p *Point) SetXY(x, y int) {
	p.x, p.y = x, y
	p.stale = true
}

func (p *Point) SetRadius(r int) {
	p.radius = r
	p.stale = true
}

func (p *Point) SetRotation(r float64) {
	p.rotation = r
	p.stale = true
}

func (p *Point) SetOval(oval bool) {
	p.oval = oval
	p.stale = true
}

// SetRotationCompensation makes the rotation relative to the map view.
func (p *Point) SetRotationCompensation(on bool) {
	p.rotComp = on
	p.stale = true
}

// EffectiveRotation is the angle the marker is drawn at under a view rotated by view radians.
func (p *Point) EffectiveRotation(view float64) float64 {
	if p.rotation == DefaultRotation {
		return 0
	}
	if p.rotComp {
		return p.rotation - view
	}
	return p.rotation
}

// Center returns the screen center of the marker.
func (p *Point) Center(pr proj.Projection) (orb.Point, bool) {
	if pr == nil {
		return orb.Point{}, false
	}
	switch p.rt {
	case RenderXY:
		return orb.Point{float64(p.x), float64(p.y)}, true
	case RenderLatLon, RenderOffset:
		if !pr.IsPlotable(p.lat, p.lon) {
			return orb.Point{}, false
		}
		c := pr.Forward(p.lat, p.lon)
		if p.rt == RenderOffset {
			c[0] += float64(p.x)
			c[1] += float64(p.y)
		}
		return c, true
	}
	return orb.Point{}, false
}

func (p *Point) Generate(pr proj.Projection) bool {
	if pr == nil {
		return false
	}
	if p.rt != RenderXY && p.rt != RenderLatLon && p.rt != RenderOffset {
		return unknownRenderType(p)
	}
	c, ok := p.Center(pr)
	if !ok {
		return false
	}
	r := float64(p.radius)
	minX, minY := c[0]-r, c[1]-r
	w, h := 2*r, 2*r

	var ring []orb.Point
	if p.oval {
		ring = make([]orb.Point, 0, ovalSamples+1)
		for i := 0; i <= ovalSamples; i++ {
			a := 2 * math.Pi * float64(i%ovalSamples) / ovalSamples
			ring = append(ring, orb.Point{minX + w/2 + w/2*math.Cos(a), minY + h/2 + h/2*math.Sin(a)})
		}
	} else {
		ring = []orb.Point{
			{minX, minY}, {minX + w, minY}, {minX + w, minY + h}, {minX, minY + h}, {minX, minY},
		}
	}
	rotateAbout(ring, minX, minY, p.EffectiveRotation(pr.Rotation()))
	p.store(Shape{Parts: []orb.LineString{ring}, Closed: true})
	return true
}

func (p *Point) Regenerate(pr proj.Projection) bool {
	if !p.stale {
		return true
	}
	return p.Generate(pr)
}

func (p *Point) Clone() Graphic {
	c := &Point{}
	c.Restore(p)
	return c
}

func (p *Point) Restore(src Graphic) bool {
	o, ok := src.(*Point)
	if !ok {
		return false
	}
	p.copyFrom(&o.base)
	p.lat, p.lon = o.lat, o.lon
	p.x, p.y = o.x, o.y
	p.radius = o.radius
	p.rotation = o.rotation
	p.oval = o.oval
	p.rotComp = o.rotComp
	return true
}
