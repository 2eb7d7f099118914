package proj

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxMercatorLat is the latitude where Web Mercator is cut off.
const MaxMercatorLat = 85.05112878

// Mercator is a Web Mercator view centered on Center, Scale meters per pixel.
type Mercator struct {
	Center orb.Point // lon, lat
	Scale  float64
	W, H   int
	Rot    float64
}

// NewMercator fits the whole Mercator square into w x h pixels.
func NewMercator(w, h int) *Mercator {
	side := math.Min(float64(w), float64(h))
	if side < 1 {
		side = 1
	}
	// the mercator world is 2*pi*R meters wide
	return &Mercator{Scale: 2 * math.Pi * orb.EarthRadius / side, W: w, H: h}
}

func (p *Mercator) origin() orb.Point {
	return project.WGS84.ToMercator(p.Center)
}

func (p *Mercator) Forward(lat, lon float64) orb.Point {
	if p.Scale <= 0 {
		return orb.Point{}
	}
	lat = math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, lat))
	m := project.WGS84.ToMercator(orb.Point{lon, lat})
	o := p.origin()
	cx, cy := float64(p.W)/2, float64(p.H)/2
	x := cx + (m[0]-o[0])/p.Scale
	y := cy - (m[1]-o[1])/p.Scale
	x, y = rotate(x, y, cx, cy, p.Rot)
	return orb.Point{x, y}
}

func (p *Mercator) Inverse(x, y float64) (lat, lon float64) {
	if p.Scale <= 0 {
		return 0, 0
	}
	cx, cy := float64(p.W)/2, float64(p.H)/2
	x, y = rotate(x, y, cx, cy, -p.Rot)
	o := p.origin()
	m := orb.Point{o[0] + (x-cx)*p.Scale, o[1] - (y-cy)*p.Scale}
	ll := project.Mercator.ToWGS84(m)
	return ll[1], NormalizeLon(ll[0])
}

func (p *Mercator) IsPlotable(lat, lon float64) bool {
	return p.Scale > 0 && validLatLon(lat, lon) && math.Abs(lat) <= MaxMercatorLat
}

func (p *Mercator) Rotation() float64 { return p.Rot }

func (p *Mercator) ForwardPoly(llRad []float64, lt LineType, nsegs int, closed bool) []orb.LineString {
	return forwardPoly(p, llRad, lt, nsegs, closed)
}

func (p *Mercator) Width() int  { return p.W }
func (p *Mercator) Height() int { return p.H }
