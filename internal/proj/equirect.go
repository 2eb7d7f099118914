package proj

import (
	"github.com/paulmach/orb"
)

// World is the full lon/lat extent.
var World = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Equirect maps lon/lat linearly onto the screen: Bound fills the screen at zoom 1,
// zoom scales about the screen center, and the pan offsets shift the result.
type Equirect struct {
	Bound   orb.Bound
	Zoom    float64
	OffsetX int
	OffsetY int
	W, H    int
	Rot     float64
}

// NewEquirect returns a view of the whole world at zoom 1.
func NewEquirect(w, h int) *Equirect {
	return &Equirect{Bound: World, Zoom: 1, W: w, H: h}
}

func (p *Equirect) valid() bool {
	return p.Bound.Max[0] > p.Bound.Min[0] && p.Bound.Max[1] > p.Bound.Min[1] && p.W > 1 && p.H > 1 && p.Zoom > 0
}

func (p *Equirect) center() (float64, float64) {
	return float64(p.W-1) / 2, float64(p.H-1) / 2
}

func (p *Equirect) Forward(lat, lon float64) orb.Point {
	if !p.valid() {
		return orb.Point{}
	}
	nx := (lon - p.Bound.Min[0]) / (p.Bound.Max[0] - p.Bound.Min[0])
	ny := (lat - p.Bound.Min[1]) / (p.Bound.Max[1] - p.Bound.Min[1])
	// zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*p.Zoom
	zy := 0.5 + (ny-0.5)*p.Zoom
	sx := zx*float64(p.W-1) + float64(p.OffsetX)
	sy := (1.0-zy)*float64(p.H-1) + float64(p.OffsetY)
	cx, cy := p.center()
	x, y := rotate(sx, sy, cx, cy, p.Rot)
	return orb.Point{x, y}
}

func (p *Equirect) Inverse(x, y float64) (lat, lon float64) {
	if !p.valid() {
		return 0, 0
	}
	cx, cy := p.center()
	x, y = rotate(x, y, cx, cy, -p.Rot)
	zx := (x - float64(p.OffsetX)) / float64(p.W-1)
	zy := 1.0 - (y-float64(p.OffsetY))/float64(p.H-1)
	nx := 0.5 + (zx-0.5)/p.Zoom
	ny := 0.5 + (zy-0.5)/p.Zoom
	lon = p.Bound.Min[0] + nx*(p.Bound.Max[0]-p.Bound.Min[0])
	lat = p.Bound.Min[1] + ny*(p.Bound.Max[1]-p.Bound.Min[1])
	return lat, lon
}

func (p *Equirect) IsPlotable(lat, lon float64) bool {
	return p.valid() && validLatLon(lat, lon)
}

func (p *Equirect) Rotation() float64 { return p.Rot }

func (p *Equirect) ForwardPoly(llRad []float64, lt LineType, nsegs int, closed bool) []orb.LineString {
	return forwardPoly(p, llRad, lt, nsegs, closed)
}

func (p *Equirect) Width() int  { return p.W }
func (p *Equirect) Height() int { return p.H }
