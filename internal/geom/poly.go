package geom

import (
	"fmt"

	"github.com/paulmach/orb"

	"mapedit/internal/proj"
)

// Poly is a polyline, or a polygon once enclosed.
//
// LATLON vertices are a flat lat,lon,lat,lon... array in radians. XY and OFFSET vertices
// are parallel xs/ys slices; for OFFSET they are pixel offsets from the anchor
// (CoordOrigin) or from the previous vertex (CoordPrevious).
type Poly struct {
	base
	ll      []float64
	xs, ys  []int
	lat     float64 // anchor, radians
	lon     float64
	mode    CoordMode
	lt      proj.LineType
	nsegs   int
	polygon bool
}

func newPoly(rt RenderType) *Poly {
	p := &Poly{lt: proj.LineStraight, nsegs: -1}
	p.init("poly", rt)
	return p
}

// NewLatLonPoly takes vertices as lat,lon pairs in radians.
func NewLatLonPoly(llRad []float64, lt proj.LineType) *Poly {
	if len(llRad)%2 != 0 {
		panic(fmt.Sprintf("geom: odd lat/lon array length %d", len(llRad)))
	}
	p := newPoly(RenderLatLon)
	p.ll = append([]float64(nil), llRad...)
	p.lt = lt
	return p
}

func NewXYPoly(xs, ys []int) *Poly {
	p := newPoly(RenderXY)
	p.setXYs(xs, ys)
	return p
}

// NewOffsetPoly anchors the vertices at latRad/lonRad.
func NewOffsetPoly(latRad, lonRad float64, xs, ys []int, mode CoordMode) *Poly {
	p := newPoly(RenderOffset)
	p.lat, p.lon = latRad, lonRad
	p.mode = mode
	p.setXYs(xs, ys)
	return p
}

func (p *Poly) setXYs(xs, ys []int) {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("geom: %d xs for %d ys", len(xs), len(ys)))
	}
	p.xs = append([]int(nil), xs...)
	p.ys = append([]int(nil), ys...)
}

func (p *Poly) Kind() Kind { return KindPoly }

func (p *Poly) Len() int {
	if p.rt == RenderLatLon {
		return len(p.ll) / 2
	}
	return len(p.xs)
}

// LatLon returns a copy of the vertex array, radians.
func (p *Poly) LatLon() []float64 { return append([]float64(nil), p.ll...) }

func (p *Poly) XY() (xs, ys []int) {
	return append([]int(nil), p.xs...), append([]int(nil), p.ys...)
}

func (p *Poly) Vertex(i int) (lat, lon float64) { return p.ll[2*i], p.ll[2*i+1] }

func (p *Poly) VertexXY(i int) (x, y int) { return p.xs[i], p.ys[i] }

func (p *Poly) SetVertex(i int, latRad, lonRad float64) {
	p.ll[2*i], p.ll[2*i+1] = latRad, lonRad
	p.stale = true
}

func (p *Poly) SetVertexXY(i, x, y int) {
	p.xs[i], p.ys[i] = x, y
	p.stale = true
}

func (p *Poly) SetLatLon(llRad []float64) {
	p.ll = append([]float64(nil), llRad...)
	p.stale = true
}

func (p *Poly) SetXY(xs, ys []int) {
	p.setXYs(xs, ys)
	p.stale = true
}

// Anchor is the OFFSET origin, radians.
func (p *Poly) Anchor() (latRad, lonRad float64) { return p.lat, p.lon }

func (p *Poly) SetAnchor(latRad, lonRad float64) {
	p.lat, p.lon = latRad, lonRad
	p.stale = true
}

func (p *Poly) CoordMode() CoordMode { return p.mode }

func (p *Poly) LineType() proj.LineType { return p.lt }

func (p *Poly) SetLineType(lt proj.LineType) {
	p.lt = lt
	p.stale = true
}

func (p *Poly) NumSegs() int { return p.nsegs }

func (p *Poly) SetNumSegs(n int) {
	p.nsegs = n
	p.stale = true
}

func (p *Poly) IsPolygon() bool { return p.polygon }

func (p *Poly) SetPolygon(on bool) {
	p.polygon = on
	p.stale = true
}

func splicePos(pos, n int) int {
	switch {
	case pos <= 0:
		return 0
	case pos >= n:
		return n
	}
	return pos
}

// InsertLatLon inserts a vertex before pos and returns where it went:
// pos <= 0 prepends, pos >= Len appends.
func (p *Poly) InsertLatLon(pos int, latRad, lonRad float64) int {
	pos = splicePos(pos, len(p.ll)/2)
	p.ll = append(p.ll, 0, 0)
	copy(p.ll[2*pos+2:], p.ll[2*pos:])
	p.ll[2*pos], p.ll[2*pos+1] = latRad, lonRad
	p.stale = true
	return pos
}

// InsertXY is InsertLatLon for XY/OFFSET vertices. In CoordPrevious mode the offset of
// the following vertex is rebased so it keeps its screen position.
func (p *Poly) InsertXY(pos, x, y int) int {
	pos = splicePos(pos, len(p.xs))
	p.xs = append(p.xs, 0)
	p.ys = append(p.ys, 0)
	copy(p.xs[pos+1:], p.xs[pos:])
	copy(p.ys[pos+1:], p.ys[pos:])
	p.xs[pos], p.ys[pos] = x, y
	if p.rt == RenderOffset && p.mode == CoordPrevious && pos+1 < len(p.xs) {
		p.xs[pos+1] -= x
		p.ys[pos+1] -= y
	}
	p.stale = true
	return pos
}

// DeleteVertex removes the vertex at pos, clamped to the ends, and returns the index
// removed or -1 when there is nothing to remove.
func (p *Poly) DeleteVertex(pos int) int {
	n := p.Len()
	if n == 0 {
		return -1
	}
	pos = max(0, min(pos, n-1))
	if p.rt == RenderLatLon {
		p.ll = append(p.ll[:2*pos], p.ll[2*pos+2:]...)
	} else {
		x, y := p.xs[pos], p.ys[pos]
		p.xs = append(p.xs[:pos], p.xs[pos+1:]...)
		p.ys = append(p.ys[:pos], p.ys[pos+1:]...)
		if p.rt == RenderOffset && p.mode == CoordPrevious && pos < len(p.xs) {
			p.xs[pos] += x
			p.ys[pos] += y
		}
	}
	p.stale = true
	return pos
}

// ScreenXY returns the absolute screen position of every XY/OFFSET vertex.
func (p *Poly) ScreenXY(pr proj.Projection) ([]orb.Point, bool) {
	var ox, oy float64
	switch p.rt {
	case RenderXY:
	case RenderOffset:
		if pr == nil {
			return nil, false
		}
		la, lo := deg(p.lat), deg(p.lon)
		if !pr.IsPlotable(la, lo) {
			return nil, false
		}
		o := pr.Forward(la, lo)
		ox, oy = o[0], o[1]
	default:
		return nil, false
	}
	pts := make([]orb.Point, len(p.xs))
	for i := range p.xs {
		x, y := float64(p.xs[i]), float64(p.ys[i])
		if p.mode == CoordPrevious && p.rt == RenderOffset {
			ox, oy = ox+x, oy+y
			pts[i] = orb.Point{ox, oy}
			continue
		}
		pts[i] = orb.Point{ox + x, oy + y}
	}
	return pts, true
}

func (p *Poly) Generate(pr proj.Projection) bool {
	if pr == nil {
		return false
	}
	switch p.rt {
	case RenderLatLon:
		if len(p.ll) == 0 {
			p.store(Shape{Closed: p.polygon})
			return true
		}
		parts := pr.ForwardPoly(p.ll, p.lt, p.nsegs, p.polygon)
		if len(parts) == 0 {
			return false
		}
		p.store(Shape{Parts: parts, Closed: p.polygon})
		return true
	case RenderXY, RenderOffset:
		pts, ok := p.ScreenXY(pr)
		if !ok {
			return false
		}
		ls := orb.LineString(pts)
		if p.polygon && len(ls) > 2 {
			ls = append(ls, ls[0])
		}
		s := Shape{Closed: p.polygon}
		if len(ls) > 0 {
			s.Parts = []orb.LineString{ls}
		}
		p.store(s)
		return true
	}
	return unknownRenderType(p)
}

func (p *Poly) Regenerate(pr proj.Projection) bool {
	if !p.stale {
		return true
	}
	return p.Generate(pr)
}

func (p *Poly) Clone() Graphic {
	c := &Poly{}
	c.Restore(p)
	return c
}

func (p *Poly) Restore(src Graphic) bool {
	o, ok := src.(*Poly)
	if !ok {
		return false
	}
	p.copyFrom(&o.base)
	p.ll = append([]float64(nil), o.ll...)
	p.xs = append([]int(nil), o.xs...)
	p.ys = append([]int(nil), o.ys...)
	p.lat, p.lon = o.lat, o.lon
	p.mode = o.mode
	p.lt = o.lt
	p.nsegs = o.nsegs
	p.polygon = o.polygon
	return true
}
