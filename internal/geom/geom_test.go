package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapedit/internal/proj"
)

func world() *proj.Equirect { return proj.NewEquirect(361, 181) }

type recorder struct {
	strokes []orb.LineString
	handles [][2]int
}

func (r *recorder) Stroke(ls orb.LineString) { r.strokes = append(r.strokes, ls) }
func (r *recorder) Handle(x, y int)          { r.handles = append(r.handles, [2]int{x, y}) }

func TestXYPointBox(t *testing.T) {
	p := NewXYPoint(100, 100)
	p.SetRadius(5)
	require.True(t, p.Generate(world()))

	s, ok := p.Shape()
	require.True(t, ok)
	b := s.Bound()
	assert.Equal(t, orb.Point{95, 95}, b.Min)
	assert.Equal(t, orb.Point{105, 105}, b.Max)
	assert.True(t, s.Closed)
}

func TestPointRotation(t *testing.T) {
	view := world()
	view.Rot = 0.25

	p := NewXYPoint(100, 100)
	assert.Zero(t, p.EffectiveRotation(view.Rotation()))

	p.SetRotation(1)
	assert.Equal(t, 1.0, p.EffectiveRotation(view.Rotation()))
	p.SetRotationCompensation(true)
	assert.Equal(t, 0.75, p.EffectiveRotation(view.Rotation()))

	// rotated about the min corner, which stays put
	p.SetRotation(math.Pi / 2)
	p.SetRotationCompensation(false)
	require.True(t, p.Generate(view))
	s, _ := p.Shape()
	ring := s.Parts[0]
	assert.InDelta(t, 98, ring[0][0], 1e-9)
	assert.InDelta(t, 98, ring[0][1], 1e-9)
	assert.InDelta(t, 98, ring[1][0], 1e-9)
	assert.InDelta(t, 102, ring[1][1], 1e-9)
}

func TestPointOval(t *testing.T) {
	p := NewXYPoint(50, 50)
	p.SetRadius(4)
	p.SetOval(true)
	require.True(t, p.Generate(world()))
	s, _ := p.Shape()
	require.Len(t, s.Parts, 1)
	ring := s.Parts[0]
	assert.Len(t, ring, ovalSamples+1)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	for _, pt := range ring {
		assert.InDelta(t, 4, planarDist(pt, orb.Point{50, 50}), 1e-9)
	}
}

func planarDist(a, b orb.Point) float64 { return math.Hypot(a[0]-b[0], a[1]-b[1]) }

func TestLatLonAndOffsetPointCenter(t *testing.T) {
	v := world()
	p := NewLatLonPoint(0, 0)
	c, ok := p.Center(v)
	require.True(t, ok)
	assert.Equal(t, orb.Point{180, 90}, c)

	o := NewOffsetPoint(0, 0, 10, -5)
	c, ok = o.Center(v)
	require.True(t, ok)
	assert.Equal(t, orb.Point{190, 85}, c)

	bad := NewLatLonPoint(95, 0)
	assert.False(t, bad.Generate(v))
	assert.True(t, bad.NeedToRegenerate())
}

func TestGenerateIdempotent(t *testing.T) {
	v := world()
	graphics := []Graphic{
		NewXYPoint(10, 10),
		NewLatLonPoint(20, 30),
		NewLatLonPoly([]float64{0, 0, rad(10), rad(10), rad(0), rad(20)}, proj.LineGreatCircle),
		NewXYSector(10, 10, 50, 40),
		NewLatLonSector(10, 10, 20, 20, proj.LineStraight),
	}
	for _, g := range graphics {
		require.True(t, g.Generate(v), g.Kind().String())
		assert.False(t, g.NeedToRegenerate())
		s1, ok := g.Shape()
		require.True(t, ok)
		require.True(t, g.Generate(v))
		s2, _ := g.Shape()
		assert.Equal(t, s1, s2, g.Kind().String())
	}
}

func TestFailureKeepsShape(t *testing.T) {
	p := NewLatLonPoint(10, 10)
	require.True(t, p.Generate(world()))
	before := p.Distance(0, 0)

	p.SetLat(10)
	assert.True(t, p.NeedToRegenerate())
	assert.False(t, p.Generate(nil))
	assert.True(t, p.NeedToRegenerate())
	_, ok := p.Shape()
	assert.False(t, ok)
	assert.Equal(t, before, p.Distance(0, 0))

	assert.True(t, p.Regenerate(world()))
	assert.False(t, p.NeedToRegenerate())
}

func TestUnknownRenderType(t *testing.T) {
	p := NewXYPoint(1, 1)
	p.rt = RenderUnknown
	assert.False(t, p.Generate(world()))
	s := NewXYSector(0, 0, 1, 1)
	s.rt = RenderUnknown
	assert.False(t, s.Generate(world()))
	y := NewXYPoly(nil, nil)
	y.rt = RenderUnknown
	assert.False(t, y.Generate(world()))
}

func TestRenderSkipsStale(t *testing.T) {
	p := NewXYPoint(10, 10)
	var r recorder
	p.Render(&r)
	assert.Empty(t, r.strokes)

	require.True(t, p.Generate(world()))
	p.Render(&r)
	assert.Len(t, r.strokes, 1)

	p.SetRadius(3)
	r = recorder{}
	p.Render(&r)
	assert.Empty(t, r.strokes)
}

func TestRestoreDoesNotAlias(t *testing.T) {
	src := NewXYPoly([]int{1, 2, 3}, []int{4, 5, 6})
	src.SetName("route")
	dst := &Poly{}
	require.True(t, dst.Restore(src))
	assert.Equal(t, "route", dst.Name())

	src.SetVertexXY(0, 99, 99)
	x, y := dst.VertexXY(0)
	assert.Equal(t, 1, x)
	assert.Equal(t, 4, y)

	assert.False(t, dst.Restore(NewXYPoint(0, 0)))

	c := src.Clone().(*Poly)
	src.SetVertexXY(1, -1, -1)
	x, _ = c.VertexXY(1)
	assert.Equal(t, 2, x)
}

func TestPolySplice(t *testing.T) {
	p := NewXYPoly([]int{10, 20, 30}, []int{0, 0, 0})
	assert.Equal(t, 0, p.InsertXY(-4, 1, 1))
	assert.Equal(t, 4, p.InsertXY(99, 2, 2))
	assert.Equal(t, 2, p.InsertXY(2, 3, 3))
	xs, _ := p.XY()
	assert.Equal(t, []int{1, 10, 3, 20, 30, 2}, xs)

	assert.Equal(t, 5, p.DeleteVertex(100))
	assert.Equal(t, 0, p.DeleteVertex(-1))
	assert.Equal(t, 1, p.DeleteVertex(1))
	xs, _ = p.XY()
	assert.Equal(t, []int{10, 20, 30}, xs)

	empty := NewXYPoly(nil, nil)
	assert.Equal(t, -1, empty.DeleteVertex(0))
}

func TestPolySpliceLatLon(t *testing.T) {
	p := NewLatLonPoly([]float64{0.1, 0.2, 0.3, 0.4}, proj.LineStraight)
	p.InsertLatLon(1, 0.5, 0.6)
	assert.Equal(t, []float64{0.1, 0.2, 0.5, 0.6, 0.3, 0.4}, p.LatLon())
	p.DeleteVertex(1)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, p.LatLon())
}

func TestPolyPreviousModeRebase(t *testing.T) {
	v := world()
	p := NewOffsetPoly(0, 0, []int{10, 10, 10}, []int{0, 5, 5}, CoordPrevious)
	before, ok := p.ScreenXY(v)
	require.True(t, ok)

	p.InsertXY(1, 4, 1)
	after, _ := p.ScreenXY(v)
	require.Len(t, after, 4)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[1], after[2])
	assert.Equal(t, before[2], after[3])

	p.DeleteVertex(1)
	again, _ := p.ScreenXY(v)
	assert.Equal(t, before, again)
}

func TestPolyGenerate(t *testing.T) {
	v := world()
	xy := NewXYPoly([]int{0, 10, 10}, []int{0, 0, 10})
	xy.SetPolygon(true)
	require.True(t, xy.Generate(v))
	s, _ := xy.Shape()
	require.Len(t, s.Parts, 1)
	assert.Len(t, s.Parts[0], 4)
	assert.Zero(t, s.Distance(7, 3))
	assert.InDelta(t, 5, s.Distance(15, 5), 1e-9)

	empty := NewLatLonPoly(nil, proj.LineStraight)
	require.True(t, empty.Generate(v))
	s, ok := empty.Shape()
	require.True(t, ok)
	assert.True(t, s.Empty())

	off := NewOffsetPoly(rad(95), 0, []int{1}, []int{1}, CoordOrigin)
	assert.False(t, off.Generate(v))
}

func TestSectorLatLonBoundary(t *testing.T) {
	s := NewLatLonSector(20, 20, 10, 10, proj.LineStraight)
	ring := s.BoundaryLatLon()
	require.Len(t, ring, SectorSamples+3)
	assert.Equal(t, ring[0], ring[len(ring)-1], "closed ring")
	assert.Equal(t, orb.Point{10, 10}, ring[len(ring)-2])

	// the arc approximates the box-inscribed ellipse; stepping along a geodesic
	// bearing from the corner overshoots the east edge by about 0.15 degree
	const tol = 0.2
	for _, pt := range ring {
		assert.GreaterOrEqual(t, pt.Lat(), 10-tol)
		assert.LessOrEqual(t, pt.Lat(), 20+tol)
		assert.GreaterOrEqual(t, pt.Lon(), 10-tol)
		assert.LessOrEqual(t, pt.Lon(), 20+tol)
	}

	corner := orb.Point{10, 10}
	first := geo.Bearing(corner, ring[0])
	last := geo.Bearing(corner, ring[SectorSamples])
	assert.InDelta(t, 90, last-first, 1e-6)

	require.True(t, s.Generate(world()))
	shape, _ := s.Shape()
	require.NotEmpty(t, shape.Parts)
	assert.True(t, shape.Closed)
}

func TestSectorDegenerate(t *testing.T) {
	s := NewLatLonSector(10, 10, 10, 10, proj.LineStraight)
	for _, pt := range s.BoundaryLatLon() {
		assert.InDelta(t, 10, pt.Lat(), 1e-9)
		assert.InDelta(t, 10, pt.Lon(), 1e-9)
	}
	s.SetLatLon(10, 10, 20, 10)
	ring := s.BoundaryLatLon()
	assert.InDelta(t, 20, ring[0].Lat(), 1e-9)
}

func TestSectorXYPie(t *testing.T) {
	s := NewXYSector(100, 100, 140, 120)
	require.True(t, s.Generate(world()))
	shape, _ := s.Shape()
	ls := shape.Parts[0]
	assert.Equal(t, orb.Point{120, 110}, ls[0])
	assert.Equal(t, ls[0], ls[len(ls)-1])
	assert.InDelta(t, 120, ls[1][0], 1e-9)
	assert.InDelta(t, 120, ls[1][1], 1e-9)
	assert.InDelta(t, 140, ls[len(ls)-2][0], 1e-9)
	assert.InDelta(t, 110, ls[len(ls)-2][1], 1e-9)

	off := NewOffsetSector(0, 0, -10, -10, 10, 10)
	require.True(t, off.Generate(world()))
	shape, _ = off.Shape()
	assert.Equal(t, orb.Point{180, 90}, shape.Parts[0][0])
}

func TestSectorNormalize(t *testing.T) {
	s := NewLatLonSector(20, 30, 10, 5, proj.LineStraight)
	s.Normalize()
	lat1, lon1, lat2, lon2 := s.LatLon()
	assert.Equal(t, []float64{10, 5, 20, 30}, []float64{lat1, lon1, lat2, lon2})
}

func TestFromWKT(t *testing.T) {
	g, err := FromWKT("POINT (30 10)", proj.LineStraight)
	require.NoError(t, err)
	p := g.(*Point)
	assert.Equal(t, 10.0, p.Lat())
	assert.Equal(t, 30.0, p.Lon())

	g, err = FromWKT("POLYGON ((0 0, 10 0, 10 10, 0 0))", proj.LineGreatCircle)
	require.NoError(t, err)
	poly := g.(*Poly)
	assert.True(t, poly.IsPolygon())
	assert.Equal(t, 3, poly.Len())
	assert.Equal(t, proj.LineGreatCircle, poly.LineType())

	g, err = FromWKT("LINESTRING (0 0, 5 5)", proj.LineStraight)
	require.NoError(t, err)
	assert.False(t, g.(*Poly).IsPolygon())

	_, err = FromWKT("  ", proj.LineStraight)
	assert.ErrorIs(t, err, ErrEmptyWKT)
	_, err = FromWKT("POINT (200 10)", proj.LineStraight)
	assert.Error(t, err)
	_, err = FromWKT("CIRCLE (1 2)", proj.LineStraight)
	assert.Error(t, err)
}

func TestNameConcurrent(t *testing.T) {
	p := NewXYPoint(0, 0)
	assert.Equal(t, "point", p.Name())
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.SetName("a")
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		_ = p.Name()
	}
	<-done
	assert.Equal(t, "a", p.Name())
}
