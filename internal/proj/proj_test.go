package proj

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rad(d float64) float64 { return d * math.Pi / 180 }

func TestEquirectRoundTrip(t *testing.T) {
	views := []*Equirect{
		NewEquirect(361, 181),
		{Bound: World, Zoom: 3, OffsetX: 40, OffsetY: -12, W: 200, H: 100},
		{Bound: World, Zoom: 1.5, W: 400, H: 200, Rot: rad(30)},
	}
	for _, p := range views {
		for _, ll := range [][2]float64{{0, 0}, {45.5, -120.25}, {-60, 170}, {12, 12}} {
			pt := p.Forward(ll[0], ll[1])
			lat, lon := p.Inverse(pt[0], pt[1])
			assert.InDelta(t, ll[0], lat, 1e-9)
			assert.InDelta(t, ll[1], lon, 1e-9)
		}
	}
}

func TestEquirectCorners(t *testing.T) {
	p := NewEquirect(361, 181)
	assert.Equal(t, orb.Point{0, 0}, p.Forward(90, -180))
	assert.Equal(t, orb.Point{360, 180}, p.Forward(-90, 180))
	assert.Equal(t, orb.Point{180, 90}, p.Forward(0, 0))
}

func TestEquirectPlotable(t *testing.T) {
	p := NewEquirect(100, 50)
	assert.True(t, p.IsPlotable(90, -180))
	assert.False(t, p.IsPlotable(91, 0))
	assert.False(t, p.IsPlotable(0, math.NaN()))

	bad := &Equirect{Bound: World, W: 100, H: 50}
	assert.False(t, bad.IsPlotable(0, 0), "zero zoom")
}

func TestMercatorRoundTrip(t *testing.T) {
	p := NewMercator(512, 512)
	p.Center = orb.Point{10, 45}
	for _, ll := range [][2]float64{{45, 10}, {0, 0}, {-33.9, 151.2}, {60, -20}} {
		pt := p.Forward(ll[0], ll[1])
		lat, lon := p.Inverse(pt[0], pt[1])
		assert.InDelta(t, ll[0], lat, 1e-6)
		assert.InDelta(t, ll[1], lon, 1e-6)
	}
	c := p.Forward(45, 10)
	assert.InDelta(t, 256, c[0], 1e-6)
	assert.InDelta(t, 256, c[1], 1e-6)
}

func TestMercatorPlotable(t *testing.T) {
	p := NewMercator(100, 100)
	assert.True(t, p.IsPlotable(85, 0))
	assert.False(t, p.IsPlotable(89, 0))
}

func TestParseLineType(t *testing.T) {
	cases := map[string]LineType{
		"straight":    LineStraight,
		"GreatCircle": LineGreatCircle,
		"rhumb":       LineRhumb,
	}
	for s, want := range cases {
		got, err := ParseLineType(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want, must(ParseLineType(got.String())))
	}
	_, err := ParseLineType("zigzag")
	assert.Error(t, err)
}

func must(lt LineType, err error) LineType {
	if err != nil {
		panic(err)
	}
	return lt
}

func TestDensifyGreatCircle(t *testing.T) {
	a, b := orb.Point{-74, 40.7}, orb.Point{-0.1, 51.5}
	pts := Densify(a, b, LineGreatCircle, 10)
	require.Len(t, pts, 11)
	assert.Equal(t, a, pts[0])
	assert.Equal(t, b, pts[10])

	// every step has the same ground length, the last one into b included
	step := geo.DistanceHaversine(a, b) / 10
	total := 0.0
	for i := 1; i < len(pts); i++ {
		d := geo.DistanceHaversine(pts[i-1], pts[i])
		assert.InDelta(t, step, d, 10, "step %d", i)
		total += d
	}
	assert.InDelta(t, geo.DistanceHaversine(a, b), total, 100)

	// a great circle from New York to London bulges north of both ends
	assert.Greater(t, pts[5][1], 51.5)
}

func TestDensifyRhumbKeepsBearing(t *testing.T) {
	a, b := orb.Point{0, 0}, orb.Point{40, 30}
	pts := Densify(a, b, LineRhumb, 8)
	require.Len(t, pts, 9)
	b0 := geo.Bearing(pts[0], pts[1])
	b7 := geo.Bearing(pts[7], pts[8])
	assert.InDelta(t, b0, b7, 2)
}

func TestDensifyStraight(t *testing.T) {
	pts := Densify(orb.Point{0, 0}, orb.Point{10, 10}, LineStraight, 50)
	assert.Len(t, pts, 2)
}

func TestForwardPolyClosedAndSplit(t *testing.T) {
	p := NewEquirect(361, 181)
	ll := []float64{rad(0), rad(0), rad(0), rad(10), rad(10), rad(10)}
	lines := p.ForwardPoly(ll, LineStraight, 0, true)
	require.Len(t, lines, 1)
	require.Len(t, lines[0], 4)
	assert.Equal(t, lines[0][0], lines[0][3])

	// crossing the antimeridian breaks the run
	cross := []float64{rad(0), rad(170), rad(0), rad(-170)}
	lines = p.ForwardPoly(cross, LineStraight, 0, false)
	assert.Len(t, lines, 2)

	assert.Empty(t, p.ForwardPoly(nil, LineStraight, 0, false))
}

func TestForwardPolyDropsUnplotable(t *testing.T) {
	p := NewMercator(256, 256)
	ll := []float64{rad(10), rad(0), rad(89), rad(0), rad(10), rad(5)}
	lines := p.ForwardPoly(ll, LineStraight, 0, false)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 1)
	assert.Len(t, lines[1], 1)
}
