package proj

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/project"
)

// segmentLength is the target ground length of one interpolated step, meters.
const segmentLength = 100_000

const maxSegments = 512

// Densify returns the lon/lat points of the path from a to b, both endpoints included.
// Straight lines are returned as-is; nsegs <= 0 picks a step count from the distance.
func Densify(a, b orb.Point, lt LineType, nsegs int) []orb.Point {
	if lt == LineStraight || a.Equal(b) {
		return []orb.Point{a, b}
	}
	n := nsegs
	if n <= 0 {
		n = int(math.Ceil(geo.DistanceHaversine(a, b) / segmentLength))
	}
	n = max(1, min(n, maxSegments))

	pts := make([]orb.Point, 0, n+1)
	pts = append(pts, a)
	switch lt {
	case LineGreatCircle:
		// PointAtBearingAndDistance takes a spherical distance
		d := geo.DistanceHaversine(a, b)
		brg := geo.Bearing(a, b)
		for i := 1; i < n; i++ {
			pts = append(pts, geo.PointAtBearingAndDistance(a, brg, d*float64(i)/float64(n)))
		}
	case LineRhumb:
		ma := project.WGS84.ToMercator(clampLat(a))
		mb := project.WGS84.ToMercator(clampLat(b))
		for i := 1; i < n; i++ {
			t := float64(i) / float64(n)
			m := orb.Point{ma[0] + (mb[0]-ma[0])*t, ma[1] + (mb[1]-ma[1])*t}
			pts = append(pts, project.Mercator.ToWGS84(m))
		}
	}
	return append(pts, b)
}

func clampLat(p orb.Point) orb.Point {
	return orb.Point{p[0], math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, p[1]))}
}

// forwardPoly is the ForwardPoly shared by the projections. Runs are split where a
// point is not plotable or where the path wraps across the antimeridian.
func forwardPoly(p Projection, llRad []float64, lt LineType, nsegs int, closed bool) []orb.LineString {
	n := len(llRad) / 2
	if n == 0 {
		return nil
	}
	verts := make([]orb.Point, 0, n+1)
	for i := 0; i < n; i++ {
		verts = append(verts, orb.Point{
			llRad[2*i+1] * 180 / math.Pi,
			llRad[2*i] * 180 / math.Pi,
		})
	}
	if closed && n > 1 && !verts[0].Equal(verts[n-1]) {
		verts = append(verts, verts[0])
	}

	path := []orb.Point{verts[0]}
	for i := 1; i < len(verts); i++ {
		seg := Densify(verts[i-1], verts[i], lt, nsegs)
		path = append(path, seg[1:]...)
	}

	var out []orb.LineString
	var run orb.LineString
	prevLon := math.NaN()
	flush := func() {
		if len(run) > 0 {
			out = append(out, run)
		}
		run = nil
	}
	for _, ll := range path {
		lon := NormalizeLon(ll[0])
		lat := ll[1]
		if !p.IsPlotable(lat, lon) {
			flush()
			prevLon = math.NaN()
			continue
		}
		if !math.IsNaN(prevLon) && math.Abs(lon-prevLon) > 180 {
			flush()
		}
		run = append(run, p.Forward(lat, lon))
		prevLon = lon
	}
	flush()
	return out
}
