// Package proj converts between geographic coordinates and screen pixels for the map view.
//
// Latitudes and longitudes are decimal degrees unless a name says otherwise; screen
// coordinates are pixels with (0, 0) at the top-left of the map area.
package proj

import (
	"errors"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// LineType selects how the segment between two geographic vertices is drawn.
type LineType int

const (
	LineStraight LineType = iota
	LineGreatCircle
	LineRhumb
)

func (t LineType) String() string {
	switch t {
	case LineStraight:
		return "straight"
	case LineGreatCircle:
		return "greatcircle"
	case LineRhumb:
		return "rhumb"
	}
	return "unknown"
}

// ParseLineType accepts the names returned by LineType.String.
func ParseLineType(s string) (LineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "straight", "":
		return LineStraight, nil
	case "greatcircle", "great-circle", "gc":
		return LineGreatCircle, nil
	case "rhumb":
		return LineRhumb, nil
	}
	return LineStraight, errors.New("proj: unknown line type " + s)
}

// Projection is the map view the editors draw into.
type Projection interface {
	// Forward returns the screen position of lat/lon.
	Forward(lat, lon float64) orb.Point
	// Inverse returns the lat/lon under a screen position.
	Inverse(x, y float64) (lat, lon float64)
	// IsPlotable reports whether lat/lon can be placed on the screen at all.
	IsPlotable(lat, lon float64) bool
	// Rotation is the rotation of the whole view, radians.
	Rotation() float64
	// ForwardPoly projects a flat lat,lon,lat,lon... array given in radians.
	// The result holds one line per contiguous plotable run.
	ForwardPoly(llRad []float64, lt LineType, nsegs int, closed bool) []orb.LineString
	Width() int
	Height() int
}

// rotate turns (x, y) by a radians about (cx, cy).
func rotate(x, y, cx, cy, a float64) (float64, float64) {
	if a == 0 {
		return x, y
	}
	s, c := math.Sincos(a)
	dx, dy := x-cx, y-cy
	return cx + dx*c - dy*s, cy + dx*s + dy*c
}

// NormalizeLon wraps a longitude into [-180, 180].
func NormalizeLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func validLatLon(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
