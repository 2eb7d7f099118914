package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"mapedit/internal/proj"
)

var ErrEmptyWKT = errors.New("wkt: no coordinates parsed")

// FromWKT builds a LATLON graphic from WKT text in lon/lat order.
// POINT becomes a Point, LINESTRING a Poly and POLYGON an enclosed Poly built from its
// outer ring.
func FromWKT(s string, lt proj.LineType) (Graphic, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyWKT
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	switch v := g.(type) {
	case orb.Point:
		if err := checkLonLat(v); err != nil {
			return nil, err
		}
		return NewLatLonPoint(v.Lat(), v.Lon()), nil
	case orb.MultiPoint:
		if len(v) != 1 {
			return nil, fmt.Errorf("wkt: multipoint with %d points, want 1", len(v))
		}
		return FromWKT(wkt.MarshalString(v[0]), lt)
	case orb.LineString:
		return polyFromLonLat(v, lt, false)
	case orb.Polygon:
		if len(v) == 0 {
			return nil, ErrEmptyWKT
		}
		outer := v[0]
		if len(outer) > 1 && outer[0].Equal(outer[len(outer)-1]) {
			outer = outer[:len(outer)-1]
		}
		return polyFromLonLat(orb.LineString(outer), lt, true)
	}
	return nil, fmt.Errorf("wkt: unsupported geometry %s", g.GeoJSONType())
}

func polyFromLonLat(ls orb.LineString, lt proj.LineType, polygon bool) (Graphic, error) {
	if len(ls) == 0 {
		return nil, ErrEmptyWKT
	}
	ll := make([]float64, 0, 2*len(ls))
	for _, pt := range ls {
		if err := checkLonLat(pt); err != nil {
			return nil, err
		}
		ll = append(ll, rad(pt.Lat()), rad(pt.Lon()))
	}
	p := NewLatLonPoly(ll, lt)
	p.SetPolygon(polygon)
	return p, nil
}

func checkLonLat(p orb.Point) error {
	if p.Lat() < -90 || p.Lat() > 90 || p.Lon() < -180 || p.Lon() > 180 {
		return fmt.Errorf("wkt: coordinate out of range: %v %v", p.Lon(), p.Lat())
	}
	return nil
}
