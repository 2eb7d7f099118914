package geom

import (
	"errors"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"mapedit/internal/proj"
)

// RenderType says how a graphic's coordinates are interpreted. It is fixed at construction.
type RenderType int

const (
	RenderUnknown RenderType = iota
	RenderXY
	RenderOffset
	RenderLatLon
)

func (r RenderType) String() string {
	switch r {
	case RenderXY:
		return "xy"
	case RenderOffset:
		return "offset"
	case RenderLatLon:
		return "latlon"
	}
	return "unknown"
}

func ParseRenderType(s string) (RenderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xy":
		return RenderXY, nil
	case "offset":
		return RenderOffset, nil
	case "latlon", "":
		return RenderLatLon, nil
	}
	return RenderUnknown, errors.New("geom: unknown render type " + s)
}

// CoordMode applies to OFFSET polys: vertex offsets are taken from the anchor
// (CoordOrigin) or from the previous vertex (CoordPrevious).
type CoordMode int

const (
	CoordOrigin CoordMode = iota
	CoordPrevious
)

func (c CoordMode) String() string {
	if c == CoordPrevious {
		return "previous"
	}
	return "origin"
}

func ParseCoordMode(s string) (CoordMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "origin", "":
		return CoordOrigin, nil
	case "previous":
		return CoordPrevious, nil
	}
	return CoordOrigin, errors.New("geom: unknown coord mode " + s)
}

type Kind int

const (
	KindPoint Kind = iota
	KindPoly
	KindSector
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPoly:
		return "poly"
	case KindSector:
		return "sector"
	}
	return "unknown"
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point":
		return KindPoint, nil
	case "poly", "polygon", "polyline":
		return KindPoly, nil
	case "sector":
		return KindSector, nil
	}
	return KindPoint, errors.New("geom: unknown graphic kind " + s)
}

// Shape is a generated screen-space outline.
type Shape struct {
	Parts  []orb.LineString
	Closed bool
}

func (s Shape) Empty() bool {
	for _, p := range s.Parts {
		if len(p) > 0 {
			return false
		}
	}
	return true
}

func (s Shape) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, p := range s.Parts {
		if len(p) == 0 {
			continue
		}
		if first {
			b = p.Bound()
			first = false
			continue
		}
		b = b.Union(p.Bound())
	}
	return b
}

// Distance is the screen distance from (x, y) to the outline; zero inside a closed shape.
func (s Shape) Distance(x, y float64) float64 {
	pt := orb.Point{x, y}
	best := math.Inf(1)
	for _, part := range s.Parts {
		switch len(part) {
		case 0:
			continue
		case 1:
			best = math.Min(best, planar.Distance(part[0], pt))
			continue
		}
		if s.Closed && len(part) > 2 && planar.RingContains(orb.Ring(part), pt) {
			return 0
		}
		for i := 1; i < len(part); i++ {
			best = math.Min(best, planar.DistanceFromSegment(part[i-1], part[i], pt))
		}
	}
	return best
}

func (s Shape) clone() Shape {
	out := Shape{Closed: s.Closed}
	if s.Parts != nil {
		out.Parts = make([]orb.LineString, len(s.Parts))
		for i, p := range s.Parts {
			out.Parts[i] = p.Clone()
		}
	}
	return out
}

// Canvas is what a graphic draws itself on.
type Canvas interface {
	Stroke(ls orb.LineString)
	Handle(x, y int)
}

// Nameable graphics carry a display name.
type Nameable interface {
	Name() string
	SetName(name string)
}

// Rotatable graphics carry an explicit rotation, radians.
type Rotatable interface {
	Rotation() float64
	SetRotation(r float64)
}

// Graphic is one editable primitive.
type Graphic interface {
	Nameable
	Kind() Kind
	RenderType() RenderType
	// Generate rebuilds the shape for p. On failure the previous shape is kept and
	// the graphic stays stale.
	Generate(p proj.Projection) bool
	// Regenerate calls Generate only when the graphic is stale.
	Regenerate(p proj.Projection) bool
	NeedToRegenerate() bool
	SetNeedToRegenerate(stale bool)
	// Shape returns the current shape; ok is false while stale.
	Shape() (Shape, bool)
	Render(c Canvas)
	// Distance is the screen distance from (x, y) to the last generated shape.
	Distance(x, y float64) float64
	Clone() Graphic
	// Restore copies src's state into the receiver. It reports false when src is a
	// different kind.
	Restore(src Graphic) bool
}
