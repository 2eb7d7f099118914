package edit

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

// Attributes are the defaults given to newly created graphics.
type Attributes struct {
	RenderType           geom.RenderType
	LineType             proj.LineType
	CoordMode            geom.CoordMode
	Radius               int
	Oval                 bool
	RotationCompensation bool
}

func DefaultAttributes() Attributes {
	return Attributes{
		RenderType: geom.RenderLatLon,
		LineType:   proj.LineGreatCircle,
		CoordMode:  geom.CoordOrigin,
		Radius:     geom.DefaultRadius,
	}
}

type options struct {
	log  logrus.FieldLogger
	proj proj.Projection
}

type Option func(*options)

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithProjection generates the graphic and places its handles right away.
func WithProjection(p proj.Projection) Option {
	return func(o *options) { o.proj = p }
}

func buildOptions(opts []Option) options {
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sentinel position of a graphic that has not been placed yet
const (
	unplacedLat = 90.0
	unplacedLon = -180.0
	unplacedXY  = -1
)

type tool struct {
	create func(Attributes, options) Editor
	wrap   func(geom.Graphic, options) (Editor, bool)
}

var tools = map[geom.Kind]tool{
	geom.KindPoint: {
		create: func(a Attributes, o options) Editor {
			var p *geom.Point
			switch a.RenderType {
			case geom.RenderXY:
				p = geom.NewXYPoint(unplacedXY, unplacedXY)
			case geom.RenderOffset:
				p = geom.NewOffsetPoint(unplacedLat, unplacedLon, 0, 0)
			default:
				p = geom.NewLatLonPoint(unplacedLat, unplacedLon)
			}
			p.SetRadius(a.Radius)
			p.SetOval(a.Oval)
			p.SetRotationCompensation(a.RotationCompensation)
			return newPointEditor(p, StateUndefined, o)
		},
		wrap: func(g geom.Graphic, o options) (Editor, bool) {
			p, ok := g.(*geom.Point)
			if !ok {
				return nil, false
			}
			return newPointEditor(p, StateSelected, o), true
		},
	},
	geom.KindPoly: {
		create: func(a Attributes, o options) Editor {
			var p *geom.Poly
			switch a.RenderType {
			case geom.RenderXY:
				p = geom.NewXYPoly(nil, nil)
			case geom.RenderOffset:
				p = geom.NewOffsetPoly(rad(unplacedLat), rad(unplacedLon), nil, nil, a.CoordMode)
			default:
				p = geom.NewLatLonPoly(nil, a.LineType)
			}
			return newPolyEditor(p, StateUndefined, o)
		},
		wrap: func(g geom.Graphic, o options) (Editor, bool) {
			p, ok := g.(*geom.Poly)
			if !ok {
				return nil, false
			}
			return newPolyEditor(p, StateSelected, o), true
		},
	},
	geom.KindSector: {
		create: func(a Attributes, o options) Editor {
			var s *geom.Sector
			switch a.RenderType {
			case geom.RenderXY:
				s = geom.NewXYSector(unplacedXY, unplacedXY, unplacedXY, unplacedXY)
			case geom.RenderOffset:
				s = geom.NewOffsetSector(unplacedLat, unplacedLon, 0, 0, 0, 0)
			default:
				s = geom.NewLatLonSector(unplacedLat, unplacedLon, unplacedLat, unplacedLon, a.LineType)
			}
			return newSectorEditor(s, StateUndefined, o)
		},
		wrap: func(g geom.Graphic, o options) (Editor, bool) {
			s, ok := g.(*geom.Sector)
			if !ok {
				return nil, false
			}
			return newSectorEditor(s, StateSelected, o), true
		},
	},
}

// Kinds lists the graphic kinds editors exist for.
func Kinds() []geom.Kind {
	return []geom.Kind{geom.KindPoint, geom.KindPoly, geom.KindSector}
}

// New returns an editor for a graphic of kind that is not placed yet. Its first
// pointer gestures place it.
func New(kind geom.Kind, attrs Attributes, opts ...Option) (Editor, error) {
	t, ok := tools[kind]
	if !ok {
		return nil, fmt.Errorf("edit: no editor for %s", kind)
	}
	switch attrs.RenderType {
	case geom.RenderXY, geom.RenderOffset, geom.RenderLatLon:
	default:
		return nil, fmt.Errorf("edit: cannot create %s with render type %s", kind, attrs.RenderType)
	}
	if attrs.Radius < 1 {
		attrs.Radius = geom.DefaultRadius
	}
	return t.create(attrs, buildOptions(opts)), nil
}

// For returns an editor for an existing graphic, starting out selected.
func For(g geom.Graphic, opts ...Option) (Editor, error) {
	if g == nil {
		return nil, fmt.Errorf("edit: nil graphic")
	}
	t, ok := tools[g.Kind()]
	if !ok {
		return nil, fmt.Errorf("edit: no editor for %s", g.Kind())
	}
	e, ok := t.wrap(g, buildOptions(opts))
	if !ok {
		return nil, fmt.Errorf("edit: %T is not a %s", g, g.Kind())
	}
	return e, nil
}
