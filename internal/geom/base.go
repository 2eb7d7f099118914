package geom

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// base holds what every graphic has besides its coordinates.
type base struct {
	mu    sync.RWMutex // guards name
	name  string
	rt    RenderType
	stale bool
	shape Shape
	have  bool
}

func (b *base) init(name string, rt RenderType) {
	b.name = name
	b.rt = rt
	b.stale = true
}

func (b *base) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

func (b *base) SetName(name string) {
	b.mu.Lock()
	b.name = name
	b.mu.Unlock()
}

func (b *base) RenderType() RenderType { return b.rt }

func (b *base) NeedToRegenerate() bool { return b.stale }

func (b *base) SetNeedToRegenerate(stale bool) { b.stale = stale }

func (b *base) Shape() (Shape, bool) {
	if b.stale || !b.have {
		return Shape{}, false
	}
	return b.shape, true
}

func (b *base) Render(c Canvas) {
	s, ok := b.Shape()
	if !ok || c == nil {
		return
	}
	for _, part := range s.Parts {
		if len(part) > 0 {
			c.Stroke(part)
		}
	}
}

func (b *base) Distance(x, y float64) float64 {
	if !b.have {
		return math.Inf(1)
	}
	return b.shape.Distance(x, y)
}

func (b *base) store(s Shape) {
	b.shape = s
	b.have = true
	b.stale = false
}

func (b *base) copyFrom(o *base) {
	b.SetName(o.Name())
	b.rt = o.rt
	b.stale = o.stale
	b.have = o.have
	b.shape = o.shape.clone()
}

func unknownRenderType(g Graphic) bool {
	logrus.WithFields(logrus.Fields{
		"graphic": g.Name(),
		"kind":    g.Kind().String(),
		"render":  int(g.RenderType()),
	}).Warn("geom: unknown render type, shape not generated")
	return false
}

// rotateAbout turns pts by a radians about c in screen space (y down).
func rotateAbout(pts []orb.Point, cx, cy, a float64) {
	if a == 0 {
		return
	}
	s, co := math.Sincos(a)
	for i, p := range pts {
		dx, dy := p[0]-cx, p[1]-cy
		pts[i] = orb.Point{cx + dx*co - dy*s, cy + dx*s + dy*co}
	}
}

func deg(r float64) float64 { return r * 180 / math.Pi }
func rad(d float64) float64 { return d * math.Pi / 180 }
