package edit

import "fmt"

// Role says which logical field a grab point drives.
type Role int

const (
	RoleCenter Role = iota
	RoleNW
	RoleNE
	RoleSW
	RoleSE
	RoleOffset
	RoleVertex
)

func (r Role) String() string {
	switch r {
	case RoleCenter:
		return "center"
	case RoleNW:
		return "nw"
	case RoleNE:
		return "ne"
	case RoleSW:
		return "sw"
	case RoleSE:
		return "se"
	case RoleOffset:
		return "offset"
	case RoleVertex:
		return "vertex"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// HandleTolerance is how far from a grab point, in pixels, a press still grabs it.
const HandleTolerance = 3

// GrabPoint is a draggable handle in screen pixels. Index is the vertex index for
// RoleVertex.
type GrabPoint struct {
	X, Y  int
	Role  Role
	Index int
}

func (g *GrabPoint) Set(x, y int) {
	g.X, g.Y = x, y
}

// Near reports whether (x, y) is within tol pixels of g.
func (g *GrabPoint) Near(x, y, tol int) bool {
	dx, dy := g.X-x, g.Y-y
	return dx*dx+dy*dy <= tol*tol
}

func (g *GrabPoint) String() string {
	if g.Role == RoleVertex {
		return fmt.Sprintf("%s[%d](%d,%d)", g.Role, g.Index, g.X, g.Y)
	}
	return fmt.Sprintf("%s(%d,%d)", g.Role, g.X, g.Y)
}

type dependent struct {
	gp     *GrabPoint
	dx, dy int
}

// OffsetGrabPoint drags its dependents along, each keeping the offset recorded by the
// last UpdateOffsets.
type OffsetGrabPoint struct {
	GrabPoint
	deps []dependent
}

func NewOffsetGrabPoint(x, y int) *OffsetGrabPoint {
	return &OffsetGrabPoint{GrabPoint: GrabPoint{X: x, Y: y, Role: RoleOffset}}
}

func (o *OffsetGrabPoint) Add(gp *GrabPoint) {
	if gp == nil || gp == &o.GrabPoint {
		return
	}
	for _, d := range o.deps {
		if d.gp == gp {
			return
		}
	}
	o.deps = append(o.deps, dependent{gp: gp, dx: gp.X - o.X, dy: gp.Y - o.Y})
}

func (o *OffsetGrabPoint) Remove(gp *GrabPoint) {
	for i, d := range o.deps {
		if d.gp == gp {
			o.deps = append(o.deps[:i], o.deps[i+1:]...)
			return
		}
	}
}

func (o *OffsetGrabPoint) Clear() { o.deps = nil }

func (o *OffsetGrabPoint) Dependents() []*GrabPoint {
	out := make([]*GrabPoint, len(o.deps))
	for i, d := range o.deps {
		out[i] = d.gp
	}
	return out
}

// Set moves o and every dependent rigidly.
func (o *OffsetGrabPoint) Set(x, y int) {
	o.X, o.Y = x, y
	for _, d := range o.deps {
		d.gp.Set(x+d.dx, y+d.dy)
	}
}

// UpdateOffsets records the current distance to every dependent.
func (o *OffsetGrabPoint) UpdateOffsets() {
	for i := range o.deps {
		o.deps[i].dx = o.deps[i].gp.X - o.X
		o.deps[i].dy = o.deps[i].gp.Y - o.Y
	}
}
