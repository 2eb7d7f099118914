package edit

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

// world maps one degree to one pixel with (0, 0) at 90N 180W.
func world() *proj.Equirect { return proj.NewEquirect(361, 181) }

type recorder struct {
	strokes []orb.LineString
	handles [][2]int
}

func (r *recorder) Stroke(ls orb.LineString) { r.strokes = append(r.strokes, ls) }
func (r *recorder) Handle(x, y int)          { r.handles = append(r.handles, [2]int{x, y}) }

func down(x, y int) PointerEvent { return PointerEvent{Kind: PointerDown, X: x, Y: y} }
func drag(x, y int) PointerEvent { return PointerEvent{Kind: PointerMove, X: x, Y: y} }
func up(x, y int) PointerEvent   { return PointerEvent{Kind: PointerUp, X: x, Y: y} }

func attrs(rt geom.RenderType) Attributes {
	a := DefaultAttributes()
	a.RenderType = rt
	return a
}

func TestPointPlacementByDrag(t *testing.T) {
	e, err := New(geom.KindPoint, attrs(geom.RenderXY), WithProjection(world()))
	require.NoError(t, err)
	assert.Equal(t, StateUndefined, e.State())
	assert.Empty(t, e.Handles())

	var r recorder
	e.Render(&r)
	assert.Empty(t, r.strokes, "unplaced point is not drawn")

	require.True(t, e.Pointer(down(100, 50)))
	assert.Equal(t, StateEdit, e.State())
	require.True(t, e.Pointer(drag(105, 55)))
	require.True(t, e.Pointer(up(110, 60)))
	assert.Equal(t, StateSelected, e.State())
	assert.Nil(t, e.Moving())

	p := e.Graphic().(*geom.Point)
	assert.Equal(t, 110, p.X())
	assert.Equal(t, 60, p.Y())
	assert.False(t, p.NeedToRegenerate())

	e.Render(&r)
	assert.Len(t, r.strokes, 1)
	assert.Equal(t, [][2]int{{110, 60}}, r.handles)
}

func TestLatLonPointDrag(t *testing.T) {
	p := geom.NewLatLonPoint(10, 20)
	e, err := For(p, WithProjection(world()))
	require.NoError(t, err)
	assert.Equal(t, StateSelected, e.State())

	h := e.Handles()
	require.Len(t, h, 1)
	assert.Equal(t, [2]int{200, 80}, [2]int{h[0].X, h[0].Y})

	assert.False(t, e.Pointer(down(10, 10)), "press away from the point")
	require.True(t, e.Pointer(down(201, 80)))
	e.Pointer(drag(220, 70))
	e.Pointer(up(221, 70))
	assert.Equal(t, StateSelected, e.State())
	assert.InDelta(t, 20, p.Lat(), 1e-9)
	assert.InDelta(t, 40, p.Lon(), 1e-9)
}

func TestOffsetPointPlacement(t *testing.T) {
	e, err := New(geom.KindPoint, attrs(geom.RenderOffset), WithProjection(world()))
	require.NoError(t, err)
	require.True(t, e.Pointer(down(180, 90)))
	e.Pointer(up(190, 85))

	p := e.Graphic().(*geom.Point)
	assert.InDelta(t, 0, p.Lat(), 1e-9)
	assert.InDelta(t, 0, p.Lon(), 1e-9)
	assert.Equal(t, 10, p.X())
	assert.Equal(t, -5, p.Y())
	assert.Len(t, e.Handles(), 2)

	// dragging the anchor takes the marker along
	require.True(t, e.Pointer(down(180, 90)))
	assert.Equal(t, StateSetOffset, e.State())
	e.Pointer(up(170, 80))
	assert.Equal(t, StateSelected, e.State())
	assert.InDelta(t, 10, p.Lat(), 1e-9)
	assert.InDelta(t, -10, p.Lon(), 1e-9)
	assert.Equal(t, 10, p.X())
	assert.Equal(t, -5, p.Y())
	c, ok := p.Center(e.Projection())
	require.True(t, ok)
	assert.Equal(t, orb.Point{180, 75}, c)
}

func TestPointRejectsBadLatitude(t *testing.T) {
	p := geom.NewLatLonPoint(10, 20)
	e, err := For(p, WithProjection(world()))
	require.NoError(t, err)

	err = e.Apply(Command{Kind: CmdCommitLatitude, Value: "95"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 10.0, p.Lat())

	err = e.Apply(Command{Kind: CmdCommitLongitude, Value: "east"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 20.0, p.Lon())

	require.NoError(t, e.Apply(Command{Kind: CmdCommitLatitude, Value: "-45.5"}))
	assert.Equal(t, -45.5, p.Lat())
	h := e.Handles()[0]
	assert.Equal(t, [2]int{200, 136}, [2]int{h.X, h.Y})
}

func TestPointFormCommits(t *testing.T) {
	p := geom.NewXYPoint(50, 50)
	e, err := For(p, WithProjection(world()))
	require.NoError(t, err)

	require.NoError(t, e.Apply(Command{Kind: CmdCommitName, Value: " marker "}))
	assert.Equal(t, "marker", p.Name())

	require.NoError(t, e.Apply(Command{Kind: CmdCommitRotation, Value: "90"}))
	assert.InDelta(t, math.Pi/2, p.Rotation(), 1e-12)

	require.NoError(t, e.Apply(Command{Kind: CmdCommitRadius, Value: "7"}))
	assert.Equal(t, 7, p.Radius())
	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitRadius, Value: "0"}), ErrInvalidInput)
	assert.Equal(t, 7, p.Radius())

	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitLatitude, Value: "10"}), ErrNotApplicable)
	assert.ErrorIs(t, e.Apply(Command{Kind: CmdAddNode}), ErrNotApplicable)

	labels := []string{}
	for _, f := range e.Fields() {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{"Name", "X", "Y", "Radius", "Rotation"}, labels)
	assert.Equal(t, "90", e.Fields()[4].Value)
}

func TestCancelDragRestores(t *testing.T) {
	p := geom.NewXYPoint(50, 50)
	e, err := For(p, WithProjection(world()))
	require.NoError(t, err)

	require.True(t, e.Pointer(down(50, 50)))
	e.Pointer(drag(80, 80))
	assert.Equal(t, 80, p.X())
	require.NoError(t, e.Apply(Command{Kind: CmdCancel}))
	assert.Equal(t, StateSelected, e.State())
	assert.Equal(t, 50, p.X())
	assert.False(t, e.Pointer(up(80, 80)), "drag is over")
	assert.Equal(t, [2]int{50, 50}, [2]int{e.Handles()[0].X, e.Handles()[0].Y})
}

func TestEditorLogsTransitions(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	e, err := New(geom.KindPoint, attrs(geom.RenderXY), WithProjection(world()), WithLogger(log))
	require.NoError(t, err)
	e.Pointer(down(5, 5))
	e.Pointer(up(5, 5))

	var msgs []string
	for _, entry := range hook.AllEntries() {
		msgs = append(msgs, entry.Message)
	}
	assert.Contains(t, msgs, "edit: state change")
	assert.Contains(t, msgs, "edit: drag end")
	assert.Equal(t, "point", hook.LastEntry().Data["graphic"])
}

func TestNoProjection(t *testing.T) {
	e, err := New(geom.KindPoint, attrs(geom.RenderLatLon))
	require.NoError(t, err)
	assert.False(t, e.Pointer(down(10, 10)))
	assert.Equal(t, StateUndefined, e.State())

	e.SetProjection(world())
	assert.True(t, e.Pointer(down(10, 10)))
}
