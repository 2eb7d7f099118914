package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapedit/internal/geom"
	"mapedit/internal/proj"
)

func sectorEditor(t *testing.T, s *geom.Sector) *SectorEditor {
	t.Helper()
	e, err := For(s, WithProjection(world()))
	require.NoError(t, err)
	return e.(*SectorEditor)
}

func xy(gp *GrabPoint) [2]int { return [2]int{gp.X, gp.Y} }

func TestSectorPlacementByDrag(t *testing.T) {
	e, err := New(geom.KindSector, attrs(geom.RenderXY), WithProjection(world()))
	require.NoError(t, err)

	require.True(t, e.Pointer(down(100, 50)))
	e.Pointer(drag(120, 60))
	e.Pointer(up(140, 70))
	assert.Equal(t, StateSelected, e.State())

	s := e.Graphic().(*geom.Sector)
	x1, y1, x2, y2 := s.XY()
	assert.Equal(t, []int{100, 50, 140, 70}, []int{x1, y1, x2, y2})
	assert.Len(t, e.Handles(), 5)
}

func TestSectorCornerDragFlips(t *testing.T) {
	s := geom.NewXYSector(100, 50, 140, 70)
	e := sectorEditor(t, s)
	assert.Equal(t, [2]int{140, 70}, xy(&e.se))
	assert.Equal(t, [2]int{120, 60}, xy(&e.center))

	require.True(t, e.Pointer(down(140, 70)))
	e.Pointer(drag(120, 40))
	e.Pointer(up(90, 40))
	x1, y1, x2, y2 := s.XY()
	assert.Equal(t, []int{90, 40, 100, 50}, []int{x1, y1, x2, y2})
	assert.Equal(t, [2]int{90, 40}, xy(&e.nw))
}

func TestSectorCenterDragKeepsSize(t *testing.T) {
	s := geom.NewXYSector(100, 50, 140, 70)
	e := sectorEditor(t, s)

	require.True(t, e.Pointer(down(120, 60)))
	e.Pointer(drag(125, 62))
	e.Pointer(up(130, 65))
	x1, y1, x2, y2 := s.XY()
	assert.Equal(t, []int{110, 55, 150, 75}, []int{x1, y1, x2, y2})
}

func TestLatLonSectorDrags(t *testing.T) {
	s := geom.NewLatLonSector(10, 10, 20, 20, proj.LineStraight)
	e := sectorEditor(t, s)
	assert.Equal(t, [2]int{190, 70}, xy(&e.nw))
	assert.Equal(t, [2]int{200, 70}, xy(&e.ne))
	assert.Equal(t, [2]int{200, 80}, xy(&e.se))
	assert.Equal(t, [2]int{195, 75}, xy(&e.center))

	// NE corner, SW stays
	require.True(t, e.Pointer(down(200, 70)))
	e.Pointer(up(206, 64))
	lat1, lon1, lat2, lon2 := s.LatLon()
	assert.InDelta(t, 10, lat1, 1e-9)
	assert.InDelta(t, 10, lon1, 1e-9)
	assert.InDelta(t, 26, lat2, 1e-9)
	assert.InDelta(t, 26, lon2, 1e-9)

	// center drag shifts the box
	c := xy(&e.center)
	require.Equal(t, [2]int{198, 72}, c)
	require.True(t, e.Pointer(down(c[0], c[1])))
	e.Pointer(up(c[0]+10, c[1]))
	lat1, lon1, lat2, lon2 = s.LatLon()
	assert.InDelta(t, 10, lat1, 1e-9)
	assert.InDelta(t, 16, lat2-lat1, 1e-9)
	assert.InDelta(t, 16, lon2-lon1, 1e-9)
	assert.InDelta(t, 20, lon1, 1e-9)
}

func TestSectorRadiusCommits(t *testing.T) {
	s := geom.NewLatLonSector(10, 10, 20, 20, proj.LineStraight)
	e := sectorEditor(t, s)

	fs := e.Fields()
	require.Len(t, fs, 5)
	assert.Equal(t, "10", fs[3].Value)
	assert.Equal(t, CmdCommitLatRadius, fs[3].Kind)

	require.NoError(t, e.Apply(Command{Kind: CmdCommitLatRadius, Value: "100"}))
	_, _, lat2, _ := s.LatLon()
	assert.Equal(t, 90.0, lat2)

	require.NoError(t, e.Apply(Command{Kind: CmdCommitLonRadius, Value: "500"}))
	_, _, _, lon2 := s.LatLon()
	assert.Equal(t, 180.0, lon2)

	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitLonRadius, Value: "-1"}), ErrInvalidInput)
	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitRotation, Value: "3"}), ErrNotApplicable)

	require.NoError(t, e.Apply(Command{Kind: CmdCommitLonRadius, Value: "5"}))
	require.NoError(t, e.Apply(Command{Kind: CmdCommitLatitude, Value: "-30"}))
	lat1, lon1, lat2, lon2 := s.LatLon()
	assert.Equal(t, []float64{-30, 10, 50, 15}, []float64{lat1, lon1, lat2, lon2})

	require.NoError(t, e.Apply(Command{Kind: CmdCommitLongitude, Value: "178"}))
	_, lon1, _, lon2 = s.LatLon()
	assert.Equal(t, 178.0, lon1)
	assert.Equal(t, 180.0, lon2)
	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitLatitude, Value: "95"}), ErrInvalidInput)
}

func TestXYSectorRejectsGeoCommits(t *testing.T) {
	e := sectorEditor(t, geom.NewXYSector(0, 0, 10, 10))
	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitLatRadius, Value: "1"}), ErrNotApplicable)
	assert.ErrorIs(t, e.Apply(Command{Kind: CmdCommitLatitude, Value: "1"}), ErrNotApplicable)
}

func TestOffsetSectorAnchorDrag(t *testing.T) {
	s := geom.NewOffsetSector(0, 0, 5, 5, 25, 25)
	e := sectorEditor(t, s)
	require.Len(t, e.Handles(), 6)
	assert.Equal(t, [2]int{185, 95}, xy(&e.nw))
	assert.Equal(t, [2]int{195, 105}, xy(&e.center))

	require.True(t, e.Pointer(down(180, 90)))
	assert.Equal(t, StateSetOffset, e.State())
	e.Pointer(up(190, 80))
	lat, lon := s.Anchor()
	assert.InDelta(t, 10, lat, 1e-9)
	assert.InDelta(t, 10, lon, 1e-9)
	x1, y1, x2, y2 := s.XY()
	assert.Equal(t, []int{5, 5, 25, 25}, []int{x1, y1, x2, y2})
	assert.Equal(t, [2]int{195, 85}, xy(&e.nw))

	// a corner drag changes the offsets, not the anchor
	require.True(t, e.Pointer(down(215, 105)))
	e.Pointer(up(220, 110))
	x1, y1, x2, y2 = s.XY()
	assert.Equal(t, []int{5, 5, 30, 30}, []int{x1, y1, x2, y2})
	lat2, lon2 := s.Anchor()
	assert.Equal(t, lat, lat2)
	assert.Equal(t, lon, lon2)
}
