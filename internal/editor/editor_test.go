package editor

import (
	"testing"

	"homewall/internal/wall"
	"homewall/pkg/colorutil"
	"homewall/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) (*Editor, *wall.Climb) {
	t.Helper()
	w := wall.New("Garage", nil)
	c := w.NewClimb()
	ed := New(c,
		geometry.Size{Width: 1000, Height: 1000},
		geometry.Size{Width: 500, Height: 500},
	)
	return ed, c
}

// tap presses and releases at the same point.
func tap(ed *Editor, p geometry.Point2D) (bool, error) {
	ed.PointerDown(p)
	return ed.PointerUp(p)
}

func TestTapOnEmptySpaceCreatesHold(t *testing.T) {
	ed, c := newTestEditor(t)
	ed.SetDefaultColor(colorutil.HoldGreen)
	ed.SetDefaultSize(40)

	changed, err := tap(ed, geometry.Point2D{X: 250, Y: 250})
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, c.Holds, 1)

	h := c.Holds[0]
	assert.Equal(t, colorutil.HoldGreen, h.Color)
	assert.InDelta(t, 0.5, h.RelX, 1e-9)
	assert.InDelta(t, 0.5, h.RelY, 1e-9)
	assert.InDelta(t, 40.0/500.0, h.Size, 1e-9)
	assert.Equal(t, 0, ed.ActiveIndex())
}

func TestTapCyclesColorThenDeletes(t *testing.T) {
	ed, c := newTestEditor(t)
	p := geometry.Point2D{X: 250, Y: 250}

	_, err := tap(ed, p)
	require.NoError(t, err)
	require.Equal(t, colorutil.HoldRed, c.Holds[0].Color)

	for _, want := range []colorutil.HoldColor{
		colorutil.HoldGreen, colorutil.HoldBlue, colorutil.HoldPurple,
	} {
		_, err := tap(ed, p)
		require.NoError(t, err)
		require.Len(t, c.Holds, 1)
		assert.Equal(t, want, c.Holds[0].Color)
	}

	// Fifth tap removes the hold and clears the active selection.
	changed, err := tap(ed, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, c.Holds)
	assert.Equal(t, -1, ed.ActiveIndex())
}

func TestDragMovesHold(t *testing.T) {
	ed, c := newTestEditor(t)
	start := geometry.Point2D{X: 250, Y: 250}
	_, err := tap(ed, start)
	require.NoError(t, err)

	end := start.Add(geometry.Point2D{X: 100, Y: 50})
	require.GreaterOrEqual(t, ed.PointerDown(start), 0)
	require.NoError(t, ed.PointerMove(end))
	changed, err := ed.PointerUp(end)
	require.NoError(t, err)
	assert.True(t, changed)

	// One hold, moved, not recolored.
	require.Len(t, c.Holds, 1)
	assert.Equal(t, colorutil.HoldRed, c.Holds[0].Color)
	center, _ := ed.Transform().DecodeHold(c.Holds[0])
	assert.InDelta(t, 350.0, center.X, 1e-9)
	assert.InDelta(t, 300.0, center.Y, 1e-9)
}

func TestDragIsZoomCompensated(t *testing.T) {
	ed, c := newTestEditor(t)
	start := geometry.Point2D{X: 100, Y: 100}
	_, err := tap(ed, start)
	require.NoError(t, err)

	ed.SetScale(2)

	// At 2x the hold sits at raw position 200,200. An 80px finger travel
	// moves the hold only 40 container units.
	rawStart := geometry.Point2D{X: 200, Y: 200}
	require.GreaterOrEqual(t, ed.PointerDown(rawStart), 0)
	rawEnd := rawStart.Add(geometry.Point2D{X: 80, Y: 0})
	require.NoError(t, ed.PointerMove(rawEnd))
	_, err = ed.PointerUp(rawEnd)
	require.NoError(t, err)

	center, _ := ed.Transform().DecodeHold(c.Holds[0])
	assert.InDelta(t, 140.0, center.X, 1e-9)
	assert.InDelta(t, 100.0, center.Y, 1e-9)
}

func TestSubThresholdDragIsATap(t *testing.T) {
	ed, c := newTestEditor(t)
	p := geometry.Point2D{X: 250, Y: 250}
	_, err := tap(ed, p)
	require.NoError(t, err)

	// 5px of travel stays under the tap threshold, so this recolors
	// instead of moving.
	ed.PointerDown(p)
	end := p.Add(geometry.Point2D{X: 3, Y: 4})
	require.NoError(t, ed.PointerMove(end))
	_, err = ed.PointerUp(end)
	require.NoError(t, err)

	assert.Equal(t, colorutil.HoldGreen, c.Holds[0].Color)
	center, _ := ed.Transform().DecodeHold(c.Holds[0])
	assert.InDelta(t, 250.0, center.X, 1e-9)
}

func TestPointerDownReportsMissForPanning(t *testing.T) {
	ed, _ := newTestEditor(t)
	_, err := tap(ed, geometry.Point2D{X: 100, Y: 100})
	require.NoError(t, err)

	assert.Equal(t, -1, ed.PointerDown(geometry.Point2D{X: 400, Y: 400}))
	assert.Equal(t, 0, ed.PointerDown(geometry.Point2D{X: 100, Y: 100}))
}

func TestHitTestUsesPadding(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.SetDefaultSize(40)
	_, err := tap(ed, geometry.Point2D{X: 250, Y: 250})
	require.NoError(t, err)

	// Radius 20 plus 10 padding: 28px out hits, 31px out misses.
	assert.Equal(t, 0, ed.HitTest(geometry.Point2D{X: 278, Y: 250}))
	assert.Equal(t, -1, ed.HitTest(geometry.Point2D{X: 281, Y: 250}))
}

func TestResizeActiveMutatesExistingHold(t *testing.T) {
	ed, c := newTestEditor(t)
	_, err := tap(ed, geometry.Point2D{X: 250, Y: 250})
	require.NoError(t, err)

	require.NoError(t, ed.ResizeActive(60))
	assert.InDelta(t, 60.0/500.0, c.Holds[0].Size, 1e-9)
}

func TestResizeActiveWithoutSelection(t *testing.T) {
	ed, _ := newTestEditor(t)
	assert.NoError(t, ed.ResizeActive(60))
}

func TestSetScaleClampsAndResetsOffset(t *testing.T) {
	ed, _ := newTestEditor(t)

	ed.SetScale(10)
	assert.Equal(t, DefaultZoomMax, ed.Scale())

	ed.SetOffset(geometry.Point2D{X: -50, Y: -30})
	ed.SetScale(0.5)
	assert.Equal(t, 1.0, ed.Scale())
	assert.Equal(t, geometry.Point2D{}, ed.Offset())
}

func TestEstablishedClimbRejectsGestures(t *testing.T) {
	ed, c := newTestEditor(t)
	_, err := tap(ed, geometry.Point2D{X: 250, Y: 250})
	require.NoError(t, err)
	require.NoError(t, c.Establish())

	// Tap on empty space.
	_, err = tap(ed, geometry.Point2D{X: 400, Y: 400})
	assert.ErrorIs(t, err, wall.ErrEstablished)
	assert.Len(t, c.Holds, 1)

	// Drag on the frozen hold.
	start := geometry.Point2D{X: 250, Y: 250}
	ed.PointerDown(start)
	err = ed.PointerMove(start.Add(geometry.Point2D{X: 50, Y: 0}))
	assert.ErrorIs(t, err, wall.ErrEstablished)

	// Tap-cycle on the frozen hold.
	_, err = tap(ed, start)
	assert.ErrorIs(t, err, wall.ErrEstablished)
	assert.Equal(t, colorutil.HoldRed, c.Holds[0].Color)
}

func TestContainerResizeKeepsRelativePosition(t *testing.T) {
	ed, c := newTestEditor(t)
	_, err := tap(ed, geometry.Point2D{X: 250, Y: 250})
	require.NoError(t, err)

	ed.SetContainerSize(geometry.Size{Width: 1000, Height: 800})
	center, _ := ed.Transform().DecodeHold(c.Holds[0])
	fit := ed.Transform().FitRect()
	assert.InDelta(t, fit.Center().X, center.X, 1e-9)
	assert.InDelta(t, fit.Center().Y, center.Y, 1e-9)
}
