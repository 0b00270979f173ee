package editor

import (
	"homewall/internal/wall"
	"homewall/pkg/colorutil"
	"homewall/pkg/geometry"
)

const (
	// hitPadding widens every hold's circular hit target beyond its drawn
	// radius, in container units.
	hitPadding = 10.0

	// tapThreshold is the maximum on-screen finger travel for a gesture to
	// still count as a tap rather than a drag.
	tapThreshold = 10.0

	// minZoom is the resting scale. Returning to it resets the pan offset.
	minZoom = 1.0

	// DefaultZoomMax suits phone-sized containers; larger screens use 5.
	DefaultZoomMax = 4.0

	// DefaultHoldSize is the initial hold diameter in container units.
	DefaultHoldSize = 36.0
)

// Marker is a decoded hold ready for drawing: an absolute center and
// diameter in unzoomed container space plus its display color.
type Marker struct {
	Center   geometry.Point2D
	Diameter float64
	Color    colorutil.HoldColor
}

// Editor owns the interactive hold-editing state for one draft climb: the
// coordinate transform, the view-level zoom/pan (never persisted), the
// current default color and size for new holds, and an in-progress gesture.
//
// Pointer positions passed to the Pointer methods are raw on-screen
// coordinates, including the current zoom and pan. The editor de-transforms
// them; holds themselves are always encoded and decoded in unzoomed
// container space.
type Editor struct {
	climb *wall.Climb
	tr    Transform

	scale   float64
	offset  geometry.Point2D
	zoomMax float64

	defaultColor colorutil.HoldColor
	defaultSize  float64

	// active tracks the most recently created or selected hold, the target
	// of the size side channel. -1 means none.
	active int

	pressed    bool
	dragIndex  int              // hold under the pointer at press, -1 for none
	dragStart  geometry.Point2D // raw pointer position at press
	dragOrigin geometry.Point2D // hold center at press, container space
}

// New creates an editor for a draft climb.
func New(climb *wall.Climb, imageSize, containerSize geometry.Size) *Editor {
	return &Editor{
		climb:        climb,
		tr:           NewTransform(imageSize, containerSize),
		scale:        minZoom,
		zoomMax:      DefaultZoomMax,
		defaultColor: colorutil.HoldRed,
		defaultSize:  DefaultHoldSize,
		active:       -1,
		dragIndex:    -1,
	}
}

// Climb returns the climb being edited.
func (e *Editor) Climb() *wall.Climb {
	return e.climb
}

// Transform returns the current coordinate transform.
func (e *Editor) Transform() Transform {
	return e.tr
}

// SetContainerSize updates the transform for a resized container. Holds keep
// their normalized coordinates and simply decode to new positions.
func (e *Editor) SetContainerSize(size geometry.Size) {
	e.tr.Container = size
}

// SetZoomMax sets the upper zoom clamp (4 on phone-sized screens, 5 on
// larger ones).
func (e *Editor) SetZoomMax(max float64) {
	if max > minZoom {
		e.zoomMax = max
	}
}

// Scale returns the current view zoom.
func (e *Editor) Scale() float64 {
	return e.scale
}

// Offset returns the current view pan offset.
func (e *Editor) Offset() geometry.Point2D {
	return e.offset
}

// SetScale sets the view zoom, clamped to [1, zoomMax]. Dropping back to 1
// resets the pan offset.
func (e *Editor) SetScale(scale float64) {
	if scale < minZoom {
		scale = minZoom
	}
	if scale > e.zoomMax {
		scale = e.zoomMax
	}
	e.scale = scale
	if e.scale == minZoom {
		e.offset = geometry.Point2D{}
	}
}

// SetOffset sets the view pan offset. The offset is unconstrained while
// zoomed in.
func (e *Editor) SetOffset(offset geometry.Point2D) {
	e.offset = offset
}

// SetDefaultColor sets the color used for newly placed holds.
func (e *Editor) SetDefaultColor(c colorutil.HoldColor) {
	e.defaultColor = c
}

// DefaultColor returns the color used for newly placed holds.
func (e *Editor) DefaultColor() colorutil.HoldColor {
	return e.defaultColor
}

// SetDefaultSize sets the diameter, in container units, used for newly
// placed holds.
func (e *Editor) SetDefaultSize(diameter float64) {
	if diameter > 0 {
		e.defaultSize = diameter
	}
}

// ActiveIndex returns the index of the most recently created or selected
// hold, or -1.
func (e *Editor) ActiveIndex() int {
	return e.active
}

// ResizeActive re-encodes the active hold with a new diameter. This is the
// size slider's side channel: it retroactively mutates the existing hold, it
// does not merely change the default for future holds.
func (e *Editor) ResizeActive(diameter float64) error {
	if e.active < 0 || e.active >= len(e.climb.Holds) || diameter <= 0 {
		return nil
	}
	h := e.climb.Holds[e.active]
	h.Size = diameter / e.tr.Container.Width
	return e.climb.UpdateHold(e.active, h)
}

// Markers decodes every hold into unzoomed container space for rendering.
// The view layer applies its own zoom/pan when drawing.
func (e *Editor) Markers() []Marker {
	markers := make([]Marker, len(e.climb.Holds))
	for i, h := range e.climb.Holds {
		center, diameter := e.tr.DecodeHold(h)
		markers[i] = Marker{Center: center, Diameter: diameter, Color: h.Color}
	}
	return markers
}

// screenToContainer removes the pan offset and zoom from a raw pointer
// position, yielding unzoomed container coordinates.
func (e *Editor) screenToContainer(p geometry.Point2D) geometry.Point2D {
	return p.Sub(e.offset).Scale(1 / e.scale)
}

// HitTest returns the index of the first hold whose padded circular target
// contains the container-space point, or -1. Iteration order decides ties;
// there is no z-order.
func (e *Editor) HitTest(p geometry.Point2D) int {
	for i, h := range e.climb.Holds {
		center, diameter := e.tr.DecodeHold(h)
		if p.Distance(center) < diameter/2+hitPadding {
			return i
		}
	}
	return -1
}

// PointerDown begins a gesture at a raw on-screen position. If a hold is
// under the pointer it becomes the drag candidate and the active hold; its
// index is returned, or -1 when the press landed on empty space (the view
// layer uses that to pan instead).
func (e *Editor) PointerDown(p geometry.Point2D) int {
	e.pressed = true
	e.dragStart = p
	e.dragIndex = e.HitTest(e.screenToContainer(p))
	if e.dragIndex >= 0 {
		e.active = e.dragIndex
		e.dragOrigin, _ = e.tr.DecodeHold(e.climb.Holds[e.dragIndex])
	}
	return e.dragIndex
}

// PointerMove continues a gesture. When a hold was hit at press, it tracks
// the pointer with zoom compensation: finger travel is divided by the
// current scale so a drag under 2x zoom moves the hold half as far in
// container space. The hold is re-encoded on every move so rendering never
// lags the finger.
func (e *Editor) PointerMove(p geometry.Point2D) error {
	if !e.pressed || e.dragIndex < 0 {
		return nil
	}
	delta := p.Sub(e.dragStart).Scale(1 / e.scale)
	center := e.dragOrigin.Add(delta)

	h := e.climb.Holds[e.dragIndex]
	h.RelX, h.RelY, _ = e.tr.Encode(center, 0)
	return e.climb.UpdateHold(e.dragIndex, h)
}

// PointerUp ends a gesture. Gestures whose net on-screen displacement stays
// under the tap threshold are taps: a tap on a hold advances its color
// through red, green, blue, purple, and a fifth tap removes it; a tap on
// empty space places a new hold with the current defaults. Larger
// displacements are drag-ends and the hold stays where PointerMove left it.
// changed reports whether the gesture mutated the climb.
func (e *Editor) PointerUp(p geometry.Point2D) (changed bool, err error) {
	if !e.pressed {
		return false, nil
	}
	e.pressed = false
	idx := e.dragIndex
	e.dragIndex = -1

	if p.Distance(e.dragStart) >= tapThreshold {
		// Drag end: a hit hold has already been moved by PointerMove.
		return idx >= 0, nil
	}

	if idx >= 0 {
		// Sub-threshold jitter may have nudged the hold via PointerMove;
		// snap it back to where it was at press before cycling.
		h := e.climb.Holds[idx]
		h.RelX, h.RelY, _ = e.tr.Encode(e.dragOrigin, 0)
		if err := e.climb.UpdateHold(idx, h); err != nil {
			return false, err
		}
		return true, e.cycleHold(idx)
	}

	center := e.screenToContainer(p)
	hold := e.tr.EncodeHold(center, e.defaultSize, e.defaultColor)
	if err := e.climb.AddHold(hold); err != nil {
		return false, err
	}
	e.active = len(e.climb.Holds) - 1
	return true, nil
}

// cycleHold advances a hold's color, removing the hold when the cycle is
// exhausted.
func (e *Editor) cycleHold(i int) error {
	h := e.climb.Holds[i]
	next, ok := h.Color.Next()
	if !ok {
		if err := e.climb.RemoveHold(i); err != nil {
			return err
		}
		e.active = -1
		return nil
	}
	h.Color = next
	return e.climb.UpdateHold(i, h)
}
