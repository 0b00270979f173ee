// Package editor provides the hold geometry engine: the mapping between
// pointer input on a zoomed, panned, aspect-fit wall photo and the
// resolution-independent hold coordinates that get persisted, plus the
// tap/drag protocol for placing and editing holds.
package editor

import (
	"homewall/internal/wall"
	"homewall/pkg/colorutil"
	"homewall/pkg/geometry"
)

// Transform converts between container-space positions and normalized hold
// coordinates for one photo displayed aspect-fit in one container.
//
// Both sizes must be strictly positive; degenerate dimensions produce
// NaN/Inf results and are the caller's contract violation, not a handled
// error.
type Transform struct {
	Image     geometry.Size // natural pixel size of the photo
	Container geometry.Size // unzoomed view size
}

// NewTransform creates a transform for the given image and container sizes.
func NewTransform(image, container geometry.Size) Transform {
	return Transform{Image: image, Container: container}
}

// FitRect returns the rectangle the photo occupies inside the container
// under aspect-fit layout: scaled to show the whole image, centered, with
// letterbox or pillarbox bars on the leftover axis.
func (t Transform) FitRect() geometry.Rect {
	imageAspect := t.Image.Aspect()
	containerAspect := t.Container.Aspect()

	if imageAspect > containerAspect {
		// Image relatively wider: fill container width, letterbox height.
		h := t.Container.Width / imageAspect
		return geometry.Rect{
			X:      0,
			Y:      (t.Container.Height - h) / 2,
			Width:  t.Container.Width,
			Height: h,
		}
	}

	// Image relatively taller (or equal): fill container height, pillarbox width.
	w := t.Container.Height * imageAspect
	return geometry.Rect{
		X:      (t.Container.Width - w) / 2,
		Y:      0,
		Width:  w,
		Height: t.Container.Height,
	}
}

// Encode converts an absolute position and diameter in container space into
// normalized hold coordinates. Position is normalized against the displayed
// image area; the diameter is normalized against the container width, so a
// hold keeps its on-screen footprint across image-aspect changes.
//
// Positions past the image edge encode to values outside [0,1]; they are
// not clamped.
func (t Transform) Encode(center geometry.Point2D, diameter float64) (relX, relY, relSize float64) {
	fit := t.FitRect()
	relX = (center.X - fit.X) / fit.Width
	relY = (center.Y - fit.Y) / fit.Height
	relSize = diameter / t.Container.Width
	return relX, relY, relSize
}

// Decode converts normalized hold coordinates back into an absolute center
// and diameter for this transform's container, which need not be the one
// the hold was encoded against.
func (t Transform) Decode(relX, relY, relSize float64) (center geometry.Point2D, diameter float64) {
	fit := t.FitRect()
	center = geometry.Point2D{
		X: fit.X + relX*fit.Width,
		Y: fit.Y + relY*fit.Height,
	}
	return center, relSize * t.Container.Width
}

// EncodeHold builds a persistable hold from a container-space placement.
func (t Transform) EncodeHold(center geometry.Point2D, diameter float64, color colorutil.HoldColor) wall.Hold {
	relX, relY, relSize := t.Encode(center, diameter)
	return wall.Hold{RelX: relX, RelY: relY, Size: relSize, Color: color}
}

// DecodeHold returns a hold's absolute center and diameter in this
// transform's container space.
func (t Transform) DecodeHold(h wall.Hold) (center geometry.Point2D, diameter float64) {
	return t.Decode(h.RelX, h.RelY, h.Size)
}
