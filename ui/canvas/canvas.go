// Package canvas provides the wall photo canvas with pan, zoom, and hold
// editing gestures.
package canvas

import (
	"image"
	"image/color"

	"homewall/internal/editor"
	"homewall/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const zoomStep = 1.25

// WallCanvas displays a wall photo aspect-fit with the current climb's holds
// stroked on top. Pointer gestures are fed into the hold editor: tap to
// place or recolor, drag to reposition, wheel to zoom, drag on empty space
// to pan while zoomed.
type WallCanvas struct {
	widget.BaseWidget

	photo image.Image
	ed    *editor.Editor

	raster *fynecanvas.Raster

	dragging bool
	panning  bool
	lastDrag geometry.Point2D
	lastSize geometry.Size

	// onHoldsChanged fires after a gesture that mutated the climb, so the
	// application can persist.
	onHoldsChanged func()
}

// NewWallCanvas creates an empty wall canvas.
func NewWallCanvas() *WallCanvas {
	wc := &WallCanvas{}
	wc.raster = fynecanvas.NewRaster(wc.draw)
	wc.raster.ScaleMode = fynecanvas.ImageScalePixels
	wc.ExtendBaseWidget(wc)
	return wc
}

// SetClimb points the canvas at a photo and an editor for one climb.
// Passing nils clears the canvas.
func (wc *WallCanvas) SetClimb(photo image.Image, ed *editor.Editor) {
	wc.photo = photo
	wc.ed = ed
	wc.Refresh()
}

// Editor returns the active hold editor, or nil.
func (wc *WallCanvas) Editor() *editor.Editor {
	return wc.ed
}

// OnHoldsChanged sets the callback fired after a mutating gesture.
func (wc *WallCanvas) OnHoldsChanged(callback func()) {
	wc.onHoldsChanged = callback
}

// Refresh redraws the canvas.
func (wc *WallCanvas) Refresh() {
	wc.raster.Refresh()
	wc.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (wc *WallCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(wc.raster)
}

// Tapped implements fyne.Tappable: a tap is a zero-travel gesture.
func (wc *WallCanvas) Tapped(ev *fyne.PointEvent) {
	if wc.ed == nil {
		return
	}
	p := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	wc.ed.PointerDown(p)
	wc.finishGesture(p)
}

// Dragged implements fyne.Draggable.
func (wc *WallCanvas) Dragged(ev *fyne.DragEvent) {
	if wc.ed == nil {
		return
	}
	pos := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))

	if !wc.dragging {
		wc.dragging = true
		start := geometry.NewPoint2D(
			float64(ev.Position.X-ev.Dragged.DX),
			float64(ev.Position.Y-ev.Dragged.DY),
		)
		hit := wc.ed.PointerDown(start)
		wc.panning = hit < 0 && wc.ed.Scale() > 1
		wc.lastDrag = start
	}

	if wc.panning {
		delta := pos.Sub(wc.lastDrag)
		wc.ed.SetOffset(wc.ed.Offset().Add(delta))
	} else {
		_ = wc.ed.PointerMove(pos)
	}
	wc.lastDrag = pos
	wc.Refresh()
}

// DragEnd implements fyne.Draggable.
func (wc *WallCanvas) DragEnd() {
	if wc.ed == nil || !wc.dragging {
		return
	}
	wc.dragging = false
	if wc.panning {
		wc.panning = false
		return
	}
	wc.finishGesture(wc.lastDrag)
}

// Scrolled implements fyne.Scrollable: the wheel zooms.
func (wc *WallCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if wc.ed == nil {
		return
	}
	if ev.Scrolled.DY > 0 {
		wc.ed.SetScale(wc.ed.Scale() * zoomStep)
	} else if ev.Scrolled.DY < 0 {
		wc.ed.SetScale(wc.ed.Scale() / zoomStep)
	}
	wc.Refresh()
}

func (wc *WallCanvas) finishGesture(p geometry.Point2D) {
	changed, err := wc.ed.PointerUp(p)
	if err != nil {
		fyne.LogError("hold gesture rejected", err)
	}
	if changed && wc.onHoldsChanged != nil {
		wc.onHoldsChanged()
	}
	wc.Refresh()
}

// draw renders the photo and hold markers. The raster size is the container
// size the editor encodes against.
func (wc *WallCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	if wc.photo == nil || wc.ed == nil || w == 0 || h == 0 {
		return out
	}

	size := geometry.NewSize(float64(w), float64(h))
	if size != wc.lastSize {
		wc.lastSize = size
		wc.ed.SetContainerSize(size)
	}

	wc.drawPhoto(out, w, h)
	wc.drawMarkers(out)
	return out
}

// drawPhoto samples the photo per output pixel, inverting the zoom/pan and
// aspect-fit mapping.
func (wc *WallCanvas) drawPhoto(out *image.RGBA, w, h int) {
	fit := wc.ed.Transform().FitRect()
	scale := wc.ed.Scale()
	off := wc.ed.Offset()

	b := wc.photo.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())

	for y := 0; y < h; y++ {
		cy := (float64(y) - off.Y) / scale
		v := (cy - fit.Y) / fit.Height
		if v < 0 || v >= 1 {
			continue
		}
		sy := b.Min.Y + int(v*ih)
		for x := 0; x < w; x++ {
			cx := (float64(x) - off.X) / scale
			u := (cx - fit.X) / fit.Width
			if u < 0 || u >= 1 {
				continue
			}
			sx := b.Min.X + int(u*iw)
			out.Set(x, y, wc.photo.At(sx, sy))
		}
	}
}

// drawMarkers strokes each hold as a circle outline in screen space.
func (wc *WallCanvas) drawMarkers(out *image.RGBA) {
	scale := wc.ed.Scale()
	off := wc.ed.Offset()

	for _, m := range wc.ed.Markers() {
		center := m.Center.Scale(scale).Add(off)
		radius := m.Diameter / 2 * scale
		strokeCircle(out, center, radius, m.Color.RGBA())
	}
}

// strokeCircle draws a circle outline about 3 pixels thick.
func strokeCircle(out *image.RGBA, center geometry.Point2D, radius float64, col color.RGBA) {
	const stroke = 1.5
	bounds := out.Bounds()

	x0 := int(center.X - radius - stroke)
	x1 := int(center.X + radius + stroke)
	y0 := int(center.Y - radius - stroke)
	y1 := int(center.Y + radius + stroke)

	for y := y0; y <= y1; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			d := center.Distance(geometry.NewPoint2D(float64(x), float64(y)))
			if d >= radius-stroke && d <= radius+stroke {
				out.SetRGBA(x, y, col)
			}
		}
	}
}
