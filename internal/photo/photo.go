// Package photo loads wall photos and reports their natural pixel size.
// The rest of the application never crops or re-derives the photo; it is
// displayed aspect-fit as captured.
package photo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"homewall/pkg/geometry"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Photo is a decoded wall photo plus the raw bytes it came from. The raw
// bytes travel inside the persisted collection blob.
type Photo struct {
	Image image.Image
	Raw   []byte
}

// Decode parses image bytes (JPEG, PNG, or TIFF).
func Decode(raw []byte) (*Photo, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return &Photo{Image: img, Raw: raw}, nil
}

// Load reads and decodes a photo file.
func Load(path string) (*Photo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo %s: %w", path, err)
	}
	return Decode(raw)
}

// Size returns the photo's natural pixel dimensions.
func (p *Photo) Size() geometry.Size {
	b := p.Image.Bounds()
	return geometry.NewSize(float64(b.Dx()), float64(b.Dy()))
}

// Thumbnail scales the photo down so its longest edge is at most maxDim
// pixels, preserving aspect ratio. Photos already small enough are returned
// as-is.
func (p *Photo) Thumbnail(maxDim int) image.Image {
	b := p.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return p.Image
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), p.Image, b, xdraw.Src, nil)
	return dst
}
