package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeKeepsRawBytes(t *testing.T) {
	raw := pngBytes(t, 40, 30)

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, p.Raw)
	assert.Equal(t, 40.0, p.Size().Width)
	assert.Equal(t, 30.0, p.Size().Height)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 10, 10), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.Size().Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestThumbnailScalesLongestEdge(t *testing.T) {
	p, err := Decode(pngBytes(t, 400, 100))
	require.NoError(t, err)

	thumb := p.Thumbnail(200)
	b := thumb.Bounds()
	assert.Equal(t, 200, b.Dx())
	assert.Equal(t, 50, b.Dy())
}

func TestThumbnailSmallImageUntouched(t *testing.T) {
	p, err := Decode(pngBytes(t, 50, 50))
	require.NoError(t, err)

	assert.Equal(t, p.Image, p.Thumbnail(200))
}
