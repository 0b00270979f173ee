// Package detect proposes hold candidates on a wall photo using a Hough
// circle pipeline. Candidates are suggestions only; the user confirms or
// discards them in the editor.
package detect

import (
	"fmt"
	"image"
	"sort"

	"homewall/pkg/geometry"

	"gocv.io/x/gocv"
)

// Params tunes the circle detection pipeline. Radii are in pixels of the
// source photo.
type Params struct {
	MinRadius int
	MaxRadius int
	MinDist   float64 // minimum distance between detected centers
	HoughDP   float64
	CannyHigh float64 // upper Canny threshold (param1)
	AccumMin  float64 // accumulator threshold (param2); lower finds more circles
	BlurSize  int     // Gaussian kernel edge, must be odd
}

// DefaultParams returns parameters suited to a phone photo of a home wall,
// where holds span roughly 1-5% of the image width.
func DefaultParams(imageWidth int) Params {
	minR := imageWidth / 120
	if minR < 4 {
		minR = 4
	}
	return Params{
		MinRadius: minR,
		MaxRadius: imageWidth / 20,
		MinDist:   float64(imageWidth) / 40,
		HoughDP:   1.5,
		CannyHigh: 120,
		AccumMin:  55,
		BlurSize:  9,
	}
}

// Candidate is a proposed hold location in image pixel coordinates.
type Candidate struct {
	Center geometry.Point2D
	Radius float64
}

// Holds runs circle detection on a wall photo and returns candidates sorted
// top-to-bottom, left-to-right.
func Holds(srcImg image.Image, params Params) ([]Candidate, error) {
	mat, err := imageToMat(srcImg)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	return holdsInMat(mat, params)
}

func holdsInMat(src gocv.Mat, params Params) ([]Candidate, error) {
	if src.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	if params.MinRadius <= 0 || params.MaxRadius <= params.MinRadius {
		return nil, fmt.Errorf("invalid radius range %d-%d", params.MinRadius, params.MaxRadius)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	// Blur suppresses hold texture so the Hough transform sees the outline,
	// not the grip surface.
	blurred := gocv.NewMat()
	defer blurred.Close()
	k := params.BlurSize
	if k%2 == 0 {
		k++
	}
	gocv.GaussianBlur(gray, &blurred, image.Point{X: k, Y: k}, 2, 2, gocv.BorderDefault)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(blurred, &circles, gocv.HoughGradient,
		params.HoughDP, params.MinDist,
		params.CannyHigh, params.AccumMin,
		params.MinRadius, params.MaxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return nil, nil
	}

	candidates := make([]Candidate, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		candidates[i] = Candidate{
			Center: geometry.Point2D{
				X: float64(circles.GetFloatAt(0, i*3)),
				Y: float64(circles.GetFloatAt(0, i*3+1)),
			},
			Radius: float64(circles.GetFloatAt(0, i*3+2)),
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Center.Y != candidates[j].Center.Y {
			return candidates[i].Center.Y < candidates[j].Center.Y
		}
		return candidates[i].Center.X < candidates[j].Center.X
	})
	return candidates, nil
}

// imageToMat converts a Go image to an 8-bit BGR Mat.
func imageToMat(srcImg image.Image) (gocv.Mat, error) {
	bounds := srcImg.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := srcImg.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat, nil
}
