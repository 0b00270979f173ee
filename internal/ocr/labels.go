// Package ocr reads route tape labels from wall photos. Home walls commonly
// mark established routes with taped grade tags ("V4") next to the starting
// holds; scanning them lets the app suggest a grade when a climb is created
// from detected holds.
package ocr

import (
	"fmt"
	"image"
	"regexp"
	"strings"

	"homewall/internal/detect"
	"homewall/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// labelChars restricts recognition to what a grade tag can contain.
const labelChars = "V0123456789"

var gradeToken = regexp.MustCompile(`V[0-9]+`)

// Engine wraps a Tesseract client configured for grade tags.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}

	// Grade tags are not words; dictionary correction only hurts.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetWhitelist(labelChars)

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadRegion performs OCR on a region of an image and returns the first
// V-grade token found, or "".
func (e *Engine) ReadRegion(img gocv.Mat, bounds geometry.RectInt) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("empty image")
	}

	x, y, w, h := bounds.X, bounds.Y, bounds.Width, bounds.Height
	imgH, imgW := img.Rows(), img.Cols()
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+w > imgW {
		w = imgW - x
	}
	if y+h > imgH {
		h = imgH - y
	}
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("invalid region bounds")
	}

	region := img.Region(image.Rect(x, y, x+w, y+h))
	defer region.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, gray)
	if err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	return parseGradeToken(text), nil
}

// parseGradeToken extracts the first V-grade token from raw OCR output.
func parseGradeToken(text string) string {
	return gradeToken.FindString(strings.ToUpper(text))
}

// Suggestion pairs a hold candidate with a grade read from tape near it.
type Suggestion struct {
	Candidate detect.Candidate
	Grade     string
}

// SuggestGrades scans the area around each hold candidate for a taped grade
// label. Candidates with no readable label are omitted.
func (e *Engine) SuggestGrades(srcImg image.Image, candidates []detect.Candidate) ([]Suggestion, error) {
	mat, err := gocv.ImageToMatRGB(srcImg)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	var out []Suggestion
	for _, c := range candidates {
		// Tape sits beside or below the hold; scan a band two radii wide.
		r := int(c.Radius)
		region := geometry.RectInt{
			X:      int(c.Center.X) - 2*r,
			Y:      int(c.Center.Y) - 2*r,
			Width:  4 * r,
			Height: 4 * r,
		}
		grade, err := e.ReadRegion(mat, region)
		if err != nil || grade == "" {
			continue
		}
		out = append(out, Suggestion{Candidate: c, Grade: grade})
	}
	return out, nil
}
