// Command holdtest runs hold detection on a wall photo and outputs results.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"homewall/internal/detect"
	"homewall/internal/ocr"

	_ "golang.org/x/image/tiff"
)

func main() {
	imagePath := flag.String("image", "", "Path to wall photo (TIFF, PNG, or JPEG)")
	minRadius := flag.Int("min-radius", 0, "Minimum hold radius in pixels (0 = auto)")
	maxRadius := flag.Int("max-radius", 0, "Maximum hold radius in pixels (0 = auto)")
	scanLabels := flag.Bool("labels", false, "Also OCR taped grade labels near each candidate")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: holdtest -image <path> [-min-radius N] [-max-radius N] [-labels]")
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	params := detect.DefaultParams(bounds.Dx())
	if *minRadius > 0 {
		params.MinRadius = *minRadius
	}
	if *maxRadius > 0 {
		params.MaxRadius = *maxRadius
	}

	fmt.Printf("\nDetection parameters:\n")
	fmt.Printf("  Radius: %d-%d px, min separation %.0f px\n",
		params.MinRadius, params.MaxRadius, params.MinDist)
	fmt.Printf("  Hough: dp=%.1f canny=%.0f accum=%.0f blur=%d\n",
		params.HoughDP, params.CannyHigh, params.AccumMin, params.BlurSize)

	fmt.Printf("\nDetecting holds...\n")
	candidates, err := detect.Holds(img, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nDetected %d hold candidates:\n", len(candidates))
	fmt.Printf("%-6s %10s %10s %8s\n", "#", "X", "Y", "Radius")
	for i, c := range candidates {
		fmt.Printf("%-6d %10.1f %10.1f %8.1f\n", i, c.Center.X, c.Center.Y, c.Radius)
	}

	if *scanLabels {
		runLabelScan(img, candidates)
	}
}

func runLabelScan(img image.Image, candidates []detect.Candidate) {
	engine, err := ocr.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR unavailable: %v\n", err)
		return
	}
	defer engine.Close()

	suggestions, err := engine.SuggestGrades(img, candidates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Label scan failed: %v\n", err)
		return
	}

	fmt.Printf("\nGrade labels read: %d\n", len(suggestions))
	for _, s := range suggestions {
		fmt.Printf("  %s near (%.0f, %.0f)\n", s.Grade, s.Candidate.Center.X, s.Candidate.Center.Y)
	}
}
