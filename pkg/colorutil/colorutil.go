// Package colorutil provides hold color and grade color utilities for the
// climbing wall application.
package colorutil

import (
	"image/color"
	"strconv"
	"strings"
)

// HoldColor is one of the four categorical hold marker colors.
type HoldColor string

const (
	HoldRed    HoldColor = "red"
	HoldGreen  HoldColor = "green"
	HoldBlue   HoldColor = "blue"
	HoldPurple HoldColor = "purple"
)

// cycle order for repeated taps on a hold. After HoldPurple the hold is
// removed rather than recolored.
var holdCycle = []HoldColor{HoldRed, HoldGreen, HoldBlue, HoldPurple}

// Valid reports whether c is one of the four hold color tokens.
func (c HoldColor) Valid() bool {
	switch c {
	case HoldRed, HoldGreen, HoldBlue, HoldPurple:
		return true
	}
	return false
}

// RGBA returns the display color for a hold marker.
func (c HoldColor) RGBA() color.RGBA {
	switch c {
	case HoldRed:
		return color.RGBA{R: 230, G: 57, B: 70, A: 255}
	case HoldGreen:
		return color.RGBA{R: 42, G: 157, B: 83, A: 255}
	case HoldBlue:
		return color.RGBA{R: 38, G: 110, B: 217, A: 255}
	case HoldPurple:
		return color.RGBA{R: 142, G: 68, B: 173, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

// Next returns the color following c in the tap cycle. ok is false when c is
// the last color in the cycle, meaning the hold should be removed instead.
func (c HoldColor) Next() (next HoldColor, ok bool) {
	for i, hc := range holdCycle {
		if hc == c {
			if i+1 < len(holdCycle) {
				return holdCycle[i+1], true
			}
			return c, false
		}
	}
	// Unknown color restarts the cycle.
	return holdCycle[0], true
}

// GradeNumber parses the numeric part of a V-scale grade string such as "V4".
// Returns -1 if the string is not a V grade.
func GradeNumber(grade string) int {
	if len(grade) < 2 || (grade[0] != 'V' && grade[0] != 'v') {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(grade[1:]))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// gradeGradientMax is the grade treated as the hot end of the gradient.
// Grades above it clamp to the same color.
const gradeGradientMax = 15

// GradeColor maps a V-scale grade string onto a continuous green-to-red
// gradient. V0 is full green, V15 and above full red, intermediate grades
// blend linearly through yellow. Unparseable grades render gray.
func GradeColor(grade string) color.RGBA {
	n := GradeNumber(grade)
	if n < 0 {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	t := float64(n) / gradeGradientMax
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(255 * t),
		G: uint8(255 * (1 - t)),
		B: 0,
		A: 255,
	}
}
