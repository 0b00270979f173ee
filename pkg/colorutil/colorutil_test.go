package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFollowsTapCycle(t *testing.T) {
	next, ok := HoldRed.Next()
	assert.True(t, ok)
	assert.Equal(t, HoldGreen, next)

	next, ok = HoldGreen.Next()
	assert.True(t, ok)
	assert.Equal(t, HoldBlue, next)

	next, ok = HoldBlue.Next()
	assert.True(t, ok)
	assert.Equal(t, HoldPurple, next)

	// End of the cycle signals removal.
	_, ok = HoldPurple.Next()
	assert.False(t, ok)
}

func TestNextRestartsForUnknownColor(t *testing.T) {
	next, ok := HoldColor("chartreuse").Next()
	assert.True(t, ok)
	assert.Equal(t, HoldRed, next)
}

func TestCycleTerminates(t *testing.T) {
	// Starting anywhere, repeated taps reach removal within the cycle length.
	for _, start := range []HoldColor{HoldRed, HoldGreen, HoldBlue, HoldPurple} {
		c := start
		steps := 0
		for {
			next, ok := c.Next()
			if !ok {
				break
			}
			c = next
			steps++
			if steps > 4 {
				t.Fatalf("cycle from %s did not terminate", start)
			}
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, HoldRed.Valid())
	assert.True(t, HoldPurple.Valid())
	assert.False(t, HoldColor("").Valid())
	assert.False(t, HoldColor("orange").Valid())
}

func TestGradeNumber(t *testing.T) {
	cases := map[string]int{
		"V0":  0,
		"V4":  4,
		"V15": 15,
		"v7":  7,
		"":    -1,
		"V":   -1,
		"V-1": -1,
		"Vx":  -1,
		"4":   -1,
		"V4+": -1,
	}
	for grade, want := range cases {
		assert.Equal(t, want, GradeNumber(grade), "grade %q", grade)
	}
}

func TestGradeColorGradient(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, GradeColor("V0"))
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, GradeColor("V15"))

	// Above the gradient max clamps to red.
	assert.Equal(t, GradeColor("V15"), GradeColor("V20"))

	// Unparseable grades render gray.
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, GradeColor("slab"))

	// Midrange blends: red and green both nonzero.
	mid := GradeColor("V7")
	assert.NotZero(t, mid.R)
	assert.NotZero(t, mid.G)
}
