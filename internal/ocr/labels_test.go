package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGradeToken(t *testing.T) {
	cases := map[string]string{
		"V4":           "V4",
		"v12":          "V12",
		"  V7\n":       "V7",
		"V4 V6":        "V4",
		"4V":           "",
		"":             "",
		"noise 9 V":    "",
		"tape says V3": "V3",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseGradeToken(in), "input %q", in)
	}
}
