// Package logbook derives views over logged ascents: grade-range filtering,
// time-gap session segmentation, and summary statistics.
package logbook

import (
	"homewall/internal/wall"
	"homewall/pkg/colorutil"
)

// GradeRange filters climbs by difficulty. An empty bound is unbounded on
// that side. Climbs with no difficulty are excluded whenever either bound is
// active.
type GradeRange struct {
	Min string
	Max string
}

// IsActive reports whether the range constrains anything.
func (r GradeRange) IsActive() bool {
	return r.Min != "" || r.Max != ""
}

// CompareGrades orders two V-scale grade strings lexicographically. This is
// the comparison the shipped app uses; note that it misorders two-digit
// grades ("V10" sorts before "V2"). CompareGradesNumeric has the corrected
// ordering for callers that want it.
func CompareGrades(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareGradesNumeric orders grades by their parsed numeric suffix, so
// "V2" < "V10". Unparseable grades sort first.
func CompareGradesNumeric(a, b string) int {
	na, nb := colorutil.GradeNumber(a), colorutil.GradeNumber(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

// Apply returns the climbs whose difficulty falls inside the range,
// inclusive. With no active bound every climb passes, graded or not.
func (r GradeRange) Apply(climbs []*wall.Climb) []*wall.Climb {
	if !r.IsActive() {
		return climbs
	}
	out := make([]*wall.Climb, 0, len(climbs))
	for _, c := range climbs {
		if c.Difficulty == "" {
			continue
		}
		if r.Min != "" && CompareGrades(c.Difficulty, r.Min) < 0 {
			continue
		}
		if r.Max != "" && CompareGrades(c.Difficulty, r.Max) > 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}
