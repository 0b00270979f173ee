package logbook

import (
	"homewall/internal/wall"
	"homewall/pkg/colorutil"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a logbook for display at the top of the history view.
type Summary struct {
	TotalSends      int
	SessionCount    int
	Hardest         string  // hardest graded send
	MeanGrade       float64 // mean numeric grade over graded sends
	GradeStdDev     float64
	SendsPerSession float64
}

// Summarize computes logbook statistics across the given climbs.
func Summarize(climbs []*wall.Climb) Summary {
	sessions := Segment(climbs)

	var s Summary
	s.SessionCount = len(sessions)

	var grades []float64
	hardest := -1
	for _, c := range climbs {
		s.TotalSends += c.SendCount()
		if !c.IsTicked() {
			continue
		}
		n := colorutil.GradeNumber(c.Difficulty)
		if n < 0 {
			continue
		}
		// Each send of a graded climb counts toward the distribution.
		for i := 0; i < c.SendCount(); i++ {
			grades = append(grades, float64(n))
		}
		if n > hardest {
			hardest = n
			s.Hardest = c.Difficulty
		}
	}

	if len(grades) > 0 {
		s.MeanGrade = stat.Mean(grades, nil)
		s.GradeStdDev = stat.StdDev(grades, nil)
	}
	if s.SessionCount > 0 {
		s.SendsPerSession = float64(s.TotalSends) / float64(s.SessionCount)
	}
	return s
}
