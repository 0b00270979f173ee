package logbook

import (
	"testing"
	"time"

	"homewall/internal/wall"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickedClimb(w *wall.Wall, name, grade string, ticks ...time.Time) *wall.Climb {
	c := w.NewClimb()
	c.Name = name
	if grade != "" {
		if err := c.SetDifficulty(grade); err != nil {
			panic(err)
		}
	}
	for _, at := range ticks {
		c.Tick(at)
	}
	return c
}

func TestSegmentSplitsOnGapFromSessionStart(t *testing.T) {
	w := wall.New("Garage", nil)
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	// Ticks at t, t+3h, t+5h: the second is within 4h of the session
	// start, the third is 5h past it and opens a new session even though
	// it is only 2h after the previous tick.
	tickedClimb(w, "A", "V2", base, base.Add(3*time.Hour), base.Add(5*time.Hour))

	sessions := Segment(w.Climbs)
	require.Len(t, sessions, 2)

	// Most recent session first.
	require.Len(t, sessions[0].Ticks, 1)
	assert.Equal(t, base.Add(5*time.Hour), sessions[0].Start())
	require.Len(t, sessions[1].Ticks, 2)
	assert.Equal(t, base, sessions[1].Start())
	assert.Equal(t, base.Add(3*time.Hour), sessions[1].End())
}

func TestSegmentAnchorsAtSessionStart(t *testing.T) {
	// Consecutive 3h gaps do not chain a session open indefinitely: each
	// session spans at most the gap from its own first tick.
	w := wall.New("Garage", nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tickedClimb(w, "A", "", base, base.Add(3*time.Hour), base.Add(6*time.Hour), base.Add(9*time.Hour))

	sessions := Segment(w.Climbs)
	require.Len(t, sessions, 2)
	assert.Equal(t, base.Add(6*time.Hour), sessions[0].Start())
	assert.Len(t, sessions[0].Ticks, 2)
	assert.Len(t, sessions[1].Ticks, 2)
}

func TestSegmentExactGapStaysTogether(t *testing.T) {
	w := wall.New("Garage", nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tickedClimb(w, "A", "", base, base.Add(SessionGap))

	sessions := Segment(w.Climbs)
	require.Len(t, sessions, 1)

	tickedClimb(w, "B", "", base.Add(2*SessionGap+time.Nanosecond))
	assert.Len(t, Segment(w.Climbs), 2)
}

func TestSegmentEmpty(t *testing.T) {
	w := wall.New("Garage", nil)
	w.NewClimb()
	assert.Nil(t, Segment(w.Climbs))
}

func TestCollectTicksInterleavesClimbs(t *testing.T) {
	w := wall.New("Garage", nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tickedClimb(w, "A", "V2", base.Add(2*time.Hour), base)
	tickedClimb(w, "B", "V4", base.Add(time.Hour))

	ticks := CollectTicks(w.Climbs)
	require.Len(t, ticks, 3)
	assert.Equal(t, []string{"A", "B", "A"}, []string{
		ticks[0].ClimbName, ticks[1].ClimbName, ticks[2].ClimbName,
	})
	assert.True(t, ticks[0].At.Before(ticks[1].At))
	assert.True(t, ticks[1].At.Before(ticks[2].At))
}

func TestGradeRangeInactivePassesEverything(t *testing.T) {
	w := wall.New("Garage", nil)
	graded := tickedClimb(w, "A", "V3")
	ungraded := tickedClimb(w, "B", "")

	out := GradeRange{}.Apply(w.Climbs)
	require.Len(t, out, 2)
	assert.Contains(t, out, graded)
	assert.Contains(t, out, ungraded)
}

func TestGradeRangeExcludesUngraded(t *testing.T) {
	w := wall.New("Garage", nil)
	tickedClimb(w, "A", "V3")
	tickedClimb(w, "B", "")

	out := GradeRange{Min: "V1"}.Apply(w.Climbs)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Name)
}

func TestGradeRangeBoundsInclusive(t *testing.T) {
	w := wall.New("Garage", nil)
	tickedClimb(w, "low", "V1")
	tickedClimb(w, "mid", "V3")
	tickedClimb(w, "high", "V5")

	out := GradeRange{Min: "V1", Max: "V3"}.Apply(w.Climbs)
	require.Len(t, out, 2)
	assert.Equal(t, "low", out[0].Name)
	assert.Equal(t, "mid", out[1].Name)
}

func TestCompareGradesIsLexicographic(t *testing.T) {
	// The shipped ordering: "V10" sorts before "V2".
	assert.Equal(t, -1, CompareGrades("V10", "V2"))
	assert.Equal(t, 0, CompareGrades("V4", "V4"))
	assert.Equal(t, 1, CompareGrades("V5", "V4"))
}

func TestCompareGradesNumeric(t *testing.T) {
	assert.Equal(t, 1, CompareGradesNumeric("V10", "V2"))
	assert.Equal(t, -1, CompareGradesNumeric("V2", "V10"))
	assert.Equal(t, 0, CompareGradesNumeric("V4", "V4"))
	// Unparseable sorts first.
	assert.Equal(t, -1, CompareGradesNumeric("", "V0"))
}

func TestSummarize(t *testing.T) {
	w := wall.New("Garage", nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Two sessions: two sends at base, one the next day.
	tickedClimb(w, "A", "V2", base, base.Add(time.Hour))
	tickedClimb(w, "B", "V6", base.Add(26*time.Hour))
	tickedClimb(w, "ungraded", "", base.Add(30*time.Minute))

	s := Summarize(w.Climbs)
	assert.Equal(t, 4, s.TotalSends)
	assert.Equal(t, 2, s.SessionCount)
	assert.Equal(t, "V6", s.Hardest)
	assert.InDelta(t, 2.0, s.SendsPerSession, 1e-9)
	// Graded sends: V2, V2, V6.
	assert.InDelta(t, 10.0/3.0, s.MeanGrade, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalSends)
	assert.Zero(t, s.SessionCount)
	assert.Empty(t, s.Hardest)
	assert.Zero(t, s.SendsPerSession)
}
