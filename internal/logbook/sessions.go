package logbook

import (
	"sort"
	"time"

	"homewall/internal/wall"
)

// SessionGap is how long a session stays open after its first tick. A tick
// later than this past the session start opens a new session.
const SessionGap = 4 * time.Hour

// Tick is one logged ascent, flattened out of its climb for segmentation.
type Tick struct {
	ClimbID    string
	ClimbName  string
	Difficulty string
	At         time.Time
}

// Session is a run of ticks all within SessionGap of the session's first
// tick.
type Session struct {
	Ticks []Tick
}

// Start returns the first tick time of the session.
func (s Session) Start() time.Time {
	if len(s.Ticks) == 0 {
		return time.Time{}
	}
	return s.Ticks[0].At
}

// End returns the last tick time of the session.
func (s Session) End() time.Time {
	if len(s.Ticks) == 0 {
		return time.Time{}
	}
	return s.Ticks[len(s.Ticks)-1].At
}

// CollectTicks flattens every tick of every climb into a single slice,
// sorted by tick time ascending.
func CollectTicks(climbs []*wall.Climb) []Tick {
	var ticks []Tick
	for _, c := range climbs {
		for _, at := range c.TickDates {
			ticks = append(ticks, Tick{
				ClimbID:    c.ID,
				ClimbName:  c.Name,
				Difficulty: c.Difficulty,
				At:         at,
			})
		}
	}
	sort.Slice(ticks, func(i, j int) bool {
		return ticks[i].At.Before(ticks[j].At)
	})
	return ticks
}

// Segment clusters climbs' ticks into sessions: a new session starts
// whenever a tick falls more than SessionGap after the current session's
// first tick. The gap anchors at the session start, not the previous tick,
// so a long session cannot creep open indefinitely. Sessions are returned
// most recent first; ticks within each session stay in ascending time order.
func Segment(climbs []*wall.Climb) []Session {
	ticks := CollectTicks(climbs)
	if len(ticks) == 0 {
		return nil
	}

	sessions := []Session{{Ticks: []Tick{ticks[0]}}}
	for _, t := range ticks[1:] {
		last := &sessions[len(sessions)-1]
		if t.At.Sub(last.Start()) > SessionGap {
			sessions = append(sessions, Session{Ticks: []Tick{t}})
			continue
		}
		last.Ticks = append(last.Ticks, t)
	}

	// Most recent session first.
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions
}
