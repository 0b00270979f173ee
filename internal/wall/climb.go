package wall

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrEstablished is returned by hold mutations on an established climb.
var ErrEstablished = errors.New("climb is established; holds are frozen")

// gradePattern matches V-scale difficulty strings ("V0".."V15"...).
var gradePattern = regexp.MustCompile(`^V[0-9]+$`)

// Climb is a named route: an ordered subset of marked holds on a wall.
// A climb starts as a draft; establishing it is a one-way transition that
// freezes the hold list. Tick dates are append-only and record successful
// ascents; clearing them wholesale is the only other permitted mutation.
type Climb struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Holds        []Hold      `json:"holds"`
	Created      time.Time   `json:"created"`
	Difficulty   string      `json:"difficulty,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	MatchAllowed bool        `json:"match_allowed"`
	TickDates    []time.Time `json:"tick_dates,omitempty"`
	Established  bool        `json:"established"`
	Rating       int         `json:"rating,omitempty"`
	BetaVideos   []BetaVideo `json:"beta_videos,omitempty"`

	// Pre-list blobs stored a single beta video URL. Migrated into
	// BetaVideos at load time by the store; never written back.
	LegacyBetaURL string `json:"beta_video_url,omitempty"`
}

func newClimb(name string) *Climb {
	return &Climb{
		ID:           uuid.NewString(),
		Name:         name,
		Holds:        []Hold{},
		Created:      time.Now(),
		MatchAllowed: true,
	}
}

// IsTicked reports whether at least one ascent has been logged.
func (c *Climb) IsTicked() bool {
	return len(c.TickDates) > 0
}

// SendCount returns the number of logged ascents.
func (c *Climb) SendCount() int {
	return len(c.TickDates)
}

// LastTick returns the most recent tick date. ok is false when the climb has
// never been ticked.
func (c *Climb) LastTick() (t time.Time, ok bool) {
	for _, d := range c.TickDates {
		if d.After(t) {
			t = d
		}
	}
	return t, len(c.TickDates) > 0
}

// AddHold appends a hold. Rejected once the climb is established.
func (c *Climb) AddHold(h Hold) error {
	if c.Established {
		return ErrEstablished
	}
	c.Holds = append(c.Holds, h)
	return nil
}

// UpdateHold replaces the hold at index i.
func (c *Climb) UpdateHold(i int, h Hold) error {
	if c.Established {
		return ErrEstablished
	}
	if i < 0 || i >= len(c.Holds) {
		return fmt.Errorf("update hold: index %d out of range", i)
	}
	c.Holds[i] = h
	return nil
}

// RemoveHold deletes the hold at index i.
func (c *Climb) RemoveHold(i int) error {
	if c.Established {
		return ErrEstablished
	}
	if i < 0 || i >= len(c.Holds) {
		return fmt.Errorf("remove hold: index %d out of range", i)
	}
	c.Holds = append(c.Holds[:i], c.Holds[i+1:]...)
	return nil
}

// Establish transitions the climb from draft to established. The transition
// is one-way and requires a nonempty name and at least one hold.
func (c *Climb) Establish() error {
	if c.Established {
		return nil
	}
	if c.Name == "" {
		return errors.New("establish: climb needs a name")
	}
	if len(c.Holds) == 0 {
		return errors.New("establish: climb needs at least one hold")
	}
	c.Established = true
	return nil
}

// Tick appends an ascent at the given time. Tick dates are never reordered
// or spliced.
func (c *Climb) Tick(at time.Time) {
	c.TickDates = append(c.TickDates, at)
}

// SetDifficulty records a V-scale grade. The grade may be set or overwritten
// by any tick or establish flow.
func (c *Climb) SetDifficulty(grade string) error {
	if !gradePattern.MatchString(grade) {
		return fmt.Errorf("difficulty %q does not match V-scale pattern", grade)
	}
	c.Difficulty = grade
	return nil
}

// SetRating records a quality rating between 1 and 4.
func (c *Climb) SetRating(rating int) error {
	if rating < 1 || rating > 4 {
		return fmt.Errorf("rating %d out of range [1,4]", rating)
	}
	c.Rating = rating
	return nil
}

// ClearTicks wipes all logged ascents along with the difficulty and rating
// they justified. This fully reverses any sequence of Tick/SetDifficulty/
// SetRating calls.
func (c *Climb) ClearTicks() {
	c.TickDates = nil
	c.Difficulty = ""
	c.Rating = 0
}

// AddBetaVideo appends a beta video record.
func (c *Climb) AddBetaVideo(v BetaVideo) {
	c.BetaVideos = append(c.BetaVideos, v)
}

// RemoveBetaVideo removes the beta video with the given id and deletes its
// backing file best-effort through remover.
func (c *Climb) RemoveBetaVideo(id string, remover FileRemover) error {
	for i, bv := range c.BetaVideos {
		if bv.ID != id {
			continue
		}
		removeVideoFile(remover, bv.FilePath)
		c.BetaVideos = append(c.BetaVideos[:i], c.BetaVideos[i+1:]...)
		return nil
	}
	return fmt.Errorf("remove beta video: no video with id %s", id)
}
