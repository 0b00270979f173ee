package app

import (
	"path/filepath"
	"testing"
	"time"

	"homewall/internal/store"
	"homewall/internal/wall"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemover struct {
	removed []string
}

func (f *fakeRemover) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func newTestState(t *testing.T) (*State, *fakeRemover) {
	t.Helper()
	remover := &fakeRemover{}
	s := NewState(store.New(filepath.Join(t.TempDir(), "walls.json")), remover)
	require.NoError(t, s.Load())
	return s, remover
}

func TestMutationsPersistAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walls.json")

	s := NewState(store.New(path), nil)
	require.NoError(t, s.Load())

	w := s.AddWall("Garage", []byte{1, 2, 3})
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)
	require.NoError(t, c.AddHold(wall.Hold{RelX: 0.5, RelY: 0.5, Size: 0.05}))
	s.HoldsChanged(c)

	// Fresh state from the same path sees everything.
	s2 := NewState(store.New(path), nil)
	require.NoError(t, s2.Load())
	w2 := s2.Collection().WallByID(w.ID)
	require.NotNil(t, w2)
	c2 := w2.ClimbByID(c.ID)
	require.NotNil(t, c2)
	assert.Len(t, c2.Holds, 1)
	assert.False(t, s2.Modified)
}

func TestEstablishClimbThroughState(t *testing.T) {
	s, _ := newTestState(t)
	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)

	// Draft with no holds cannot establish.
	assert.Error(t, s.EstablishClimb(c.ID))

	require.NoError(t, c.AddHold(wall.Hold{}))
	require.NoError(t, s.EstablishClimb(c.ID))
	assert.True(t, c.Established)

	assert.Error(t, s.EstablishClimb("nope"))
}

func TestTickClimbRecordsGradeAndRating(t *testing.T) {
	s, _ := newTestState(t)
	fixed := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)

	require.NoError(t, s.TickClimb(c.ID, "V4", 3))
	require.Len(t, c.TickDates, 1)
	assert.Equal(t, fixed, c.TickDates[0])
	assert.Equal(t, "V4", c.Difficulty)
	assert.Equal(t, 3, c.Rating)

	// Grade and rating are optional on later ticks.
	require.NoError(t, s.TickClimb(c.ID, "", 0))
	assert.Len(t, c.TickDates, 2)
	assert.Equal(t, "V4", c.Difficulty)
}

func TestTickClimbRejectionLeavesNoTick(t *testing.T) {
	s, _ := newTestState(t)
	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)
	require.NoError(t, s.TickClimb(c.ID, "V4", 3))

	// Invalid grade: no tick appended, nothing changed.
	assert.Error(t, s.TickClimb(c.ID, "hard", 0))
	assert.Len(t, c.TickDates, 1)
	assert.Equal(t, "V4", c.Difficulty)

	// Invalid rating: the grade it arrived with rolls back too.
	assert.Error(t, s.TickClimb(c.ID, "V6", 9))
	assert.Len(t, c.TickDates, 1)
	assert.Equal(t, "V4", c.Difficulty)
	assert.Equal(t, 3, c.Rating)
}

func TestClearTicksThroughState(t *testing.T) {
	s, _ := newTestState(t)
	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)
	require.NoError(t, s.TickClimb(c.ID, "V4", 3))

	require.NoError(t, s.ClearTicks(c.ID))
	assert.Empty(t, c.TickDates)
	assert.Empty(t, c.Difficulty)
	assert.Zero(t, c.Rating)
}

func TestDeleteClimbCascadesVideoFiles(t *testing.T) {
	s, remover := newTestState(t)
	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddBetaVideo(c.ID, wall.BetaVideo{ID: "v1", FilePath: "/media/v1.mp4"}))

	require.NoError(t, s.DeleteClimb(w.ID, c.ID))
	assert.Empty(t, w.Climbs)
	assert.Equal(t, []string{"/media/v1.mp4"}, remover.removed)
}

func TestEventsFireOnMutation(t *testing.T) {
	s, _ := newTestState(t)

	var events []EventType
	for _, ev := range []EventType{EventWallsChanged, EventClimbsChanged, EventTicked, EventCollectionSaved} {
		ev := ev
		s.On(ev, func(interface{}) { events = append(events, ev) })
	}

	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)
	require.NoError(t, s.TickClimb(c.ID, "", 0))

	assert.Contains(t, events, EventWallsChanged)
	assert.Contains(t, events, EventClimbsChanged)
	assert.Contains(t, events, EventTicked)
	assert.Contains(t, events, EventCollectionSaved)
}

func TestRemoveBetaVideoThroughState(t *testing.T) {
	s, remover := newTestState(t)
	w := s.AddWall("Garage", nil)
	c, err := s.NewClimb(w.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddBetaVideo(c.ID, wall.BetaVideo{ID: "v1", FilePath: "/media/v1.mp4"}))

	require.NoError(t, s.RemoveBetaVideo(c.ID, "v1"))
	assert.Empty(t, c.BetaVideos)
	assert.Equal(t, []string{"/media/v1.mp4"}, remover.removed)

	assert.Error(t, s.RemoveBetaVideo(c.ID, "v1"))
	assert.Error(t, s.RemoveBetaVideo("nope", "v1"))
}

func TestAddPlaylistPersists(t *testing.T) {
	s, _ := newTestState(t)
	p := s.AddPlaylist("Projects")
	assert.NotEmpty(t, p.ID)
	require.Len(t, s.Collection().Playlists, 1)
}
