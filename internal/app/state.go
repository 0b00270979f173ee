// Package app provides application state, events, and persistence wiring.
package app

import (
	"fmt"
	"log"
	"sync"

	"homewall/internal/store"
	"homewall/internal/wall"
)

// EventType identifies application events.
type EventType int

const (
	EventCollectionLoaded EventType = iota
	EventCollectionSaved
	EventWallsChanged
	EventClimbsChanged
	EventHoldsChanged
	EventTicked
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the live wall collection and coordinates persistence. Every
// mutating operation rewrites the whole collection blob synchronously; a
// failed write is logged and surfaced through the Modified flag staying set,
// never silently dropped.
type State struct {
	mu sync.RWMutex

	store      *store.Store
	collection *wall.Collection
	remover    wall.FileRemover

	Modified bool

	listeners map[EventType][]EventListener
}

// NewState creates application state backed by the given store. remover
// deletes beta video files on cascade; it may be nil in tests.
func NewState(s *store.Store, remover wall.FileRemover) *State {
	return &State{
		store:      s,
		collection: wall.NewCollection(),
		remover:    remover,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Collection returns the live collection. Single-threaded interactive use:
// the UI mutates only through State methods, on the main event loop.
func (s *State) Collection() *wall.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection
}

// Load reads the collection from disk. Missing file means first run.
func (s *State) Load() error {
	c, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.collection = c
	s.Modified = false
	s.mu.Unlock()
	s.Emit(EventCollectionLoaded, c)
	return nil
}

// Save writes the collection to disk.
func (s *State) Save() error {
	s.mu.RLock()
	c := s.collection
	s.mu.RUnlock()

	if err := s.store.Save(c); err != nil {
		return err
	}
	s.mu.Lock()
	s.Modified = false
	s.mu.Unlock()
	s.Emit(EventCollectionSaved, nil)
	return nil
}

// saveAfterMutation persists the collection after a mutating operation.
// Failures are logged and leave Modified set so the next mutation retries.
func (s *State) saveAfterMutation(event EventType, data interface{}) {
	s.mu.Lock()
	s.Modified = true
	s.mu.Unlock()
	s.Emit(EventModified, true)

	if err := s.Save(); err != nil {
		log.Printf("app: save after mutation failed: %v", err)
	}
	s.Emit(event, data)
}

// AddWall creates a wall around a captured photo and persists.
func (s *State) AddWall(name string, image []byte) *wall.Wall {
	w := wall.New(name, image)
	s.mu.Lock()
	s.collection.AddWall(w)
	s.mu.Unlock()
	s.saveAfterMutation(EventWallsChanged, w)
	return w
}

// DeleteWall removes a wall, cascading to its beta video files.
func (s *State) DeleteWall(id string) error {
	s.mu.Lock()
	err := s.collection.DeleteWall(id, s.remover)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.saveAfterMutation(EventWallsChanged, id)
	return nil
}

// NewClimb appends a draft climb to a wall.
func (s *State) NewClimb(wallID string) (*wall.Climb, error) {
	s.mu.Lock()
	w := s.collection.WallByID(wallID)
	if w == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no wall with id %s", wallID)
	}
	c := w.NewClimb()
	s.mu.Unlock()
	s.saveAfterMutation(EventClimbsChanged, c)
	return c, nil
}

// DeleteClimb removes a climb from its wall, cascading to beta video files
// but not into playlists.
func (s *State) DeleteClimb(wallID, climbID string) error {
	s.mu.Lock()
	w := s.collection.WallByID(wallID)
	if w == nil {
		s.mu.Unlock()
		return fmt.Errorf("no wall with id %s", wallID)
	}
	err := w.DeleteClimb(climbID, s.remover)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.saveAfterMutation(EventClimbsChanged, climbID)
	return nil
}

// EstablishClimb transitions a climb from draft to established.
func (s *State) EstablishClimb(climbID string) error {
	s.mu.Lock()
	c := s.collection.ClimbByID(climbID)
	if c == nil {
		s.mu.Unlock()
		return fmt.Errorf("no climb with id %s", climbID)
	}
	err := c.Establish()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.saveAfterMutation(EventClimbsChanged, c)
	return nil
}

// TickClimb logs an ascent. Grade and rating are optional and overwrite any
// previous values when supplied. A rejected grade or rating leaves the climb
// untouched: the tick is only appended once both validate.
func (s *State) TickClimb(climbID, grade string, rating int) error {
	s.mu.Lock()
	c := s.collection.ClimbByID(climbID)
	if c == nil {
		s.mu.Unlock()
		return fmt.Errorf("no climb with id %s", climbID)
	}
	prevDifficulty := c.Difficulty
	if grade != "" {
		if err := c.SetDifficulty(grade); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	if rating != 0 {
		if err := c.SetRating(rating); err != nil {
			c.Difficulty = prevDifficulty
			s.mu.Unlock()
			return err
		}
	}
	c.Tick(now())
	s.mu.Unlock()
	s.saveAfterMutation(EventTicked, c)
	return nil
}

// ClearTicks wipes a climb's logged ascents, difficulty, and rating.
func (s *State) ClearTicks(climbID string) error {
	s.mu.Lock()
	c := s.collection.ClimbByID(climbID)
	if c == nil {
		s.mu.Unlock()
		return fmt.Errorf("no climb with id %s", climbID)
	}
	c.ClearTicks()
	s.mu.Unlock()
	s.saveAfterMutation(EventTicked, c)
	return nil
}

// HoldsChanged persists after the editor mutated a draft climb's holds.
func (s *State) HoldsChanged(c *wall.Climb) {
	s.saveAfterMutation(EventHoldsChanged, c)
}

// AddBetaVideo records an already-stored video file against a climb.
func (s *State) AddBetaVideo(climbID string, v wall.BetaVideo) error {
	s.mu.Lock()
	c := s.collection.ClimbByID(climbID)
	if c == nil {
		s.mu.Unlock()
		return fmt.Errorf("no climb with id %s", climbID)
	}
	c.AddBetaVideo(v)
	s.mu.Unlock()
	s.saveAfterMutation(EventClimbsChanged, c)
	return nil
}

// RemoveBetaVideo removes a beta video record and deletes its file
// best-effort.
func (s *State) RemoveBetaVideo(climbID, videoID string) error {
	s.mu.Lock()
	c := s.collection.ClimbByID(climbID)
	if c == nil {
		s.mu.Unlock()
		return fmt.Errorf("no climb with id %s", climbID)
	}
	err := c.RemoveBetaVideo(videoID, s.remover)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.saveAfterMutation(EventClimbsChanged, c)
	return nil
}

// AddPlaylist creates a playlist and persists.
func (s *State) AddPlaylist(name string) *wall.Playlist {
	p := wall.NewPlaylist(name)
	s.mu.Lock()
	s.collection.AddPlaylist(p)
	s.mu.Unlock()
	s.saveAfterMutation(EventClimbsChanged, p)
	return p
}
