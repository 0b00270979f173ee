// Package wall provides the entity model for photographed climbing walls:
// walls own climbs, climbs own holds and beta videos, playlists reference
// climbs weakly by id.
package wall

import (
	"fmt"
	"time"

	"homewall/pkg/colorutil"

	"github.com/google/uuid"
)

// Hold is a marked grip location on a wall photo. Position is normalized to
// the displayed image content area; size is normalized to the container
// width (not the image width), so a hold keeps its on-screen footprint when
// the image aspect changes. Holds are index-addressed within their climb and
// carry no id of their own.
type Hold struct {
	RelX  float64             `json:"relative_x"`
	RelY  float64             `json:"relative_y"`
	Size  float64             `json:"relative_size"`
	Color colorutil.HoldColor `json:"color"`
}

// BetaVideo is user-submitted footage demonstrating a climb. The video
// content itself lives on disk; only the reference and metadata are stored.
type BetaVideo struct {
	ID       string    `json:"id"`
	FilePath string    `json:"file_path"`
	Uploader string    `json:"uploader"`
	Uploaded time.Time `json:"uploaded"`
	Notes    string    `json:"notes,omitempty"`
}

// NewBetaVideo creates a beta video record for an already-stored file.
func NewBetaVideo(filePath, uploader, notes string) BetaVideo {
	return BetaVideo{
		ID:       uuid.NewString(),
		FilePath: filePath,
		Uploader: uploader,
		Uploaded: time.Now(),
		Notes:    notes,
	}
}

// Wall is a photographed climbing surface and the root container for climbs.
// The photo travels inside the persisted blob as raw bytes.
type Wall struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Image   []byte    `json:"image"`
	Climbs  []*Climb  `json:"climbs"`
	Created time.Time `json:"created"`
}

// New creates a wall around a captured photo.
func New(name string, image []byte) *Wall {
	return &Wall{
		ID:      uuid.NewString(),
		Name:    name,
		Image:   image,
		Climbs:  []*Climb{},
		Created: time.Now(),
	}
}

// NewClimb appends a new draft climb with an auto-generated name and returns it.
func (w *Wall) NewClimb() *Climb {
	c := newClimb(fmt.Sprintf("Climb %d", len(w.Climbs)+1))
	w.Climbs = append(w.Climbs, c)
	return c
}

// ClimbByID returns the climb with the given id, or nil.
func (w *Wall) ClimbByID(id string) *Climb {
	for _, c := range w.Climbs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// UpdateClimb replaces the climb with the same id. The caller supplies the
// full updated entity; there are no partial-patch semantics.
func (w *Wall) UpdateClimb(c *Climb) error {
	for i, existing := range w.Climbs {
		if existing.ID == c.ID {
			w.Climbs[i] = c
			return nil
		}
	}
	return fmt.Errorf("update climb: no climb with id %s", c.ID)
}

// DeleteClimb removes the climb with the given id and deletes its beta video
// files through remover. File deletion is best effort: a failed delete is
// reported to the caller's logger by remover, never rolled back. Playlists
// referencing the id are left alone; dangling entries are filtered at read
// time.
func (w *Wall) DeleteClimb(id string, remover FileRemover) error {
	for i, c := range w.Climbs {
		if c.ID != id {
			continue
		}
		for _, bv := range c.BetaVideos {
			removeVideoFile(remover, bv.FilePath)
		}
		w.Climbs = append(w.Climbs[:i], w.Climbs[i+1:]...)
		return nil
	}
	return fmt.Errorf("delete climb: no climb with id %s", id)
}

// FileRemover deletes a stored media file. Implemented by the media library;
// tests substitute fakes.
type FileRemover interface {
	Remove(path string) error
}

func removeVideoFile(remover FileRemover, path string) {
	if remover == nil || path == "" {
		return
	}
	// Best effort only. The list mutation has already happened or is about
	// to happen regardless of the outcome here.
	_ = remover.Remove(path)
}
