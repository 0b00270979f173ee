package wall

import (
	"fmt"
)

// Collection is the root of the persisted entity graph: every wall the user
// has photographed plus their playlists. The whole collection is serialized
// as one blob after each mutation.
type Collection struct {
	Version   int         `json:"version"`
	Walls     []*Wall     `json:"walls"`
	Playlists []*Playlist `json:"playlists,omitempty"`
}

// CurrentVersion is the blob schema version written by this build.
const CurrentVersion = 2

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		Version: CurrentVersion,
		Walls:   []*Wall{},
	}
}

// AddWall appends a wall to the collection.
func (c *Collection) AddWall(w *Wall) {
	c.Walls = append(c.Walls, w)
}

// WallByID returns the wall with the given id, or nil.
func (c *Collection) WallByID(id string) *Wall {
	for _, w := range c.Walls {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// DeleteWall removes a wall and cascades to its climbs' beta video files.
func (c *Collection) DeleteWall(id string, remover FileRemover) error {
	for i, w := range c.Walls {
		if w.ID != id {
			continue
		}
		for _, climb := range w.Climbs {
			for _, bv := range climb.BetaVideos {
				removeVideoFile(remover, bv.FilePath)
			}
		}
		c.Walls = append(c.Walls[:i], c.Walls[i+1:]...)
		return nil
	}
	return fmt.Errorf("delete wall: no wall with id %s", id)
}

// ClimbByID searches every wall for the climb with the given id.
func (c *Collection) ClimbByID(id string) *Climb {
	for _, w := range c.Walls {
		if climb := w.ClimbByID(id); climb != nil {
			return climb
		}
	}
	return nil
}

// AddPlaylist appends a playlist.
func (c *Collection) AddPlaylist(p *Playlist) {
	c.Playlists = append(c.Playlists, p)
}

// PlaylistByID returns the playlist with the given id, or nil.
func (c *Collection) PlaylistByID(id string) *Playlist {
	for _, p := range c.Playlists {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// DeletePlaylist removes a playlist. Climbs are unaffected.
func (c *Collection) DeletePlaylist(id string) error {
	for i, p := range c.Playlists {
		if p.ID == id {
			c.Playlists = append(c.Playlists[:i], c.Playlists[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete playlist: no playlist with id %s", id)
}
