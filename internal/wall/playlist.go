package wall

import (
	"github.com/google/uuid"
)

// Playlist is a named set of climb ids. References are weak: deleting a
// climb does not clean up playlists, so resolution filters out ids that no
// longer exist anywhere in the collection.
type Playlist struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ClimbIDs []string `json:"climb_ids"`
}

// NewPlaylist creates an empty playlist.
func NewPlaylist(name string) *Playlist {
	return &Playlist{
		ID:       uuid.NewString(),
		Name:     name,
		ClimbIDs: []string{},
	}
}

// Contains reports whether the playlist references the given climb id.
func (p *Playlist) Contains(climbID string) bool {
	for _, id := range p.ClimbIDs {
		if id == climbID {
			return true
		}
	}
	return false
}

// Add appends a climb id if not already present.
func (p *Playlist) Add(climbID string) {
	if !p.Contains(climbID) {
		p.ClimbIDs = append(p.ClimbIDs, climbID)
	}
}

// Remove drops a climb id from the playlist.
func (p *Playlist) Remove(climbID string) {
	for i, id := range p.ClimbIDs {
		if id == climbID {
			p.ClimbIDs = append(p.ClimbIDs[:i], p.ClimbIDs[i+1:]...)
			return
		}
	}
}

// Resolve returns the climbs the playlist references, in playlist order,
// skipping ids that dangle. Dangling entries stay in ClimbIDs; they are
// tolerated, not eagerly cleaned.
func (p *Playlist) Resolve(c *Collection) []*Climb {
	climbs := make([]*Climb, 0, len(p.ClimbIDs))
	for _, id := range p.ClimbIDs {
		if climb := c.ClimbByID(id); climb != nil {
			climbs = append(climbs, climb)
		}
	}
	return climbs
}
