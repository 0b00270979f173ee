// Package store persists the whole wall collection as a single JSON blob.
// Every mutation rewrites the entire file; there is no partial-write
// recovery, so the write goes through a temp file and rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"homewall/internal/wall"
)

// Store reads and writes the collection blob at a fixed path.
type Store struct {
	path string
}

// New creates a store for the given blob path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the collection blob location under the user config
// directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "homewall", "walls.json")
}

// Path returns the blob path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the collection. A missing file is first-run behavior and yields
// an empty collection; a file that exists but fails to parse is surfaced as
// an error rather than silently discarded, since that is the difference
// between a fresh install and data loss.
func (s *Store) Load() (*wall.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return wall.NewCollection(), nil
		}
		return nil, fmt.Errorf("read collection: %w", err)
	}

	var c wall.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", s.path, err)
	}

	migrate(&c)
	return &c, nil
}

// Save writes the collection blob. The write is atomic at whole-file
// granularity: serialize, write a temp file next to the target, rename.
func (s *Store) Save(c *wall.Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize collection: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create collection dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}

// migrate upgrades older blob schemas in place.
func migrate(c *wall.Collection) {
	if c.Version >= wall.CurrentVersion {
		return
	}

	for _, w := range c.Walls {
		for _, climb := range w.Climbs {
			// Version 1 predates the match_allowed field; it defaulted on.
			climb.MatchAllowed = true

			// Version 1 stored at most one beta video as a bare URL.
			if climb.LegacyBetaURL != "" && len(climb.BetaVideos) == 0 {
				climb.AddBetaVideo(wall.BetaVideo{
					ID:       climb.ID + "-beta",
					FilePath: climb.LegacyBetaURL,
					Uploaded: climb.Created,
				})
			}
			climb.LegacyBetaURL = ""
		}
	}

	log.Printf("store: migrated collection from version %d to %d", c.Version, wall.CurrentVersion)
	c.Version = wall.CurrentVersion
}
