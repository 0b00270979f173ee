// Package media stores beta video files on disk. The entity model only
// keeps file references; this package owns the files themselves.
package media

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Library is a directory of stored video files, named by record id.
type Library struct {
	dir string
}

// NewLibrary creates a library rooted at dir, creating it if necessary.
func NewLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Library{dir: dir}, nil
}

// DefaultDir returns the media directory under the user config directory.
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "homewall", "media")
}

// Import copies a picked video file into the library under the given record
// id, keeping the original extension. Returns the stored path.
func (l *Library) Import(srcPath, id string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open video %s: %w", srcPath, err)
	}
	defer src.Close()

	dstPath := filepath.Join(l.dir, id+filepath.Ext(srcPath))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create video file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("copy video: %w", err)
	}
	return dstPath, nil
}

// Remove deletes a stored video file. Deletion is best effort: failures are
// logged and reported but callers proceed with their record removal either
// way, so a failed delete leaves an orphaned file rather than a broken
// collection.
func (l *Library) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("media: could not delete %s: %v", path, err)
		return err
	}
	return nil
}
