// Package listing enumerates the source images of a batch export.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "webp": true,
}

// Item is one discovered source image.
type Item struct {
	// Path is the full path of the file.
	Path string `json:"path"`

	// Name is the file name shown to the user and used to prefix messages.
	Name string `json:"name"`

	// Ext is the lower-cased extension without the dot.
	Ext string `json:"ext"`
}

// Extension returns the lower-cased extension of name without the dot, or ""
// when name has none. A dotfile such as ".png" has no extension.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSupported reports whether name carries one of the accepted extensions.
func IsSupported(name string) bool {
	return supportedExtensions[Extension(name)]
}

// List returns the supported images directly inside dir, sorted by
// case-insensitive name. Subdirectories are not descended into and entries
// that are not regular files (after following symlinks) are ignored.
func List(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder failed: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !IsSupported(name) {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		items = append(items, Item{
			Path: path,
			Name: name,
			Ext:  Extension(name),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return items, nil
}
