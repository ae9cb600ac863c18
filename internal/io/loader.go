package io

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalPlaylist is one playlist file found in an input directory.
type LocalPlaylist struct {
	Name string
	Path string
}

// ListPlaylists finds the .m3u/.m3u8 files in dir for offline runs.
// Results are sorted by name so repeated runs process files in the
// same order.
func ListPlaylists(dir string) ([]LocalPlaylist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var playlists []LocalPlaylist
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".m3u" && ext != ".m3u8" {
			continue
		}
		playlists = append(playlists, LocalPlaylist{
			Name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	if len(playlists) == 0 {
		return nil, fmt.Errorf("no playlist files found in %s", dir)
	}

	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].Name < playlists[j].Name
	})
	return playlists, nil
}

// ReadPlaylist loads one playlist file.
func ReadPlaylist(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	return b, nil
}
