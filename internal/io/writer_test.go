package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avrhm/m3usift/internal/types"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"News", "News"},
		{"News Channels", "News_Channels"},
		{"  padded  name ", "padded_name"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SafeName(tt.input); got != tt.expected {
			t.Errorf("SafeName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestWriteBuckets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	buckets := []types.CategoryBucket{
		{
			Category: "News Channels",
			Available: []types.PlaylistEntry{
				{Category: "News Channels", Name: "A", URL: "http://s/1", Duration: "-1"},
			},
			// Unavailable side intentionally empty.
		},
	}

	if err := WriteBuckets(dir, buckets); err != nil {
		t.Fatalf("write: %v", err)
	}

	avail, err := os.ReadFile(filepath.Join(dir, "available_News_Channels.m3u"))
	if err != nil {
		t.Fatalf("available file: %v", err)
	}
	if !strings.Contains(string(avail), "http://s/1") {
		t.Errorf("available file missing entry:\n%s", avail)
	}

	// The empty side still gets its file, header only.
	unavail, err := os.ReadFile(filepath.Join(dir, "unavailable_News_Channels.m3u"))
	if err != nil {
		t.Fatalf("unavailable file: %v", err)
	}
	if string(unavail) != "#EXTM3U\n" {
		t.Errorf("empty unavailable file = %q, want header only", unavail)
	}
}

func TestListPlaylists(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.m3u", "a.m3u8", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#EXTM3U\n"), 0o644); err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}

	playlists, err := ListPlaylists(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[0].Name != "a" || playlists[1].Name != "b" {
		t.Errorf("order = [%s, %s], want [a, b]", playlists[0].Name, playlists[1].Name)
	}
}

func TestListPlaylistsEmptyDir(t *testing.T) {
	if _, err := ListPlaylists(t.TempDir()); err == nil {
		t.Error("expected an error for a directory without playlists")
	}
}
