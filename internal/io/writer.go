package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avrhm/m3usift/internal/playlist"
	"github.com/avrhm/m3usift/internal/types"
)

// SafeName turns a sanitized category into a filesystem-friendly
// name: whitespace runs become single underscores.
func SafeName(category string) string {
	return strings.Join(strings.Fields(category), "_")
}

// WriteBuckets persists each bucket as an available_<category>.m3u and
// an unavailable_<category>.m3u file under dir. Both files are always
// written, even when one side of the partition is empty, so consumers
// can rely on the pair existing.
func WriteBuckets(dir string, buckets []types.CategoryBucket) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, b := range buckets {
		safe := SafeName(b.Category)

		avail := filepath.Join(dir, fmt.Sprintf("available_%s.m3u", safe))
		if err := os.WriteFile(avail, []byte(playlist.Render(b.Available)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", avail, err)
		}

		unavail := filepath.Join(dir, fmt.Sprintf("unavailable_%s.m3u", safe))
		if err := os.WriteFile(unavail, []byte(playlist.Render(b.Unavailable)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", unavail, err)
		}
	}

	return nil
}
