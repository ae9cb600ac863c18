package aggregate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/avrhm/m3usift/internal/checker"
	"github.com/avrhm/m3usift/internal/playlist"
	"github.com/avrhm/m3usift/internal/sanitize"
	"github.com/avrhm/m3usift/internal/types"
)

func entry(cat, name, url string) types.PlaylistEntry {
	return types.PlaylistEntry{Category: cat, Name: name, URL: url}
}

func result(e types.PlaylistEntry, s types.ProbeStatus) types.ProbeResult {
	return types.ProbeResult{Entry: e, Status: s}
}

func TestPartition(t *testing.T) {
	results := []types.ProbeResult{
		result(entry("News", "A", "http://s/1"), types.StatusAvailable),
		result(entry("Sports", "B", "http://s/2"), types.StatusUnavailable),
		result(entry("News", "C", "http://s/3"), types.StatusUnavailable),
		result(entry("News", "D", "http://s/4"), types.StatusAvailable),
		result(entry("Sports", "E", "http://s/5"), types.StatusError),
	}

	buckets := Partition(results)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	// First-seen category order.
	if buckets[0].Category != "News" || buckets[1].Category != "Sports" {
		t.Fatalf("bucket order = [%s, %s], want [News, Sports]", buckets[0].Category, buckets[1].Category)
	}

	news := buckets[0]
	if len(news.Available) != 2 || news.Available[0].Name != "A" || news.Available[1].Name != "D" {
		t.Errorf("News available = %v, want [A D] in input order", names(news.Available))
	}
	if len(news.Unavailable) != 1 || news.Unavailable[0].Name != "C" {
		t.Errorf("News unavailable = %v, want [C]", names(news.Unavailable))
	}

	// Errored entries land on the unavailable side, never dropped.
	sports := buckets[1]
	if len(sports.Unavailable) != 2 || sports.Unavailable[0].Name != "B" || sports.Unavailable[1].Name != "E" {
		t.Errorf("Sports unavailable = %v, want [B E]", names(sports.Unavailable))
	}

	if err := Verify(results, buckets); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestVerifyDetectsLoss(t *testing.T) {
	results := []types.ProbeResult{
		result(entry("News", "A", "http://s/1"), types.StatusAvailable),
	}
	if err := Verify(results, nil); err == nil {
		t.Error("expected verify to fail on a lossy partition")
	}
}

func names(entries []types.PlaylistEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// End to end over the real parser, sanitizer and orchestrator with a
// canned prober.
func TestPipeline(t *testing.T) {
	input := `#EXTM3U
#EXTINF:-1 group-title="News",BBC&nbsp;One
http://ok.example
#EXTINF:-1 group-title="News",Dead Ch
http://dead.example
`

	p := playlist.NewParser(sanitize.New(""), "")
	parsed, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	probe := checker.ProbeFunc(func(ctx context.Context, url string) (types.ProbeStatus, string, time.Duration) {
		if url == "http://ok.example" {
			return types.StatusAvailable, "", time.Millisecond
		}
		return types.StatusUnavailable, "connection refused", time.Millisecond
	})

	results := checker.Run(context.Background(), checker.Config{Workers: 2, Prober: probe}, parsed.Entries)
	buckets := Partition(results)

	if len(buckets) != 1 || buckets[0].Category != "News" {
		t.Fatalf("expected a single News bucket, got %+v", buckets)
	}
	news := buckets[0]
	if len(news.Available) != 1 || news.Available[0].Name != "BBC One" {
		t.Errorf("available = %v, want [BBC One]", names(news.Available))
	}
	if len(news.Unavailable) != 1 || news.Unavailable[0].Name != "Dead Ch" {
		t.Errorf("unavailable = %v, want [Dead Ch]", names(news.Unavailable))
	}
	if err := Verify(results, buckets); err != nil {
		t.Errorf("verify: %v", err)
	}
}
