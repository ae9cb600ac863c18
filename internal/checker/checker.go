package checker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/avrhm/m3usift/internal/report"
	"github.com/avrhm/m3usift/internal/types"
)

// Prober runs one bounded reachability check against a URL.
type Prober interface {
	Probe(ctx context.Context, url string) (types.ProbeStatus, string, time.Duration)
}

// ProbeFunc adapts a plain function to the Prober interface.
type ProbeFunc func(ctx context.Context, url string) (types.ProbeStatus, string, time.Duration)

func (f ProbeFunc) Probe(ctx context.Context, url string) (types.ProbeStatus, string, time.Duration) {
	return f(ctx, url)
}

type Config struct {
	Workers int
	Rate    int // max probes per second, 0 = unlimited
	Prober  Prober
	Stats   *report.Stats
	Verbose bool
}

// Run probes every entry exactly once on a fixed pool of Workers
// goroutines and returns one result per entry, in input order. Each
// worker writes to its assigned entry's slot, so ordering is
// independent of completion order. When the context expires, entries
// not yet probed are classified as errored instead of being dropped —
// the result slice is always complete.
func Run(ctx context.Context, config Config, entries []types.PlaylistEntry) []types.ProbeResult {
	results := make([]types.ProbeResult, len(entries))

	var limiter *rate.Limiter
	if config.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.Rate), config.Rate)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go worker(ctx, &wg, jobs, limiter, config, entries, results)
	}

	for idx := range entries {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()
	return results
}

func worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan int, limiter *rate.Limiter, config Config, entries []types.PlaylistEntry, results []types.ProbeResult) {
	defer wg.Done()

	for idx := range jobs {
		entry := entries[idx]

		if ctx.Err() != nil {
			results[idx] = abandoned(entry)
			record(config, results[idx])
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				results[idx] = abandoned(entry)
				record(config, results[idx])
				continue
			}
		}

		status, reason, latency := config.Prober.Probe(ctx, entry.URL)
		results[idx] = types.ProbeResult{
			Entry:   entry,
			Status:  status,
			Reason:  reason,
			Latency: latency,
		}
		record(config, results[idx])
	}
}

func abandoned(entry types.PlaylistEntry) types.ProbeResult {
	return types.ProbeResult{
		Entry:  entry,
		Status: types.StatusError,
		Reason: "run deadline exceeded",
	}
}

func record(config Config, result types.ProbeResult) {
	if config.Stats != nil {
		config.Stats.Record(result.Status)
	}
	if config.Verbose {
		switch result.Status {
		case types.StatusAvailable:
			fmt.Printf("[%sLIVE%s] %s (%s)\n", report.ColorGreen, report.ColorReset, result.Entry.URL, result.Latency.Round(time.Millisecond))
		case types.StatusUnavailable:
			fmt.Printf("[%sDEAD%s] %s - %s\n", report.ColorYellow, report.ColorReset, result.Entry.URL, result.Reason)
		default:
			fmt.Printf("[%sERROR%s] %s - %s\n", report.ColorRed, report.ColorReset, result.Entry.URL, result.Reason)
		}
	}
}
