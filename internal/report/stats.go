package report

import (
	"sync/atomic"

	"github.com/avrhm/m3usift/internal/types"
)

// Stats holds the run counters. All methods are safe for concurrent
// use; the checker workers feed it while the progress printer reads.
type Stats struct {
	parsed      int64
	skipped     int64
	available   int64
	unavailable int64
	errored     int64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) AddParsed(n int)  { atomic.AddInt64(&s.parsed, int64(n)) }
func (s *Stats) AddSkipped(n int) { atomic.AddInt64(&s.skipped, int64(n)) }

// Record counts one classified probe outcome.
func (s *Stats) Record(status types.ProbeStatus) {
	switch status {
	case types.StatusAvailable:
		atomic.AddInt64(&s.available, 1)
	case types.StatusUnavailable:
		atomic.AddInt64(&s.unavailable, 1)
	default:
		atomic.AddInt64(&s.errored, 1)
	}
}

func (s *Stats) Parsed() int64      { return atomic.LoadInt64(&s.parsed) }
func (s *Stats) Skipped() int64     { return atomic.LoadInt64(&s.skipped) }
func (s *Stats) Available() int64   { return atomic.LoadInt64(&s.available) }
func (s *Stats) Unavailable() int64 { return atomic.LoadInt64(&s.unavailable) }
func (s *Stats) Errored() int64     { return atomic.LoadInt64(&s.errored) }

// Probed is the number of entries with a classified outcome so far.
func (s *Stats) Probed() int64 {
	return s.Available() + s.Unavailable() + s.Errored()
}
