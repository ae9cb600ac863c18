package report

import (
	"sync"
	"testing"

	"github.com/avrhm/m3usift/internal/types"
)

func TestStatsRecord(t *testing.T) {
	s := NewStats()
	s.AddParsed(10)
	s.AddSkipped(2)
	s.Record(types.StatusAvailable)
	s.Record(types.StatusAvailable)
	s.Record(types.StatusUnavailable)
	s.Record(types.StatusError)

	if s.Parsed() != 10 {
		t.Errorf("parsed = %d", s.Parsed())
	}
	if s.Skipped() != 2 {
		t.Errorf("skipped = %d", s.Skipped())
	}
	if s.Available() != 2 || s.Unavailable() != 1 || s.Errored() != 1 {
		t.Errorf("counts = %d/%d/%d", s.Available(), s.Unavailable(), s.Errored())
	}
	if s.Probed() != 4 {
		t.Errorf("probed = %d", s.Probed())
	}
}

func TestStatsConcurrent(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Record(types.StatusAvailable)
			}
		}()
	}
	wg.Wait()

	if s.Available() != 2000 {
		t.Errorf("available = %d, want 2000", s.Available())
	}
}
