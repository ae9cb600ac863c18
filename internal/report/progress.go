package report

import (
	"fmt"
	"time"
)

// Progress prints the probing state once a second on a single
// rewritten line.
type Progress struct {
	total  int64
	stats  *Stats
	ticker *time.Ticker
	done   chan struct{}
}

// NewProgress creates and starts a progress printer for total probes.
func NewProgress(total int, stats *Stats) *Progress {
	p := &Progress{
		total:  int64(total),
		stats:  stats,
		ticker: time.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	go p.loop()
	return p
}

// Close stops the printer and prints the final state.
func (p *Progress) Close() {
	close(p.done)
	p.print()
	fmt.Print("\n")
}

func (p *Progress) loop() {
	for {
		select {
		case <-p.ticker.C:
			p.print()
		case <-p.done:
			p.ticker.Stop()
			return
		}
	}
}

func (p *Progress) print() {
	cur := p.stats.Probed()
	pct := 0.0
	if p.total > 0 {
		pct = float64(cur) / float64(p.total) * 100
	}

	// "\r" rewinds the line so we overwrite the previous output
	fmt.Printf("\r[PROGRESS] %d / %d (%.1f%%) | live: %d dead: %d broken: %d",
		cur, p.total, pct, p.stats.Available(), p.stats.Unavailable(), p.stats.Errored())
}
