package types

import "time"

// ProbeStatus classifies the outcome of a single reachability check.
type ProbeStatus int

const (
	StatusAvailable ProbeStatus = iota
	StatusUnavailable
	StatusError
)

func (s ProbeStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}

// PlaylistEntry is one channel listing parsed from an M3U playlist.
// Immutable once parsed; downstream stages only read it.
type PlaylistEntry struct {
	Category string
	Name     string
	URL      string
	Duration string
	// Attrs holds the extra key="value" tags from the #EXTINF line.
	// AttrKeys remembers the order they appeared in so serialization
	// round-trips the directive line.
	Attrs    map[string]string
	AttrKeys []string
}

// ProbeResult is the classified outcome for exactly one entry.
type ProbeResult struct {
	Entry   PlaylistEntry
	Status  ProbeStatus
	Reason  string
	Latency time.Duration
}

// CategoryBucket is the available/unavailable partition of all entries
// sharing one sanitized category. Entry order within each list matches
// the original playlist order.
type CategoryBucket struct {
	Category    string
	Available   []PlaylistEntry
	Unavailable []PlaylistEntry
}
