package aggregate

import (
	"fmt"

	"github.com/avrhm/m3usift/internal/types"
)

// Partition groups probe results into one bucket per category,
// splitting each into available and unavailable lists. Buckets appear
// in first-seen category order; entries keep their relative input
// order on both sides of the split (a stable partition, not a sort).
// Errored entries land in the unavailable list so that no entry is
// ever dropped.
func Partition(results []types.ProbeResult) []types.CategoryBucket {
	index := make(map[string]int)
	var buckets []types.CategoryBucket

	for _, r := range results {
		cat := r.Entry.Category
		i, ok := index[cat]
		if !ok {
			i = len(buckets)
			index[cat] = i
			buckets = append(buckets, types.CategoryBucket{Category: cat})
		}
		if r.Status == types.StatusAvailable {
			buckets[i].Available = append(buckets[i].Available, r.Entry)
		} else {
			buckets[i].Unavailable = append(buckets[i].Unavailable, r.Entry)
		}
	}

	return buckets
}

// Verify checks the partition invariant: every probed entry landed in
// exactly one bucket list. A mismatch means entries were lost, which
// is a programming error, not a runtime condition.
func Verify(results []types.ProbeResult, buckets []types.CategoryBucket) error {
	var got int
	for _, b := range buckets {
		got += len(b.Available) + len(b.Unavailable)
	}
	if got != len(results) {
		return fmt.Errorf("aggregation lost entries: %d results, %d bucketed", len(results), got)
	}
	return nil
}
