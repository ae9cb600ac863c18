package report

import (
	"fmt"

	"github.com/avrhm/m3usift/internal/types"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
)

// WriteConsoleSummary prints the per-category partition and the run
// totals after all probes have finished.
func WriteConsoleSummary(buckets []types.CategoryBucket, stats *Stats) {
	fmt.Printf("\n%s📺 CATEGORY SUMMARY%s\n", ColorCyan, ColorReset)
	fmt.Printf("%s===================%s\n", ColorCyan, ColorReset)

	for _, b := range buckets {
		fmt.Printf("\n%s%s%s\n", ColorBlue, b.Category, ColorReset)
		fmt.Printf("  └─ %savailable: %d%s, %sunavailable: %d%s\n",
			ColorGreen, len(b.Available), ColorReset,
			ColorYellow, len(b.Unavailable), ColorReset)
	}

	fmt.Printf("\nTotals: %d parsed, %d skipped, %s%d available%s, %s%d unavailable%s, %s%d broken%s\n",
		stats.Parsed(), stats.Skipped(),
		ColorGreen, stats.Available(), ColorReset,
		ColorYellow, stats.Unavailable(), ColorReset,
		ColorRed, stats.Errored(), ColorReset)
}
