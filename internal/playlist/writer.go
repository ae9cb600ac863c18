package playlist

import (
	"fmt"
	"strings"

	"github.com/avrhm/m3usift/internal/types"
)

// Render serializes entries back to playlist text: a header line, then
// one directive/URL pair per entry in the given order. Attribute tags
// keep their original order and values; only the display name and the
// group-title value reflect sanitization.
func Render(entries []types.PlaylistEntry) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, e := range entries {
		b.WriteString("#EXTINF:")
		b.WriteString(e.Duration)
		for _, key := range e.AttrKeys {
			val := e.Attrs[key]
			if key == "group-title" {
				val = e.Category
			}
			// Values are written back verbatim: the parser only
			// accepts quote-free values, so no escaping is needed
			// (and %q would mangle backslashes).
			fmt.Fprintf(&b, " %s=\"%s\"", key, val)
		}
		b.WriteString(",")
		b.WriteString(e.Name)
		b.WriteString("\n")
		b.WriteString(e.URL)
		b.WriteString("\n")
	}
	return b.String()
}
