package playlist

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/avrhm/m3usift/internal/sanitize"
	"github.com/avrhm/m3usift/internal/types"
)

// DefaultCategory is used for entries without a usable group-title tag.
const DefaultCategory = "Uncategorized"

// attrRE extracts key="value" pairs from #EXTINF directive lines.
var attrRE = regexp.MustCompile(`([\w-]+)="([^"]*)"`)

// Result holds the entries produced from one playlist plus the number
// of malformed line groups that were skipped.
type Result struct {
	Entries []types.PlaylistEntry
	Skipped int
}

// Parser turns raw M3U playlist text into structured entries. Category
// and display names are sanitized during parsing; stream URLs are kept
// exactly as written.
type Parser struct {
	clean *sanitize.Sanitizer

	// fallback category for entries without a group-title tag, e.g.
	// the playlist's own name from the source listing.
	fallback string
}

func NewParser(clean *sanitize.Sanitizer, fallback string) *Parser {
	if fallback == "" {
		fallback = DefaultCategory
	}
	return &Parser{clean: clean, fallback: fallback}
}

// Parse reads playlist text and returns all well-formed entries in
// input order. Malformed directive/URL pairs are skipped and counted,
// never fatal.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	// Some playlists carry very wide EXTINF lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	res := &Result{}
	var pending *types.PlaylistEntry

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#EXTM3U") {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF:") {
			if pending != nil {
				// Directive without a following URL.
				res.Skipped++
			}
			entry, ok := p.parseDirective(line)
			if !ok {
				res.Skipped++
				pending = nil
				continue
			}
			pending = &entry
			continue
		}

		if strings.HasPrefix(line, "#") {
			// Unrelated directive, keep the pending entry.
			continue
		}

		// Anything else is a stream URL.
		if pending == nil {
			res.Skipped++
			continue
		}
		pending.URL = line
		res.Entries = append(res.Entries, *pending)
		pending = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if pending != nil {
		res.Skipped++
	}
	return res, nil
}

// parseDirective splits an #EXTINF line into duration, attribute tags
// and display name. The name sits after the comma that follows the
// last attribute.
func (p *Parser) parseDirective(line string) (types.PlaylistEntry, bool) {
	meta := strings.TrimPrefix(line, "#EXTINF:")

	first, end := -1, 0
	var keys []string
	attrs := make(map[string]string)
	for _, loc := range attrRE.FindAllStringSubmatchIndex(meta, -1) {
		// A key="value" pattern past an intervening comma sits inside
		// the display name, not the tag list.
		if strings.Contains(meta[end:loc[0]], ",") {
			break
		}
		key := meta[loc[2]:loc[3]]
		if _, dup := attrs[key]; !dup {
			keys = append(keys, key)
		}
		attrs[key] = meta[loc[4]:loc[5]]
		if first < 0 {
			first = loc[0]
		}
		end = loc[1]
	}

	comma := strings.Index(meta[end:], ",")
	if comma < 0 {
		return types.PlaylistEntry{}, false
	}
	name := strings.TrimSpace(meta[end+comma+1:])

	if first < 0 {
		first = end + comma
	}
	duration := strings.TrimSpace(meta[:first])

	category := p.clean.Clean(attrs["group-title"])
	if category == "" {
		category = p.fallback
	}

	return types.PlaylistEntry{
		Category: category,
		Name:     p.clean.Clean(name),
		Duration: duration,
		Attrs:    attrs,
		AttrKeys: keys,
	}, true
}
