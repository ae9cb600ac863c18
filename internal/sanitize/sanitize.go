package sanitize

import (
	"regexp"
	"strings"
)

var (
	symbolRE = regexp.MustCompile(`[^\w\s]`)
	spaceRE  = regexp.MustCompile(`\s+`)
)

// Sanitizer normalizes category and display names pulled from playlist
// metadata. URLs never pass through here.
type Sanitizer struct {
	strip map[rune]bool
}

// New returns a Sanitizer that removes the given symbol characters.
// With an empty set, every non-word, non-space character is removed.
func New(symbols string) *Sanitizer {
	s := &Sanitizer{}
	if symbols != "" {
		s.strip = make(map[rune]bool, len(symbols))
		for _, r := range symbols {
			s.strip[r] = true
		}
	}
	return s
}

// Clean normalizes a name: decodes non-breaking-space escapes, strips
// disallowed symbols, collapses whitespace runs to a single space and
// trims the ends. Idempotent, and never grows the input.
func (s *Sanitizer) Clean(name string) string {
	// Stripping can splice a fresh "&nbsp;" out of the surrounding
	// text, so run the passes to a fixed point. Each pass only
	// shrinks, so this terminates.
	for {
		cleaned := s.cleanOnce(name)
		if cleaned == name {
			return cleaned
		}
		name = cleaned
	}
}

func (s *Sanitizer) cleanOnce(name string) string {
	name = strings.ReplaceAll(name, "&nbsp;", " ")
	name = strings.ReplaceAll(name, "\u00a0", " ")

	if s.strip == nil {
		name = symbolRE.ReplaceAllString(name, "")
	} else {
		name = strings.Map(func(r rune) rune {
			if s.strip[r] {
				return -1
			}
			return r
		}, name)
	}

	name = spaceRE.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
