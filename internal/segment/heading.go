// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
)

// headingWindow is how many runes at the start of a cleaned page are
// searched for a heading. Dense pages may be cut mid-word; that is accepted.
const headingWindow = 100

// DetectHeading returns the section name for the first heading pattern that
// matches the start of cleaned page text.
func (s *Segmenter) DetectHeading(cleaned string) (string, bool) {
	name, _, ok := s.matchHeading(cleaned)
	return name, ok
}

// matchHeading returns the title-cased heading and how many leading bytes
// of cleaned the heading occupies. That prefix is zero when the match does
// not start the page, so text before an unanchored match is kept.
func (s *Segmenter) matchHeading(cleaned string) (string, int, bool) {
	window := firstRunes(cleaned, headingWindow)
	for _, re := range s.headings {
		m := re.FindStringSubmatchIndex(window)
		if m == nil {
			continue
		}
		start, stop := m[0], m[1]
		if len(m) >= 4 && m[2] >= 0 {
			start, stop = m[2], m[3]
		}
		name := strings.TrimSpace(window[start:stop])
		if name == "" {
			continue
		}
		prefix := 0
		if m[0] == 0 {
			prefix = m[1]
		}
		return s.titler.String(name), prefix, true
	}
	return "", 0, false
}

func firstRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
