// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minLineLength is the shortest line (in runes) kept by Clean.
const minLineLength = 3

var (
	// pageNumberLine matches footer lines such as "12", "Page 3", "Page 3 of 10".
	pageNumberLine = regexp.MustCompile(`(?i)^(?:page\s+)?\d+(?:\s+of\s+\d+)?$`)

	// figureLine matches a caption label left alone on its line: "Figure 3:", "Fig. 2.1".
	figureLine = regexp.MustCompile(`(?i)^fig(?:ure|\.)\s*\d+(?:\.\d+)*:?$`)

	sentenceGap = regexp.MustCompile(`([.!?])\s*([A-Z])`)
)

// Clean normalizes one page of extracted text: whitespace runs collapse to
// single spaces, short and boilerplate lines are dropped, the remaining
// lines are joined, and sentence boundaries get exactly one space.
// Clean is idempotent.
func (s *Segmenter) Clean(text string) string {
	if text == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = collapseSpace(line)
		if s.isNoise(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := collapseSpace(strings.Join(kept, " "))
	cleaned = sentenceGap.ReplaceAllString(cleaned, "$1 $2")

	// Joining fragments can assemble a line that would not survive a second
	// pass ("Figure" + "12:").
	if s.isNoise(cleaned) {
		return ""
	}
	return cleaned
}

// IsBoilerplate reports whether a normalized line is header, footer, or
// caption noise.
func (s *Segmenter) IsBoilerplate(line string) bool {
	for _, p := range s.headerPrefixes {
		if p != "" && strings.HasPrefix(line, p) {
			return true
		}
	}
	return pageNumberLine.MatchString(line) || figureLine.MatchString(line)
}

func (s *Segmenter) isNoise(line string) bool {
	return utf8.RuneCountInString(line) < minLineLength || s.IsBoilerplate(line)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
