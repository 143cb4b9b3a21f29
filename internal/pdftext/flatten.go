// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import "strings"

// Flatten produces a single-line rendition of the document for feeding to
// language models: lines starting with a header prefix are dropped, all
// whitespace collapses to single spaces, and pages are joined with a space.
func Flatten(pages []string, headerPrefixes []string) string {
	var parts []string
	for _, page := range pages {
		if page == "" {
			continue
		}
		var kept []string
		for _, line := range strings.Split(page, "\n") {
			if hasAnyPrefix(strings.TrimSpace(line), headerPrefixes) {
				continue
			}
			kept = append(kept, line)
		}
		if text := strings.Join(strings.Fields(strings.Join(kept, " ")), " "); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
