// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze pulls technical mentions and feature lists out of raw
// page text.
package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywords are the technology terms searched by TechnicalMentions.
var DefaultKeywords = []string{
	"react native", "react", "firebase", "android", "ios", "asyncstorage",
	"sqlite", "expo", "api", "database", "authentication", "storage",
	"redux", "navigation", "javascript", "typescript",
}

// listItem matches a bulleted ("•", "-", "*"), numbered ("1. "), or
// outline ("o ") line.
var listItem = regexp.MustCompile(`^[•\-\*]\s+|^\d+\.\s+|^o\s+`)

// TechnicalMentions returns every sentence that mentions one of keywords,
// case-insensitively. Sentences are split on periods, trimmed, and
// returned sorted without duplicates.
func TechnicalMentions(pages []string, keywords []string) []string {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	seen := make(map[string]bool)
	for _, page := range pages {
		pageLower := strings.ToLower(page)
		if !containsAny(pageLower, lowered) {
			continue
		}
		for _, sentence := range strings.Split(page, ".") {
			if !containsAny(strings.ToLower(sentence), lowered) {
				continue
			}
			if s := strings.TrimSpace(sentence); s != "" {
				seen[s] = true
			}
		}
	}

	mentions := make([]string, 0, len(seen))
	for s := range seen {
		mentions = append(mentions, s)
	}
	sort.Strings(mentions)
	return mentions
}

// Features returns list-item lines in document order.
func Features(pages []string) []string {
	var features []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if listItem.MatchString(line) {
				features = append(features, line)
			}
		}
	}
	return features
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
