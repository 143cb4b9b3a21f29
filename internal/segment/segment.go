// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment cleans extracted page text and groups it into sections
// keyed by the headings detected at the top of each page.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/docextract/pkg/types"
)

// DefaultSectionName collects pages that appear before the first heading.
const DefaultSectionName = "Introduction"

// DefaultHeaderPrefixes are running-header prefixes dropped during cleaning.
var DefaultHeaderPrefixes = []string{"STI College"}

// DefaultHeadings are the heading patterns for academic and technical
// manuscripts. Order matters: the first pattern that matches a page wins,
// and within a pattern the leftmost alternative wins.
var DefaultHeadings = []string{
	`(?i)^(INTRODUCTION|PROJECT CONTEXT|PURPOSE AND DESCRIPTION)\b`,
	`(?i)^(OBJECTIVES|SCOPE AND LIMITATIONS|METHODOLOGY)\b`,
	`(?i)^(REVIEW OF RELATED LITERATURE|REVIEW OF RELATED|LITERATURE REVIEW|LITERATURE|TECHNICAL BACKGROUND)\b`,
	`(?i)^(REQUIREMENTS|DESIGN|REFERENCES|APPENDICES)\b`,
}

// DefaultConfig returns the segmenter configuration used when nothing is
// configured.
func DefaultConfig() types.SegmentConfig {
	return types.SegmentConfig{
		HeaderPrefixes: append([]string(nil), DefaultHeaderPrefixes...),
		Headings:       append([]string(nil), DefaultHeadings...),
		DefaultSection: DefaultSectionName,
	}
}

// Segmenter turns raw page text into a types.Document. It keeps no state
// between calls to Segment, but is not safe for concurrent use.
type Segmenter struct {
	headerPrefixes []string
	headings       []*regexp.Regexp
	defaultSection string
	titler         cases.Caser
}

// New compiles the heading patterns in cfg. Empty fields fall back to the
// defaults.
func New(cfg types.SegmentConfig) (*Segmenter, error) {
	patterns := cfg.Headings
	if len(patterns) == 0 {
		patterns = DefaultHeadings
	}
	headings := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling heading pattern %d %q: %w", i, p, err)
		}
		headings = append(headings, re)
	}

	prefixes := cfg.HeaderPrefixes
	if prefixes == nil {
		prefixes = DefaultHeaderPrefixes
	}

	def := strings.TrimSpace(cfg.DefaultSection)
	if def == "" {
		def = DefaultSectionName
	}

	return &Segmenter{
		headerPrefixes: prefixes,
		headings:       headings,
		defaultSection: def,
		titler:         cases.Title(language.English),
	}, nil
}

// Default returns a Segmenter built from DefaultConfig.
func Default() *Segmenter {
	s, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// Segment cleans every page in order and appends it to the current section.
// Blank pages are skipped entirely. A page that cleans to nothing keeps its
// marker in the full text but contributes no body. Page numbers are 1-based
// positions in pages.
func (s *Segmenter) Segment(pages []string) *types.Document {
	doc := &types.Document{PageCount: len(pages)}

	var (
		full    strings.Builder
		bodies  []*strings.Builder
		index   = make(map[string]int)
		current = s.defaultSection
	)

	for i, raw := range pages {
		page := i + 1
		if strings.TrimSpace(raw) == "" {
			continue
		}

		cleaned := s.Clean(raw)
		fmt.Fprintf(&full, "--- PAGE %d ---\n%s\n\n", page, cleaned)
		if cleaned == "" {
			continue
		}

		contribution := cleaned
		if name, prefix, ok := s.matchHeading(cleaned); ok {
			current = name
			if prefix > 0 {
				contribution = strings.TrimLeft(cleaned[prefix:], " :")
			}
		}

		pos, seen := index[current]
		if !seen {
			pos = len(doc.Sections)
			index[current] = pos
			doc.Sections = append(doc.Sections, types.Section{Name: current, FirstPage: page})
			bodies = append(bodies, &strings.Builder{})
		}

		if contribution != "" {
			bodies[pos].WriteString(contribution)
			bodies[pos].WriteString("\n\n")
			doc.Sections[pos].Pages = append(doc.Sections[pos].Pages, page)
		}
	}

	for i, b := range bodies {
		doc.Sections[i].Body = b.String()
	}
	doc.FullText = full.String()
	return doc
}
