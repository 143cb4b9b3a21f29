// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Section is a named run of cleaned page text grouped under one heading.
type Section struct {
	// Name is the detected heading in title case, or the default section name.
	Name string `json:"name" yaml:"name"`

	// Body is the accumulated cleaned text. Each page contribution ends with
	// a blank line ("\n\n").
	Body string `json:"body" yaml:"body"`

	// FirstPage is the 1-based page on which the section first appeared.
	FirstPage int `json:"first_page" yaml:"first_page"`

	// Pages lists every page that contributed to Body, in order.
	Pages []int `json:"pages" yaml:"pages"`
}

// Document is the segmented result of one PDF.
type Document struct {
	// Sections are ordered by first appearance in the document.
	Sections []Section `json:"sections" yaml:"sections"`

	// FullText is the cleaned text of every page, each preceded by a
	// "--- PAGE n ---" marker.
	FullText string `json:"full_text" yaml:"full_text"`

	// PageCount is the number of pages handed to the segmenter, including
	// empty ones.
	PageCount int `json:"page_count" yaml:"page_count"`
}

// Section returns the section with the given name.
func (d *Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionNames returns section names in document order.
func (d *Document) SectionNames() []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Name
	}
	return names
}

// Manifest is the YAML record written next to the text outputs. It is the
// input for the section index.
type Manifest struct {
	// DocumentID is derived from the output prefix and timestamp.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// SourcePDF is the path of the extracted PDF.
	SourcePDF string `json:"source_pdf" yaml:"source_pdf"`

	Title       string    `json:"title" yaml:"title"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
	PageCount   int       `json:"page_count" yaml:"page_count"`

	Sections []ManifestSection `json:"sections" yaml:"sections"`
}

// ManifestSection is one section entry in a Manifest.
type ManifestSection struct {
	Name      string `json:"name" yaml:"name"`
	Position  int    `json:"position" yaml:"position"`
	FirstPage int    `json:"first_page" yaml:"first_page"`
	Pages     []int  `json:"pages" yaml:"pages"`
	Chars     int    `json:"chars" yaml:"chars"`
	Body      string `json:"body" yaml:"body"`
}
