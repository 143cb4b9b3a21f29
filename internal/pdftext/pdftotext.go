// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// PdftotextExtractor shells out to poppler's pdftotext, which separates
// pages with form feeds.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor returns an extractor backed by the pdftotext binary
// on PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{exec: &osExecutor{}}
}

// Pages implements Extractor.
func (p *PdftotextExtractor) Pages(path string) ([]string, error) {
	if _, err := p.exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	out, err := p.exec.Output(binPdftotext, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}
	return splitFormFeeds(string(out)), nil
}

// splitFormFeeds splits pdftotext output into pages. pdftotext terminates
// every page, including the last, with a form feed.
func splitFormFeeds(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
