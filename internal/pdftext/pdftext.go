// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts per-page plain text from PDF files with
// pluggable backends.
package pdftext

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pdiddy/docextract/pkg/types"
)

// Extractor returns the plain text of every page of a PDF, in page order.
// A page without extractable text yields an empty string so that page
// numbers stay aligned with slice positions.
type Extractor interface {
	Pages(path string) ([]string, error)
}

// ForBackend returns the extractor for the named backend. The auto backend
// uses the native extractor and, when fallback is set, retries with
// pdftotext on failure.
func ForBackend(backend types.ExtractionBackend, fallback bool, log *slog.Logger) (Extractor, error) {
	switch backend {
	case types.BackendNative:
		return &NativeExtractor{log: log}, nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor(), nil
	case types.BackendAuto, "":
		native := &NativeExtractor{log: log}
		if !fallback {
			return native, nil
		}
		return &FallbackExtractor{Primary: native, Fallback: NewPdftotextExtractor(), Log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q: use native, pdftotext, or auto", backend)
	}
}

// NativeExtractor reads PDFs in-process with github.com/ledongthuc/pdf.
type NativeExtractor struct {
	log *slog.Logger
}

// Pages opens the PDF and rebuilds each page line by line from positioned
// glyphs, so that line structure survives for cleaning. Pages whose content
// cannot be decoded are left empty.
func (n *NativeExtractor) Pages(path string) (pages []string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("parsing PDF %s: %v", path, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages = make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		n.logger().Debug("processing page", "page", i, "total", numPages)
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages[i-1] = pageText(page.Content().Text)
	}
	return pages, nil
}

func (n *NativeExtractor) logger() *slog.Logger {
	if n.log == nil {
		return slog.Default()
	}
	return n.log
}

// pageText groups glyphs into lines by baseline, top to bottom, and orders
// each line left to right. A space is inserted where the horizontal gap
// after a glyph is wider than a fraction of the font size.
func pageText(glyphs []pdflib.Text) string {
	if len(glyphs) == 0 {
		return ""
	}
	sorted := make([]pdflib.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var (
		b    strings.Builder
		line []pdflib.Text
	)
	for _, g := range sorted {
		if len(line) > 0 && line[0].Y-g.Y > lineTolerance(line[0]) {
			writeLine(&b, line)
			line = line[:0]
		}
		line = append(line, g)
	}
	writeLine(&b, line)
	return b.String()
}

func writeLine(b *strings.Builder, line []pdflib.Text) {
	sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
	for i, g := range line {
		if i > 0 && needsSpace(line[i-1], g) {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
	}
	b.WriteByte('\n')
}

func lineTolerance(g pdflib.Text) float64 {
	return math.Max(g.FontSize*0.5, 1)
}

// needsSpace reports whether the gap between prev and next is a word break
// that the content stream expressed by positioning rather than a space glyph.
func needsSpace(prev, next pdflib.Text) bool {
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	// Fonts without a Widths array report zero width and the cursor does
	// not advance within a string, so only explicit moves show up as gaps.
	gap := next.X - (prev.X + math.Max(prev.W, 0))
	return gap > math.Max(prev.FontSize*0.2, 1)
}

// FallbackExtractor tries Primary and, if it fails, Fallback.
type FallbackExtractor struct {
	Primary  Extractor
	Fallback Extractor
	Log      *slog.Logger
}

// Pages implements Extractor.
func (f *FallbackExtractor) Pages(path string) ([]string, error) {
	pages, err := f.Primary.Pages(path)
	if err == nil {
		return pages, nil
	}
	if f.Log != nil {
		f.Log.Warn("native extraction failed, trying pdftotext", "path", path, "error", err)
	}
	pages, fbErr := f.Fallback.Pages(path)
	if fbErr != nil {
		return nil, fmt.Errorf("extracting %s: %w (fallback: %v)", path, err, fbErr)
	}
	return pages, nil
}
