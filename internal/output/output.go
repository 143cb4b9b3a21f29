// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes the text files, summary, and section manifest
// produced by one extraction run.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docextract/pkg/types"
)

// TimestampLayout formats the run timestamp embedded in filenames.
const TimestampLayout = "20060102_150405"

// ManifestInfix marks section manifests: <prefix>_sections_<ts>.yaml.
const ManifestInfix = "_sections_"

const (
	ruleWide   = 50
	ruleNarrow = 30
)

// DefaultConfig returns the output settings used when nothing is configured.
func DefaultConfig() types.OutputConfig {
	return types.OutputConfig{
		OutputDir: "tindago_extracted",
		Prefix:    "tindago",
		Title:     "TINDA-GO",
		Subtitle:  "SARI-SARI STORE MOBILE APPLICATION",
	}
}

// Extraction is everything one run hands to the writer.
type Extraction struct {
	SourcePDF string
	Document  *types.Document
	Summary   string
	// Flat is the single-line rendition from pdftext.Flatten.
	Flat string
}

// Result lists what Write produced.
type Result struct {
	Timestamp string
	Files     []string
	Manifest  types.Manifest
}

// Write creates cfg.OutputDir and writes the full-text, structured,
// AI-ready, summary, flattened, and manifest files. Progress lines go to w.
func Write(ex Extraction, cfg types.OutputConfig, now time.Time, w io.Writer) (Result, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultConfig().Prefix
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	ts := now.Format(TimestampLayout)
	res := Result{Timestamp: ts, Manifest: BuildManifest(ex, cfg, now)}

	manifestData, err := yaml.Marshal(&res.Manifest)
	if err != nil {
		return Result{}, fmt.Errorf("marshaling manifest: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{fmt.Sprintf("%s_full_text_%s.txt", cfg.Prefix, ts), FullText(ex.Document, cfg)},
		{fmt.Sprintf("%s_structured_%s.txt", cfg.Prefix, ts), Structured(ex.Document, cfg.Title)},
		{fmt.Sprintf("%s_ai_ready_%s.txt", cfg.Prefix, ts), AIReady(ex.Document)},
		{cfg.Prefix + "_summary.txt", ex.Summary},
		{cfg.Prefix + "_for_ai.txt", ex.Flat},
		{cfg.Prefix + ManifestInfix + ts + ".yaml", string(manifestData)},
	}

	for _, f := range files {
		path := filepath.Join(cfg.OutputDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return Result{}, fmt.Errorf("writing %s: %w", path, err)
		}
		res.Files = append(res.Files, path)
	}

	fmt.Fprintf(w, "saved 3 text files with timestamp: %s\n", ts)
	fmt.Fprintln(w, "generated project summary")
	fmt.Fprintf(w, "wrote manifest: %s\n", files[len(files)-1].name)
	return res, nil
}

// FullText renders the complete extraction: a banner followed by every
// page with its page marker.
func FullText(doc *types.Document, cfg types.OutputConfig) string {
	var b strings.Builder
	if cfg.Subtitle != "" {
		fmt.Fprintf(&b, "%s: %s\n", cfg.Title, cfg.Subtitle)
	} else {
		fmt.Fprintf(&b, "%s\n", cfg.Title)
	}
	b.WriteString("COMPLETE DOCUMENT EXTRACTION\n")
	b.WriteString(strings.Repeat("=", ruleWide) + "\n\n")
	b.WriteString(doc.FullText)
	return b.String()
}

// Structured renders each section under an upper-cased "## NAME" heading.
func Structured(doc *types.Document, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: STRUCTURED CONTENT BY SECTIONS\n", title)
	b.WriteString(strings.Repeat("=", ruleWide) + "\n\n")
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n", strings.ToUpper(s.Name))
		b.WriteString(strings.Repeat("-", ruleNarrow) + "\n")
		b.WriteString(s.Body)
		b.WriteString("\n" + strings.Repeat("=", ruleWide) + "\n\n")
	}
	return b.String()
}

// AIReady renders sections as "Name:" followed by the body, with no banners.
func AIReady(doc *types.Document) string {
	var b strings.Builder
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "%s:\n%s\n\n", s.Name, s.Body)
	}
	return b.String()
}

// BuildManifest records the sections of one run for the index.
func BuildManifest(ex Extraction, cfg types.OutputConfig, now time.Time) types.Manifest {
	m := types.Manifest{
		DocumentID:  cfg.Prefix + "_" + now.Format(TimestampLayout),
		SourcePDF:   ex.SourcePDF,
		Title:       cfg.Title,
		ExtractedAt: now.UTC().Truncate(time.Second),
		PageCount:   ex.Document.PageCount,
	}
	for i, s := range ex.Document.Sections {
		m.Sections = append(m.Sections, types.ManifestSection{
			Name:      s.Name,
			Position:  i,
			FirstPage: s.FirstPage,
			Pages:     s.Pages,
			Chars:     utf8.RuneCountInString(s.Body),
			Body:      s.Body,
		})
	}
	return m
}

// IsManifest reports whether a filename looks like a section manifest.
func IsManifest(name string) bool {
	return strings.Contains(name, ManifestInfix) && strings.HasSuffix(name, ".yaml")
}
