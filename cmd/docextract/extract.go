// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pdiddy/docextract/internal/output"
	"github.com/pdiddy/docextract/internal/pdftext"
	"github.com/pdiddy/docextract/internal/segment"
	"github.com/pdiddy/docextract/internal/summary"
	"github.com/pdiddy/docextract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Extract, clean, and section a PDF into text files",
	Long: `Extract reads every page of the PDF, drops running headers and page
numbers, assigns each page to the most recent section heading, and writes:

  <prefix>_full_text_<ts>.txt    every page with page markers
  <prefix>_structured_<ts>.txt   sections under ## headings
  <prefix>_ai_ready_<ts>.txt     sections as "Name:" blocks
  <prefix>_summary.txt           project summary
  <prefix>_for_ai.txt            whole document as one flattened line
  <prefix>_sections_<ts>.yaml    section manifest for the index

The PDF defaults to ` + defaultInputPDF + ` in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output-dir": keyOutputDir,
			"prefix":     keyPrefix,
			"title":      keyTitle,
			"backend":    keyBackend,
		})
	},
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(viper.GetViper(), args)

	ext, err := pdftext.ForBackend(cfg.Backend, cfg.PdftotextFallback, logger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	report, err := extractDocument(cfg, ext, time.Now(), w)
	if err != nil {
		return err
	}
	printReport(w, report)
	return nil
}

// extractReport summarizes one extraction run.
type extractReport struct {
	Sections     int
	TotalChars   int
	AIReadyChars int
	OutputDir    string
	Files        []string
}

// extractDocument runs the pipeline: pages, segmentation, summary, and the
// output files.
func extractDocument(cfg types.ExtractionConfig, ext pdftext.Extractor, now time.Time, w io.Writer) (extractReport, error) {
	if _, err := os.Stat(cfg.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return extractReport{}, fmt.Errorf("PDF file %s not found", cfg.InputPath)
		}
		return extractReport{}, fmt.Errorf("checking PDF file %s: %w", cfg.InputPath, err)
	}

	seg, err := segment.New(cfg.Segment)
	if err != nil {
		return extractReport{}, fmt.Errorf("configuring segmenter: %w", err)
	}

	fmt.Fprintf(w, "extracting %s\n", cfg.InputPath)
	pages, err := ext.Pages(cfg.InputPath)
	if err != nil {
		return extractReport{}, fmt.Errorf("extracting text: %w", err)
	}
	if count, err := pdftext.PageCount(cfg.InputPath); err != nil {
		logger.Warn("page count unavailable", "path", cfg.InputPath, "error", err)
	} else if count != len(pages) {
		logger.Debug("aligning pages", "extracted", len(pages), "declared", count)
		pages = pdftext.AlignPages(pages, count)
	}
	fmt.Fprintf(w, "total pages: %d\n", len(pages))
	logger.Debug("pages extracted", "path", cfg.InputPath, "pages", len(pages), "backend", cfg.Backend)

	doc := seg.Segment(pages)
	for _, s := range doc.Sections {
		logger.Debug("section", "name", s.Name, "first_page", s.FirstPage, "pages", len(s.Pages))
	}

	ex := output.Extraction{
		SourcePDF: cfg.InputPath,
		Document:  doc,
		Summary:   summary.Build(doc, cfg.Summary),
		Flat:      pdftext.Flatten(pages, cfg.Segment.HeaderPrefixes),
	}
	res, err := output.Write(ex, cfg.Output, now, w)
	if err != nil {
		return extractReport{}, err
	}

	return extractReport{
		Sections:     len(doc.Sections),
		TotalChars:   utf8.RuneCountInString(doc.FullText),
		AIReadyChars: utf8.RuneCountInString(ex.Flat),
		OutputDir:    cfg.Output.OutputDir,
		Files:        res.Files,
	}, nil
}

func printReport(w io.Writer, r extractReport) {
	p := message.NewPrinter(language.English)
	fmt.Fprintln(w, "\nEXTRACTION RESULTS:")
	p.Fprintf(w, "- Sections found: %d\n", r.Sections)
	p.Fprintf(w, "- Total characters: %d\n", r.TotalChars)
	p.Fprintf(w, "- AI-ready text: %d characters\n", r.AIReadyChars)
	fmt.Fprintf(w, "\nFiles saved in: %s/\n", r.OutputDir)
}

func init() {
	out := output.DefaultConfig()
	extractCmd.Flags().String("output-dir", out.OutputDir, "directory for extracted files")
	extractCmd.Flags().String("prefix", out.Prefix, "filename prefix for output files")
	extractCmd.Flags().String("title", out.Title, "document title used in banners and the summary")
	extractCmd.Flags().String("backend", string(types.BackendAuto), "extraction backend: native, pdftotext, or auto")

	rootCmd.AddCommand(extractCmd)
}
