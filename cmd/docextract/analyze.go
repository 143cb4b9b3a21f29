// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docextract/internal/analyze"
	"github.com/pdiddy/docextract/internal/pdftext"
)

// --- features subcommand ---

var featuresCmd = &cobra.Command{
	Use:   "features [pdf]",
	Short: "List bulleted and numbered items found in the PDF",
	Long: `Features prints every line that starts with a bullet, a number
followed by a period, or an "o" outline marker, in document order.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindBackendFlag,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := analysisPages(args)
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return printLines(cmd.OutOrStdout(), analyze.Features(pages), "features", jsonOutput)
	},
}

// --- requirements subcommand ---

var requirementsCmd = &cobra.Command{
	Use:   "requirements [pdf]",
	Short: "List sentences that mention technologies",
	Long: `Requirements prints every sentence that mentions one of the
configured technology keywords (React Native, Firebase, SQLite, ...),
sorted and without duplicates. Set "keywords" in the config file to
change the list.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindBackendFlag,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := analysisPages(args)
		if err != nil {
			return err
		}
		mentions := analyze.TechnicalMentions(pages, viper.GetStringSlice(keyKeywords))
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return printLines(cmd.OutOrStdout(), mentions, "technical mentions", jsonOutput)
	},
}

// --- shared helpers ---

func bindBackendFlag(cmd *cobra.Command, args []string) error {
	return bindFlags(cmd, map[string]string{"backend": keyBackend})
}

func analysisPages(args []string) ([]string, error) {
	cfg := extractionConfig(viper.GetViper(), args)
	ext, err := pdftext.ForBackend(cfg.Backend, cfg.PdftotextFallback, logger)
	if err != nil {
		return nil, err
	}
	pages, err := ext.Pages(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	return pages, nil
}

func printLines(w io.Writer, lines []string, noun string, jsonOutput bool) error {
	if jsonOutput {
		if lines == nil {
			lines = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}

	if len(lines) == 0 {
		fmt.Fprintf(w, "No %s found.\n", noun)
		return nil
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintf(w, "\n%d %s\n", len(lines), noun)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{featuresCmd, requirementsCmd} {
		c.Flags().String("backend", "auto", "extraction backend: native, pdftotext, or auto")
		c.Flags().Bool("json", false, "output as JSON")
		rootCmd.AddCommand(c)
	}
}
