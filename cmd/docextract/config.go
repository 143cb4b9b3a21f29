// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docextract/internal/analyze"
	"github.com/pdiddy/docextract/internal/output"
	"github.com/pdiddy/docextract/internal/segment"
	"github.com/pdiddy/docextract/internal/summary"
	"github.com/pdiddy/docextract/pkg/types"
)

// defaultInputPDF is extracted when no path is given.
const defaultInputPDF = "TindaGo-MANUSCRIPT-FINAL.pdf"

// Config keys. Nested keys map to env vars with "." replaced by "_",
// e.g. DOCEXTRACT_INDEX_MAX_RESULTS.
const (
	keyOutputDir         = "output_dir"
	keyPrefix            = "prefix"
	keyTitle             = "title"
	keySubtitle          = "subtitle"
	keyBackend           = "backend"
	keyPdftotextFallback = "pdftotext_fallback"
	keyHeaderPrefixes    = "header_prefixes"
	keyHeadings          = "headings"
	keyDefaultSection    = "default_section"
	keyTechStack         = "summary.tech_stack"
	keyKeyFeatures       = "summary.key_features"
	keyKeywords          = "keywords"
	keyMaxResults        = "index.max_results"
)

// envKeyReplacer maps nested config keys to environment variable names.
var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers the built-in value of every config key.
func setDefaults(v *viper.Viper) {
	out := output.DefaultConfig()
	seg := segment.DefaultConfig()
	sum := summary.DefaultConfig()

	v.SetDefault(keyOutputDir, out.OutputDir)
	v.SetDefault(keyPrefix, out.Prefix)
	v.SetDefault(keyTitle, out.Title)
	v.SetDefault(keySubtitle, out.Subtitle)
	v.SetDefault(keyBackend, string(types.BackendAuto))
	v.SetDefault(keyPdftotextFallback, true)
	v.SetDefault(keyHeaderPrefixes, seg.HeaderPrefixes)
	v.SetDefault(keyHeadings, seg.Headings)
	v.SetDefault(keyDefaultSection, seg.DefaultSection)
	v.SetDefault(keyTechStack, sum.TechStack)
	v.SetDefault(keyKeyFeatures, sum.KeyFeatures)
	v.SetDefault(keyKeywords, analyze.DefaultKeywords)
}

// bindFlags layers the named flags of cmd over their config keys. Binding
// happens per invocation because several subcommands share a key.
func bindFlags(cmd *cobra.Command, flagKeys map[string]string) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// extractionConfig assembles the settings for one extraction run. The
// first argument, when present, overrides the default input PDF.
func extractionConfig(v *viper.Viper, args []string) types.ExtractionConfig {
	input := defaultInputPDF
	if len(args) > 0 && args[0] != "" {
		input = args[0]
	}

	title := v.GetString(keyTitle)
	return types.ExtractionConfig{
		InputPath:         input,
		Backend:           types.ExtractionBackend(v.GetString(keyBackend)),
		PdftotextFallback: v.GetBool(keyPdftotextFallback),
		Segment: types.SegmentConfig{
			HeaderPrefixes: v.GetStringSlice(keyHeaderPrefixes),
			Headings:       v.GetStringSlice(keyHeadings),
			DefaultSection: v.GetString(keyDefaultSection),
		},
		Summary: types.SummaryConfig{
			Title:       title,
			TechStack:   v.GetStringSlice(keyTechStack),
			KeyFeatures: v.GetStringSlice(keyKeyFeatures),
		},
		Output: types.OutputConfig{
			OutputDir: v.GetString(keyOutputDir),
			Prefix:    v.GetString(keyPrefix),
			Title:     title,
			Subtitle:  v.GetString(keySubtitle),
		},
	}
}

// indexConfig assembles the settings for the section index.
func indexConfig(v *viper.Viper) types.IndexConfig {
	return types.IndexConfig{
		OutputDir:  v.GetString(keyOutputDir),
		MaxResults: v.GetInt(keyMaxResults),
	}
}
