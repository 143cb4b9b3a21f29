// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docextract/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the section index (store, search, export)",
	Long: `Index manages a local SQLite database of extracted sections built from
the <prefix>_sections_<ts>.yaml manifests that extract writes. Use
subcommands to load manifests, search sections, or export them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		return bindFlags(cmd, map[string]string{
			"output-dir":  keyOutputDir,
			"max-results": keyMaxResults,
		})
	},
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Load section manifests into the index",
	Long: `Store reads every section manifest in the output directory and loads
its sections into index/sections.db with full-text indexing. Manifests that
have not changed since the last run are skipped.`,
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(viper.GetViper()))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d manifest(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed sections by text, section name, or document",
	Long: `Search queries the section index with full-text search, structured
filters (--section, --document), or both. Text results are ranked by
relevance; filter-only results are listed in document order.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --section, or --document")
	}

	store, err := index.NewStore(indexConfig(viper.GetViper()))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []index.QueryResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-20s  %-50s  %s\n",
		"Rank", "Document", "Section", "Excerpt", "Pages")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-24s  %-20s  %-50s  %s\n",
			i+1, clip(r.DocumentID, 24), clip(r.Section, 20),
			clip(strings.Join(strings.Fields(r.Body), " "), 50), pageRange(r.Pages))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func pageRange(pages []int) string {
	switch len(pages) {
	case 0:
		return "-"
	case 1:
		return fmt.Sprintf("%d", pages[0])
	default:
		return fmt.Sprintf("%d-%d", pages[0], pages[len(pages)-1])
	}
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed sections to YAML or JSON",
	Long: `Export writes the indexed sections (or a filtered subset) to
index/export.yaml or export.json under the output directory. Accepts the
same filters as search.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := index.NewStore(indexConfig(viper.GetViper()))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	section, _ := cmd.Flags().GetString("section")
	documentID, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:      queryText,
		Section:    section,
		DocumentID: documentID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("output-dir", "tindago_extracted", "extraction output directory (contains manifests and index/)")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	// Search flags.
	indexSearchCmd.Flags().String("query", "", "full-text search query")
	indexSearchCmd.Flags().String("section", "", "filter by section name")
	indexSearchCmd.Flags().String("document", "", "filter by document ID")
	indexSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	indexExportCmd.Flags().String("section", "", "filter by section name for partial export")
	indexExportCmd.Flags().String("document", "", "filter by document ID for partial export")
	indexExportCmd.Flags().Int("limit", 0, "maximum sections to export (0 = all)")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
