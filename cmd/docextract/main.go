// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docextract CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics; user-facing progress goes to the command's
// output writer instead.
var logger = newLogger(os.Stderr, false)

// rootCmd is the base command for the docextract CLI.
var rootCmd = &cobra.Command{
	Use:   "docextract",
	Short: "Extract sectioned text from a project manuscript PDF",
	Long: `docextract pulls the text out of a project manuscript PDF, cleans it,
groups pages under the section headings it detects, and writes full-text,
structured, and AI-ready files plus a project summary.

The extract subcommand runs the whole pipeline. features and requirements
scan the PDF for list items and technical mentions. index loads section
manifests into a searchable SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docextract.yaml or ~/.config/docextract/docextract.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docextract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docextract"))
		}
	}

	viper.SetEnvPrefix("DOCEXTRACT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logger.Warn("reading config file", "path", cfgFile, "error", err)
	}
}

// setupLogging replaces the logger once flags are parsed. Subcommands with
// their own PersistentPreRunE call it too, since cobra runs only the nearest.
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger = newLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
