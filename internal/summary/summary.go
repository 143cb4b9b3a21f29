// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary renders the plain-text project summary from a segmented
// document.
package summary

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docextract/pkg/types"
)

const (
	overviewSection   = "Introduction"
	objectivesSection = "Objectives"
	overviewChars     = 500
	objectivesChars   = 400
)

// DefaultTechStack is reported when no technical stack is configured.
var DefaultTechStack = []string{
	"Frontend: React Native",
	"Backend: Firebase Firestore",
	"Local Storage: AsyncStorage / SQLite",
	"Authentication: Firebase Auth",
	"Target Platform: Android & iOS",
	"State Management: Redux Toolkit / Zustand",
	"Navigation: React Navigation",
}

// DefaultKeyFeatures is reported when no feature list is configured.
var DefaultKeyFeatures = []string{
	"Inventory management for sari-sari stores",
	"Customer ordering system (pickup only)",
	"Sales tracking and reporting",
	"Store registration and verification",
	"Admin dashboard for store approval",
}

// DefaultConfig returns the summary settings used when nothing is configured.
func DefaultConfig() types.SummaryConfig {
	return types.SummaryConfig{
		Title:       "TINDA-GO",
		TechStack:   append([]string(nil), DefaultTechStack...),
		KeyFeatures: append([]string(nil), DefaultKeyFeatures...),
	}
}

// Build renders the summary. The overview and objectives blocks are present
// only when the document has those sections; each is cut to a fixed number
// of characters and marked with "...".
func Build(doc *types.Document, cfg types.SummaryConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s PROJECT SUMMARY\n", cfg.Title)
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	if sec, ok := doc.Section(overviewSection); ok {
		fmt.Fprintf(&b, "PROJECT OVERVIEW:\n%s...\n\n", truncate(sec.Body, overviewChars))
	}
	if sec, ok := doc.Section(objectivesSection); ok {
		fmt.Fprintf(&b, "MAIN OBJECTIVES:\n%s...\n\n", truncate(sec.Body, objectivesChars))
	}

	writeList(&b, "TECHNICAL STACK IDENTIFIED:", cfg.TechStack)
	writeList(&b, "KEY FEATURES:", cfg.KeyFeatures)

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
