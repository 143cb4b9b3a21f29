// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func init() {
	// Keep pdfcpu from writing its config file under the user's home.
	api.DisableConfigDir()
}

// PageCount validates the PDF structure with pdfcpu and returns the number
// of pages it declares.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	return n, nil
}

// AlignPages pads pages with empty strings up to count, so that slice
// positions match page numbers when a backend drops trailing blank pages.
// A slice already at or above count is returned unchanged.
func AlignPages(pages []string, count int) []string {
	if len(pages) >= count {
		return pages
	}
	aligned := make([]string, count)
	copy(aligned, pages)
	return aligned
}
