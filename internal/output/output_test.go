// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docextract/pkg/types"
)

func sampleDocument() *types.Document {
	return &types.Document{
		Sections: []types.Section{
			{Name: "Introduction", Body: "This project is about inventory.\n\n", FirstPage: 1, Pages: []int{1}},
			{Name: "Objectives", Body: "1. Track stock.\n\n", FirstPage: 2, Pages: []int{2}},
		},
		FullText:  "--- PAGE 1 ---\nIntroduction This project is about inventory.\n\n--- PAGE 2 ---\nObjectives 1. Track stock.\n\n",
		PageCount: 2,
	}
}

func testConfig(dir string) types.OutputConfig {
	return types.OutputConfig{
		OutputDir: dir,
		Prefix:    "tindago",
		Title:     "TINDA-GO",
		Subtitle:  "SARI-SARI STORE MOBILE APPLICATION",
	}
}

var runTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tindago_extracted")
	ex := Extraction{
		SourcePDF: "TindaGo-MANUSCRIPT-FINAL.pdf",
		Document:  sampleDocument(),
		Summary:   "TINDA-GO PROJECT SUMMARY\n",
		Flat:      "Introduction This project is about inventory.",
	}

	var log bytes.Buffer
	res, err := Write(ex, testConfig(dir), runTime, &log)
	require.NoError(t, err)

	assert.Equal(t, "20260314_092653", res.Timestamp)
	wantFiles := []string{
		"tindago_full_text_20260314_092653.txt",
		"tindago_structured_20260314_092653.txt",
		"tindago_ai_ready_20260314_092653.txt",
		"tindago_summary.txt",
		"tindago_for_ai.txt",
		"tindago_sections_20260314_092653.yaml",
	}
	require.Len(t, res.Files, len(wantFiles))
	for i, name := range wantFiles {
		assert.Equal(t, filepath.Join(dir, name), res.Files[i])
		assert.FileExists(t, res.Files[i])
	}

	flat, err := os.ReadFile(filepath.Join(dir, "tindago_for_ai.txt"))
	require.NoError(t, err)
	assert.Equal(t, ex.Flat, string(flat))

	assert.Contains(t, log.String(), "saved 3 text files with timestamp: 20260314_092653")
	assert.Contains(t, log.String(), "generated project summary")
}

func TestWriteManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ex := Extraction{SourcePDF: "doc.pdf", Document: sampleDocument()}

	_, err := Write(ex, testConfig(dir), runTime, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "tindago_sections_20260314_092653.yaml"))
	require.NoError(t, err)

	var m types.Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, "tindago_20260314_092653", m.DocumentID)
	assert.Equal(t, "doc.pdf", m.SourcePDF)
	assert.Equal(t, 2, m.PageCount)
	assert.True(t, m.ExtractedAt.Equal(runTime))
	require.Len(t, m.Sections, 2)
	assert.Equal(t, "Objectives", m.Sections[1].Name)
	assert.Equal(t, 1, m.Sections[1].Position)
	assert.Equal(t, "1. Track stock.\n\n", m.Sections[1].Body)
	assert.Equal(t, 17, m.Sections[1].Chars)
}

func TestWriteCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	ex := Extraction{Document: &types.Document{}}

	_, err := Write(ex, types.OutputConfig{OutputDir: dir}, runTime, &bytes.Buffer{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "tindago_summary.txt"))
}

func TestFullText(t *testing.T) {
	got := FullText(sampleDocument(), testConfig(""))
	want := "TINDA-GO: SARI-SARI STORE MOBILE APPLICATION\n" +
		"COMPLETE DOCUMENT EXTRACTION\n" +
		"==================================================\n\n" +
		"--- PAGE 1 ---\nIntroduction This project is about inventory.\n\n" +
		"--- PAGE 2 ---\nObjectives 1. Track stock.\n\n"
	assert.Equal(t, want, got)

	noSub := FullText(&types.Document{}, types.OutputConfig{Title: "REPORT"})
	assert.Equal(t, "REPORT\nCOMPLETE DOCUMENT EXTRACTION\n==================================================\n\n", noSub)
}

func TestStructured(t *testing.T) {
	got := Structured(sampleDocument(), "TINDA-GO")
	rule := "==================================================\n"
	want := "TINDA-GO: STRUCTURED CONTENT BY SECTIONS\n" + rule + "\n" +
		"## INTRODUCTION\n------------------------------\nThis project is about inventory.\n\n\n" + rule + "\n" +
		"## OBJECTIVES\n------------------------------\n1. Track stock.\n\n\n" + rule + "\n"
	assert.Equal(t, want, got)
}

func TestAIReady(t *testing.T) {
	want := "Introduction:\nThis project is about inventory.\n\n\n\n" +
		"Objectives:\n1. Track stock.\n\n\n\n"
	assert.Equal(t, want, AIReady(sampleDocument()))
}

func TestIsManifest(t *testing.T) {
	assert.True(t, IsManifest("tindago_sections_20260314_092653.yaml"))
	assert.False(t, IsManifest("tindago_structured_20260314_092653.txt"))
	assert.False(t, IsManifest("export.yaml"))
}
