package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docextract/pkg/types"
)

func TestBuild(t *testing.T) {
	doc := &types.Document{Sections: []types.Section{
		{Name: "Introduction", Body: "This project is about inventory.\n\n"},
		{Name: "Objectives", Body: "1. Track stock.\n\n"},
	}}
	cfg := types.SummaryConfig{
		Title:       "TINDA-GO",
		TechStack:   []string{"Frontend: React Native"},
		KeyFeatures: []string{"Sales tracking and reporting"},
	}

	want := "TINDA-GO PROJECT SUMMARY\n" +
		"==============================\n\n" +
		"PROJECT OVERVIEW:\nThis project is about inventory.\n\n...\n\n" +
		"MAIN OBJECTIVES:\n1. Track stock.\n\n...\n\n" +
		"TECHNICAL STACK IDENTIFIED:\n- Frontend: React Native\n\n" +
		"KEY FEATURES:\n- Sales tracking and reporting\n\n"

	assert.Equal(t, want, Build(doc, cfg))
}

func TestBuildOmitsMissingSections(t *testing.T) {
	doc := &types.Document{Sections: []types.Section{{Name: "Design", Body: "Schema.\n\n"}}}

	got := Build(doc, DefaultConfig())
	assert.NotContains(t, got, "PROJECT OVERVIEW:")
	assert.NotContains(t, got, "MAIN OBJECTIVES:")
	assert.Contains(t, got, "- Backend: Firebase Firestore\n")
	assert.Contains(t, got, "- Admin dashboard for store approval\n")
}

func TestBuildTruncatesByRunes(t *testing.T) {
	body := strings.Repeat("ñ", 600)
	doc := &types.Document{Sections: []types.Section{
		{Name: "Introduction", Body: body},
		{Name: "Objectives", Body: body},
	}}

	got := Build(doc, types.SummaryConfig{Title: "X"})

	overview := "PROJECT OVERVIEW:\n" + strings.Repeat("ñ", 500) + "...\n\n"
	objectives := "MAIN OBJECTIVES:\n" + strings.Repeat("ñ", 400) + "...\n\n"
	require.Contains(t, got, overview)
	require.Contains(t, got, objectives)
}
