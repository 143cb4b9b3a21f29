// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docextract/pkg/types"
)

// --- Clean ---

func TestClean(t *testing.T) {
	s := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses whitespace", "This   project\t is   about inventory.", "This project is about inventory."},
		{"joins lines", "First line here\nsecond line here", "First line here second line here"},
		{"drops short lines", "ok\nThis line stays.", "This line stays."},
		{"drops institution header", "STI College Ortigas-Cainta\nBody text here.", "Body text here."},
		{"drops bare page number", "Body text here.\n42", "Body text here."},
		{"drops page label", "Page 7\nBody text here.\nPage 7 of 120", "Body text here."},
		{"drops lone figure label", "Figure 3:\nThe context diagram shows flows.", "The context diagram shows flows."},
		{"drops dotted figure label", "Fig. 2.1\nBody text here.", "Body text here."},
		{"keeps figure caption with text", "Figure 3: Context diagram", "Figure 3: Context diagram"},
		{"keeps numbered list item", "1. Track stock.", "1. Track stock."},
		{"fixes sentence spacing", "Stock is low.Reorder now!Why?Because", "Stock is low. Reorder now! Why? Because"},
		{"only figure label", "Figure 3:", ""},
		{"only noise", "12\nPage 3\nab", ""},
		{"fragments forming a figure label", "Figure\n12:", ""},
		{"crlf line endings", "First line here\r\nsecond line here\r\n", "First line here second line here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	s := Default()

	inputs := []string{
		"STI College header\nIntroduction\nThis project is about inventory.",
		"Objectives\n1. Track stock.",
		"Figure 3:",
		"STI\nCollege of Computing\nBody.Text",
		"Figure\n12:",
		"  lots   of\t\tspace  \n\n\n and.More?Yes!No",
		"U.S.A. is.A country",
		"Page\n3",
		"ab\ncd",
		"Résumé line one\nÜber line two.Ça va",
	}

	for _, in := range inputs {
		once := s.Clean(in)
		assert.Equal(t, once, s.Clean(once), "Clean not idempotent for %q", in)
	}
}

func TestCleanDropsPageThatRebuildsHeaderPrefix(t *testing.T) {
	s := Default()

	// Each line survives alone, but the joined text starts with a header
	// prefix and would be dropped by a second pass.
	in := "STI\nCollege students use the app daily to record sales."
	once := s.Clean(in)
	assert.Empty(t, once)
	assert.Equal(t, once, s.Clean(once))
}

func TestIsBoilerplate(t *testing.T) {
	s := Default()

	assert.True(t, s.IsBoilerplate("STI College Ortigas"))
	assert.True(t, s.IsBoilerplate("123"))
	assert.True(t, s.IsBoilerplate("PAGE 4"))
	assert.True(t, s.IsBoilerplate("Figure 10"))
	assert.False(t, s.IsBoilerplate("Pages are numbered at the bottom"))
	assert.False(t, s.IsBoilerplate("2024 was the pilot year"))
}

func TestCustomHeaderPrefixes(t *testing.T) {
	s, err := New(types.SegmentConfig{HeaderPrefixes: []string{"ACME University"}})
	require.NoError(t, err)

	assert.Equal(t, "Body text here.", s.Clean("ACME University Thesis\nBody text here."))
	assert.Equal(t, "STI College header Body text here.", s.Clean("STI College header\nBody text here."))
}

// --- DetectHeading ---

func TestDetectHeading(t *testing.T) {
	s := Default()

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"Introduction This project is about inventory.", "Introduction", true},
		{"INTRODUCTION", "Introduction", true},
		{"SCOPE AND LIMITATIONS The study covers...", "Scope And Limitations", true},
		{"purpose and description of the app", "Purpose And Description", true},
		{"LITERATURE REVIEW Prior systems", "Literature Review", true},
		{"Review of Related Literature Foreign studies", "Review Of Related Literature", true},
		{"REFERENCES Smith, J.", "References", true},
		{"Designing the schema", "", false},
		{"The introduction is below", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := s.DetectHeading(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectHeadingOnlyInspectsWindow(t *testing.T) {
	s, err := New(types.SegmentConfig{Headings: []string{`(?i)(METHODOLOGY)`}})
	require.NoError(t, err)

	near := strings.Repeat("x", 80) + " Methodology"
	far := strings.Repeat("x", 120) + " Methodology"

	_, ok := s.DetectHeading(near)
	assert.True(t, ok)
	_, ok = s.DetectHeading(far)
	assert.False(t, ok)
}

func TestDetectHeadingOrderWins(t *testing.T) {
	s, err := New(types.SegmentConfig{Headings: []string{
		`(?i)^(Design)`,
		`(?i)^(Design Requirements)`,
	}})
	require.NoError(t, err)

	got, ok := s.DetectHeading("Design Requirements for the ordering module")
	require.True(t, ok)
	assert.Equal(t, "Design", got)
}

func TestDetectHeadingWithoutGroupUsesWholeMatch(t *testing.T) {
	s, err := New(types.SegmentConfig{Headings: []string{`(?i)^chapter \d+`}})
	require.NoError(t, err)

	got, ok := s.DetectHeading("CHAPTER 2 The Study")
	require.True(t, ok)
	assert.Equal(t, "Chapter 2", got)
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New(types.SegmentConfig{Headings: []string{`(unclosed`}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling heading pattern 0")
}

// --- Segment ---

func TestSegmentScenario(t *testing.T) {
	doc := Default().Segment([]string{
		"STI College header\nIntroduction\nThis project is about inventory.",
		"Objectives\n1. Track stock.",
	})

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, []string{"Introduction", "Objectives"}, doc.SectionNames())

	intro, ok := doc.Section("Introduction")
	require.True(t, ok)
	assert.Equal(t, "This project is about inventory.\n\n", intro.Body)
	assert.Equal(t, 1, intro.FirstPage)

	obj, ok := doc.Section("Objectives")
	require.True(t, ok)
	assert.Equal(t, "1. Track stock.\n\n", obj.Body)
	assert.Equal(t, []int{2}, obj.Pages)

	wantFull := "--- PAGE 1 ---\nIntroduction This project is about inventory.\n\n" +
		"--- PAGE 2 ---\nObjectives 1. Track stock.\n\n"
	assert.Equal(t, wantFull, doc.FullText)
	assert.Equal(t, 2, doc.PageCount)
}

func TestSegmentNoHeadingsUsesDefaultSection(t *testing.T) {
	doc := Default().Segment([]string{
		"The store owner opens the app.",
		"Customers browse the catalog.",
	})

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, DefaultSectionName, doc.Sections[0].Name)
	assert.Equal(t, "The store owner opens the app.\n\nCustomers browse the catalog.\n\n", doc.Sections[0].Body)
	assert.Equal(t, []int{1, 2}, doc.Sections[0].Pages)
}

func TestSegmentCustomDefaultSection(t *testing.T) {
	s, err := New(types.SegmentConfig{DefaultSection: "Front Matter"})
	require.NoError(t, err)

	doc := s.Segment([]string{"Approval sheet for the thesis."})
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Front Matter", doc.Sections[0].Name)
}

func TestSegmentSkipsBlankPages(t *testing.T) {
	doc := Default().Segment([]string{"", "   \n", "Body on page three."})

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, []int{3}, doc.Sections[0].Pages)
	assert.Equal(t, "--- PAGE 3 ---\nBody on page three.\n\n", doc.FullText)
	assert.Equal(t, 3, doc.PageCount)
}

func TestSegmentKeepsMarkerForPageCleanedToNothing(t *testing.T) {
	doc := Default().Segment([]string{"Body on page one.", "Figure 3:", "Body on page three."})

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, []int{1, 3}, doc.Sections[0].Pages)
	assert.Equal(t, "Body on page one.\n\nBody on page three.\n\n", doc.Sections[0].Body)
	assert.Equal(t,
		"--- PAGE 1 ---\nBody on page one.\n\n"+
			"--- PAGE 2 ---\n\n\n"+
			"--- PAGE 3 ---\nBody on page three.\n\n",
		doc.FullText)
}

func TestSegmentUnanchoredHeadingKeepsPageText(t *testing.T) {
	s, err := New(types.SegmentConfig{Headings: []string{`(?i)(METHODOLOGY)`}})
	require.NoError(t, err)

	page := "We followed agile sprints as our Methodology and iterated weekly."
	doc := s.Segment([]string{page, "Methodology: retrospectives every Friday."})

	require.Len(t, doc.Sections, 1)
	sec := doc.Sections[0]
	assert.Equal(t, "Methodology", sec.Name)
	assert.Equal(t, page+"\n\nretrospectives every Friday.\n\n", sec.Body)
	assert.Equal(t, []int{1, 2}, sec.Pages)
}

func TestSegmentReturningSectionAppends(t *testing.T) {
	doc := Default().Segment([]string{
		"Design\nArchitecture overview.",
		"References\nSmith, J. (2020).",
		"DESIGN\nDatabase schema.",
		"More schema notes.",
	})

	assert.Equal(t, []string{"Design", "References"}, doc.SectionNames())

	design, ok := doc.Section("Design")
	require.True(t, ok)
	assert.Equal(t, "Architecture overview.\n\nDatabase schema.\n\nMore schema notes.\n\n", design.Body)
	assert.Equal(t, []int{1, 3, 4}, design.Pages)
}

func TestSegmentEveryPageInExactlyOneSection(t *testing.T) {
	pages := []string{
		"Preface text.",
		"Introduction\nIntro body one.",
		"Intro body two.",
		"Methodology\nAgile sprints.",
		"",
		"Requirements\nAndroid 10 or later.",
		"Sprint retrospectives.",
	}
	doc := Default().Segment(pages)

	seen := make(map[int]int)
	for _, sec := range doc.Sections {
		prev := 0
		for _, p := range sec.Pages {
			assert.Greater(t, p, prev, "pages out of order in %s", sec.Name)
			prev = p
			seen[p]++
		}
	}
	for _, p := range []int{1, 2, 3, 4, 6, 7} {
		assert.Equal(t, 1, seen[p], "page %d", p)
	}
	assert.Zero(t, seen[5])

	intro, _ := doc.Section("Introduction")
	assert.Equal(t, "Preface text.\n\nIntro body one.\n\nIntro body two.\n\n", intro.Body)
}

func TestSegmentHeadingOnlyPage(t *testing.T) {
	doc := Default().Segment([]string{"APPENDICES", "Appendix A: Survey form."})

	require.Len(t, doc.Sections, 1)
	app := doc.Sections[0]
	assert.Equal(t, "Appendices", app.Name)
	assert.Equal(t, 1, app.FirstPage)
	assert.Equal(t, []int{2}, app.Pages)
	assert.Equal(t, "Appendix A: Survey form.\n\n", app.Body)
}

func TestSegmentEmptyInput(t *testing.T) {
	doc := Default().Segment(nil)
	assert.Empty(t, doc.Sections)
	assert.Empty(t, doc.FullText)
	assert.Zero(t, doc.PageCount)
}
