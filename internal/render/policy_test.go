package render

import (
	"reflect"
	"testing"

	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
)

func TestVisibleSectionsFiltersEmptyAndHidden(t *testing.T) {
	data := cv.NewCVData()
	data.Summary = "text"
	data.Experience = []cv.Experience{cv.NewExperience()}
	data.Skills = []cv.Skill{{ID: "s", Name: "Go", Level: cv.SkillAdvanced}}
	data.SectionVisibility[cv.SectionSkills] = false

	got := VisibleSections(data)
	want := []cv.SectionID{cv.SectionSummary, cv.SectionExperience}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVisibleSectionsSortsByRank(t *testing.T) {
	data := cv.NewCVData()
	data.Summary = "text"
	data.Experience = []cv.Experience{cv.NewExperience()}
	data.SectionOrder = []cv.SectionRank{
		{Section: cv.SectionSummary, Rank: 5},
		{Section: cv.SectionExperience, Rank: 0},
		{Section: cv.SectionEducation, Rank: 1},
		{Section: cv.SectionSkills, Rank: 2},
		{Section: cv.SectionLanguages, Rank: 3},
		{Section: cv.SectionCertificates, Rank: 4},
	}

	got := VisibleSections(data)
	want := []cv.SectionID{cv.SectionExperience, cv.SectionSummary}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestVisibleSectionsTieBreakKeepsInsertionOrder(t *testing.T) {
	data := cv.NewCVData()
	data.Summary = "text"
	data.Experience = []cv.Experience{cv.NewExperience()}
	// Equal ranks keep the original array position.
	data.SectionOrder = []cv.SectionRank{
		{Section: cv.SectionExperience, Rank: 1},
		{Section: cv.SectionSummary, Rank: 1},
		{Section: cv.SectionEducation, Rank: 2},
		{Section: cv.SectionSkills, Rank: 3},
		{Section: cv.SectionLanguages, Rank: 4},
		{Section: cv.SectionCertificates, Rank: 5},
	}

	got := VisibleSections(data)
	want := []cv.SectionID{cv.SectionExperience, cv.SectionSummary}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFormatYearMonth(t *testing.T) {
	cases := []struct {
		value  string
		format customize.DateFormat
		locale Locale
		want   string
	}{
		{"2024-03", customize.DateYearOnly, LocaleEN, "2024"},
		{"2024-03", customize.DateShort, LocaleEN, "Mar 2024"},
		{"2024-03", customize.DateFull, LocaleEN, "March 2024"},
		{"2024-03", customize.DateFull, LocaleTR, "Mart 2024"},
		{"2024-08", customize.DateShort, LocaleTR, "Ağu 2024"},
		{"", customize.DateFull, LocaleEN, ""},
		{"", customize.DateShort, LocaleEN, ""},
		{"", customize.DateYearOnly, LocaleEN, ""},
		{"garbage", customize.DateShort, LocaleEN, "garbage"},
	}
	for _, tc := range cases {
		if got := FormatYearMonth(tc.value, tc.format, tc.locale); got != tc.want {
			t.Errorf("FormatYearMonth(%q, %q, %q) = %q, want %q",
				tc.value, tc.format, tc.locale, got, tc.want)
		}
	}
}

func TestFormatDateRangeCurrentPosition(t *testing.T) {
	got := FormatDateRange("2020-01", "", true, customize.DateShort, LocaleEN)
	if got != "Jan 2020 – Present" {
		t.Errorf("unexpected range: %q", got)
	}

	got = FormatDateRange("2020-01", "", true, customize.DateShort, LocaleTR)
	if got != "Oca 2020 – Devam ediyor" {
		t.Errorf("unexpected range: %q", got)
	}
}

func TestCatalogLookups(t *testing.T) {
	all := All()
	if len(all) != 11 {
		t.Fatalf("expected 11 templates, got %d", len(all))
	}

	seen := map[TemplateID]bool{}
	for _, m := range all {
		if seen[m.ID] {
			t.Errorf("duplicate template id %q", m.ID)
		}
		seen[m.ID] = true
		if m.ATSScore < 0 || m.ATSScore > 100 {
			t.Errorf("template %q ats score out of range: %d", m.ID, m.ATSScore)
		}
		if _, ok := descriptors[m.ID]; !ok {
			t.Errorf("template %q has no layout descriptor", m.ID)
		}
		if desc := descriptors[m.ID]; (desc.shape == ShapeTwoColumn) != (m.Layout == ShapeTwoColumn) {
			t.Errorf("template %q descriptor shape disagrees with metadata", m.ID)
		}
	}

	if _, ok := Get("brutalist"); ok {
		t.Error("unknown id must report ok=false")
	}
	meta, ok := Get(TemplateFinance)
	if !ok || meta.ID != TemplateFinance {
		t.Errorf("Get(finance) = %+v, %v", meta, ok)
	}

	if got := ByCategory(CategoryMinimal); len(got) != 2 {
		t.Errorf("expected 2 minimal templates, got %d", len(got))
	}
	twoCol := ByLayout(ShapeTwoColumn)
	for _, m := range twoCol {
		if m.Layout != ShapeTwoColumn {
			t.Errorf("ByLayout returned %q with layout %q", m.ID, m.Layout)
		}
	}
}
