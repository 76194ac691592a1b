package cv

import (
	"reflect"
	"testing"
)

func TestDefaultSectionOrder(t *testing.T) {
	order := DefaultSectionOrder()
	if len(order) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(order))
	}
	want := []SectionID{
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionLanguages,
		SectionCertificates,
	}
	for i, entry := range order {
		if entry.Section != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], entry.Section)
		}
		if entry.Rank != i {
			t.Errorf("section %q: expected rank %d, got %d", entry.Section, i, entry.Rank)
		}
	}
}

func TestDraftConstructorsGenerateIDsAndDefaults(t *testing.T) {
	exp := NewExperience()
	if exp.ID == "" {
		t.Error("experience id must not be empty")
	}
	if exp.Company != "" || exp.Position != "" || exp.Current {
		t.Errorf("experience defaults not blank: %+v", exp)
	}

	edu := NewEducation()
	if edu.ID == "" {
		t.Error("education id must not be empty")
	}

	skill := NewSkill()
	if skill.ID == "" {
		t.Error("skill id must not be empty")
	}
	if skill.Level != SkillIntermediate {
		t.Errorf("expected default level %q, got %q", SkillIntermediate, skill.Level)
	}

	lang := NewLanguage()
	if lang.ID == "" {
		t.Error("language id must not be empty")
	}
	if lang.Proficiency != LanguageConversational {
		t.Errorf("expected default proficiency %q, got %q", LanguageConversational, lang.Proficiency)
	}

	cert := NewCertificate()
	if cert.ID == "" {
		t.Error("certificate id must not be empty")
	}

	if NewSkill().ID == skill.ID {
		t.Error("ids must be freshly generated per call")
	}
}

func TestEmptyPatchIsIdentity(t *testing.T) {
	original := Skill{ID: "s-1", Name: "Go", Level: SkillExpert}
	patched := original.Apply(SkillPatch{})
	if !reflect.DeepEqual(original, patched) {
		t.Errorf("empty patch changed value: %+v != %+v", original, patched)
	}

	exp := Experience{
		ID:           "e-1",
		Company:      "Acme",
		Position:     "Engineer",
		StartDate:    "2020-01",
		EndDate:      "2022-06",
		Description:  "built things",
		Achievements: []string{"shipped"},
	}
	if got := exp.Apply(ExperiencePatch{}); !reflect.DeepEqual(exp, got) {
		t.Errorf("empty patch changed value: %+v != %+v", exp, got)
	}
}

func TestPatchAppliesOnlySetFields(t *testing.T) {
	name := "Rust"
	patched := Skill{ID: "s-1", Name: "Go", Level: SkillExpert}.Apply(SkillPatch{Name: &name})
	if patched.Name != "Rust" {
		t.Errorf("expected name Rust, got %q", patched.Name)
	}
	if patched.Level != SkillExpert {
		t.Errorf("level must be untouched, got %q", patched.Level)
	}
	if patched.ID != "s-1" {
		t.Errorf("id must never change, got %q", patched.ID)
	}
}

func TestValidateExperienceDateOrdering(t *testing.T) {
	base := CVData{
		PersonalInfo: PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		SectionOrder: DefaultSectionOrder(),
	}

	base.Experience = []Experience{{
		ID:        "e-1",
		StartDate: "2022-06",
		EndDate:   "2020-01",
		Current:   false,
	}}
	err := ValidateCVData(base)
	if err == nil {
		t.Fatal("expected validation error for end before start")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	base.Experience[0].Current = true
	base.Experience[0].EndDate = ""
	if err := ValidateCVData(base); err != nil {
		t.Fatalf("current position without end date must pass, got: %v", err)
	}
}

func TestValidateEducationOrderingIsCommitOnly(t *testing.T) {
	// Education date ordering is only checked by the strict validator.
	data := CVData{
		PersonalInfo: PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		SectionOrder: DefaultSectionOrder(),
		Education: []Education{{
			ID:        "ed-1",
			StartDate: "2021-09",
			EndDate:   "2019-06",
		}},
	}
	if err := ValidateCVData(data); err == nil {
		t.Fatal("expected strict validation to flag education date ordering")
	}
}

func TestValidateSectionOrderInvariant(t *testing.T) {
	data := CVData{
		PersonalInfo: PersonalInfo{FullName: "Ada", Email: "ada@example.com"},
		SectionOrder: DefaultSectionOrder()[:5], // drop one section
	}
	if err := ValidateCVData(data); err == nil {
		t.Fatal("expected missing section to fail validation")
	}

	dup := append(DefaultSectionOrder(), SectionRank{Section: SectionSummary, Rank: 9})
	data.SectionOrder = dup
	if err := ValidateCVData(data); err == nil {
		t.Fatal("expected duplicate section to fail validation")
	}
}

func TestNormalizeFillsMissingSections(t *testing.T) {
	d := CVData{
		SectionOrder:      []SectionRank{{Section: SectionExperience, Rank: 0}},
		SectionVisibility: map[SectionID]bool{SectionExperience: false},
	}
	d.Normalize()

	if len(d.SectionOrder) != 6 {
		t.Fatalf("expected 6 section order entries, got %d", len(d.SectionOrder))
	}
	if d.SectionVisibility[SectionExperience] {
		t.Error("existing visibility flag must be preserved")
	}
	if !d.SectionVisibility[SectionSummary] {
		t.Error("missing visibility flags must default to visible")
	}
	if err := validateSectionOrder(d.SectionOrder); err != nil {
		t.Errorf("normalized order must satisfy the invariant: %v", err)
	}
}
