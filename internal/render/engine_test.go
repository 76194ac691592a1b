package render

import (
	"strings"
	"testing"

	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
)

func sampleCV() cv.CVData {
	data := cv.NewCVData()
	data.PersonalInfo = cv.PersonalInfo{
		FullName: "Ada Lovelace",
		Title:    "Engineer",
		Email:    "ada@example.com",
		Phone:    "+44 1234",
		Location: "London",
	}
	data.Summary = "Analytical engineer with a decade of experience."
	data.Experience = []cv.Experience{{
		ID:        "e-1",
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: "2020-01",
		EndDate:   "2022-06",
		Current:   false,
	}}
	data.Skills = []cv.Skill{{ID: "s-1", Name: "Go", Level: cv.SkillExpert}}
	return data
}

func TestRenderScenarioExperienceSubstrings(t *testing.T) {
	c := customize.Default()
	c.DateFormat = customize.DateShort

	html, err := Render(TemplateClassic, sampleCV(), c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"Ada Lovelace", "Acme", "Jan 2020", "Jun 2022"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderAppliesFontStack(t *testing.T) {
	c := customize.Default()
	c.FontFamily = customize.FontMerriweather

	html, err := Render(TemplateClassic, sampleCV(), c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `font-family: 'Merriweather', Georgia, 'Times New Roman', serif;`
	if !strings.Contains(html, want) {
		t.Errorf("rendered document missing %q", want)
	}
	if strings.Contains(html, "ZgotmplZ") {
		t.Error("font stack was rejected by the template sanitizer")
	}
}

func TestRenderOmitsEmptyExperienceSection(t *testing.T) {
	data := sampleCV()
	data.Experience = nil
	data.SectionVisibility[cv.SectionExperience] = true

	for _, meta := range All() {
		html, err := Render(meta.ID, data, customize.Default(), LocaleEN)
		if err != nil {
			t.Fatalf("render %s: %v", meta.ID, err)
		}
		if strings.Contains(html, `id="section-experience"`) {
			t.Errorf("template %s drew an empty experience section", meta.ID)
		}
	}
}

func TestRenderOmitsHiddenExperienceSection(t *testing.T) {
	data := sampleCV()
	data.SectionVisibility[cv.SectionExperience] = false

	for _, meta := range All() {
		html, err := Render(meta.ID, data, customize.Default(), LocaleEN)
		if err != nil {
			t.Fatalf("render %s: %v", meta.ID, err)
		}
		if strings.Contains(html, `id="section-experience"`) {
			t.Errorf("template %s drew a hidden experience section", meta.ID)
		}
	}
}

func TestRenderRatingDots(t *testing.T) {
	c := customize.Default()
	c.SkillDisplay = customize.SkillsRatingDots

	data := sampleCV()
	data.Skills = []cv.Skill{{ID: "s-1", Name: "Go", Level: cv.SkillExpert}}
	html, err := Render(TemplateClassic, data, c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// Count the element markup, not the bare class name: the stylesheet
	// mentions dot-filled in two rules of its own.
	if got := strings.Count(html, `class="dot dot-filled"`); got != 5 {
		t.Errorf("expert skill: expected 5 filled dots, got %d", got)
	}

	data.Skills = []cv.Skill{{ID: "s-1", Name: "Go", Level: cv.SkillBeginner}}
	html, err = Render(TemplateClassic, data, c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(html, `class="dot dot-filled"`); got != 2 {
		t.Errorf("beginner skill: expected 2 filled dots, got %d", got)
	}
	if got := strings.Count(html, `<span class="dot"></span>`); got != 3 {
		t.Errorf("beginner skill: expected 3 empty dots, got %d", got)
	}
}

func TestRenderNeverFailsOnEmptyDraft(t *testing.T) {
	empty := cv.NewCVData()
	for _, meta := range All() {
		html, err := Render(meta.ID, empty, customize.Default(), LocaleEN)
		if err != nil {
			t.Fatalf("render %s on empty draft: %v", meta.ID, err)
		}
		if !strings.Contains(html, "a4-page") {
			t.Errorf("template %s produced no canvas", meta.ID)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("brutalist", sampleCV(), customize.Default(), LocaleEN)
	if err == nil {
		t.Fatal("expected unknown template error")
	}
	var unknown ErrUnknownTemplate
	if !errorsAs(err, &unknown) {
		t.Fatalf("expected ErrUnknownTemplate, got %T", err)
	}
}

func errorsAs(err error, target *ErrUnknownTemplate) bool {
	e, ok := err.(ErrUnknownTemplate)
	if ok {
		*target = e
	}
	return ok
}

func TestFinanceTemplateHighlightsMetrics(t *testing.T) {
	data := sampleCV()
	data.Experience[0].Description = "Cut costs by 35% and managed a $2.5M budget across 10,000 accounts."

	html, err := Render(TemplateFinance, data, customize.Default(), LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<strong>35%</strong>", "<strong>$2.5M</strong>", "<strong>10,000</strong>"} {
		if !strings.Contains(html, want) {
			t.Errorf("finance render missing %q", want)
		}
	}

	// Every other template leaves the text untouched.
	html, err = Render(TemplateClassic, data, customize.Default(), LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<strong>") {
		t.Error("classic template must not highlight metrics")
	}
}

func TestRenderPhotoConditional(t *testing.T) {
	data := sampleCV()
	data.PersonalInfo.Photo = "data:image/png;base64,aGk="

	c := customize.Default()
	c.ShowPhoto = true
	html, err := Render(TemplateClassic, data, c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, `class="photo" src="data:image/png;base64,aGk="`) {
		t.Error("expected photo to be drawn with the data URI intact")
	}

	c.ShowPhoto = false
	html, err = Render(TemplateClassic, data, c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, `class="photo"`) {
		t.Error("photo drawn although ShowPhoto is false")
	}

	c.ShowPhoto = true
	data.PersonalInfo.Photo = ""
	html, err = Render(TemplateClassic, data, c, LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, `class="photo"`) {
		t.Error("photo drawn although no photo value is present")
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	data := sampleCV()
	data.Summary = `<script>alert("x")</script>`

	html, err := Render(TemplateClassic, data, customize.Default(), LocaleEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("summary text must be escaped")
	}
}
