package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
)

// Section body builders. Every builder tolerates missing or empty optional
// fields by omitting the corresponding markup; none of them can fail.

var skillLevelLabels = map[Locale]map[cv.SkillLevel]string{
	LocaleEN: {
		cv.SkillBeginner:     "Beginner",
		cv.SkillIntermediate: "Intermediate",
		cv.SkillAdvanced:     "Advanced",
		cv.SkillExpert:       "Expert",
	},
	LocaleTR: {
		cv.SkillBeginner:     "Başlangıç",
		cv.SkillIntermediate: "Orta",
		cv.SkillAdvanced:     "İleri",
		cv.SkillExpert:       "Uzman",
	},
}

var languageProficiencyLabels = map[Locale]map[cv.LanguageProficiency]string{
	LocaleEN: {
		cv.LanguageBasic:          "Basic",
		cv.LanguageConversational: "Conversational",
		cv.LanguageProfessional:   "Professional",
		cv.LanguageNative:         "Native",
	},
	LocaleTR: {
		cv.LanguageBasic:          "Temel",
		cv.LanguageConversational: "Orta",
		cv.LanguageProfessional:   "Profesyonel",
		cv.LanguageNative:         "Ana dil",
	},
}

func skillLevelLabel(locale Locale, level cv.SkillLevel) string {
	if label, ok := skillLevelLabels[locale][level]; ok {
		return label
	}
	return skillLevelLabels[LocaleEN][level]
}

func languageProficiencyLabel(locale Locale, p cv.LanguageProficiency) string {
	if label, ok := languageProficiencyLabels[locale][p]; ok {
		return label
	}
	return languageProficiencyLabels[LocaleEN][p]
}

type sectionBuilder struct {
	c         customize.Customization
	locale    Locale
	freeText  func(string) template.HTML
	dotsTotal int
}

func newSectionBuilder(c customize.Customization, locale Locale, highlight bool) *sectionBuilder {
	freeText := plainText
	if highlight {
		freeText = highlightMetrics
	}
	return &sectionBuilder{c: c, locale: locale, freeText: freeText, dotsTotal: 5}
}

func (b *sectionBuilder) build(section cv.SectionID, data cv.CVData) template.HTML {
	switch section {
	case cv.SectionSummary:
		return b.summary(data.Summary)
	case cv.SectionExperience:
		return b.experience(data.Experience)
	case cv.SectionEducation:
		return b.education(data.Education)
	case cv.SectionSkills:
		return b.skills(data.Skills)
	case cv.SectionLanguages:
		return b.languages(data.Languages)
	case cv.SectionCertificates:
		return b.certificates(data.Certificates)
	default:
		return ""
	}
}

func (b *sectionBuilder) summary(text string) template.HTML {
	if text == "" {
		return ""
	}
	return `<p class="summary">` + b.freeText(text) + `</p>`
}

func (b *sectionBuilder) experience(entries []cv.Experience) template.HTML {
	if len(entries) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(`<div class="entry">`)
		sb.WriteString(`<div class="entry-head">`)
		if e.Position != "" {
			sb.WriteString(`<span class="entry-title">` + html.EscapeString(e.Position) + `</span>`)
		}
		if e.Company != "" {
			sb.WriteString(`<span class="entry-org">` + html.EscapeString(e.Company) + `</span>`)
		}
		if dates := FormatDateRange(e.StartDate, e.EndDate, e.Current, b.c.DateFormat, b.locale); dates != "" {
			sb.WriteString(`<span class="entry-dates">` + html.EscapeString(dates) + `</span>`)
		}
		sb.WriteString(`</div>`)
		if e.Description != "" {
			sb.WriteString(`<p class="entry-text">` + string(b.freeText(e.Description)) + `</p>`)
		}
		b.writeAchievements(&sb, e.Achievements)
		sb.WriteString(`</div>`)
	}
	return template.HTML(sb.String())
}

func (b *sectionBuilder) education(entries []cv.Education) template.HTML {
	if len(entries) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(`<div class="entry">`)
		sb.WriteString(`<div class="entry-head">`)
		degree := strings.TrimSpace(strings.Join(nonEmpty(e.Degree, e.FieldOfStudy), ", "))
		if degree != "" {
			sb.WriteString(`<span class="entry-title">` + html.EscapeString(degree) + `</span>`)
		}
		if e.Institution != "" {
			sb.WriteString(`<span class="entry-org">` + html.EscapeString(e.Institution) + `</span>`)
		}
		if dates := FormatDateRange(e.StartDate, e.EndDate, false, b.c.DateFormat, b.locale); dates != "" {
			sb.WriteString(`<span class="entry-dates">` + html.EscapeString(dates) + `</span>`)
		}
		sb.WriteString(`</div>`)
		if e.GPA != "" {
			sb.WriteString(`<p class="entry-text">GPA: ` + html.EscapeString(e.GPA) + `</p>`)
		}
		b.writeAchievements(&sb, e.Achievements)
		sb.WriteString(`</div>`)
	}
	return template.HTML(sb.String())
}

func (b *sectionBuilder) writeAchievements(sb *strings.Builder, achievements []string) {
	items := nonEmpty(achievements...)
	if len(items) == 0 {
		return
	}
	sb.WriteString(`<ul class="achievements">`)
	for _, a := range items {
		sb.WriteString(`<li>` + string(b.freeText(a)) + `</li>`)
	}
	sb.WriteString(`</ul>`)
}

func (b *sectionBuilder) skills(skills []cv.Skill) template.HTML {
	named := make([]cv.Skill, 0, len(skills))
	for _, s := range skills {
		if s.Name != "" {
			named = append(named, s)
		}
	}
	if len(named) == 0 {
		return ""
	}

	var sb strings.Builder
	switch b.c.SkillDisplay {
	case customize.SkillsTags:
		sb.WriteString(`<div class="tags">`)
		for _, s := range named {
			sb.WriteString(`<span class="tag">` + html.EscapeString(s.Name) + `</span>`)
		}
		sb.WriteString(`</div>`)
	case customize.SkillsCommaList:
		names := make([]string, 0, len(named))
		for _, s := range named {
			names = append(names, html.EscapeString(s.Name))
		}
		sb.WriteString(`<p class="comma-list">` + strings.Join(names, ", ") + `</p>`)
	case customize.SkillsBullets:
		sb.WriteString(`<ul class="skill-bullets">`)
		for _, s := range named {
			sb.WriteString(`<li>` + html.EscapeString(s.Name) +
				` <span class="muted">(` + html.EscapeString(skillLevelLabel(b.locale, s.Level)) + `)</span></li>`)
		}
		sb.WriteString(`</ul>`)
	case customize.SkillsRatingDots:
		for _, s := range named {
			sb.WriteString(`<div class="rated">`)
			sb.WriteString(`<span class="rated-name">` + html.EscapeString(s.Name) + `</span>`)
			b.writeDots(&sb, skillDots(s.Level), b.dotsTotal)
			sb.WriteString(`</div>`)
		}
	default:
		panic(fmt.Sprintf("render: unknown skill display %q", b.c.SkillDisplay))
	}
	return template.HTML(sb.String())
}

func (b *sectionBuilder) languages(languages []cv.Language) template.HTML {
	named := make([]cv.Language, 0, len(languages))
	for _, l := range languages {
		if l.Name != "" {
			named = append(named, l)
		}
	}
	if len(named) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, l := range named {
		sb.WriteString(`<div class="rated">`)
		sb.WriteString(`<span class="rated-name">` + html.EscapeString(l.Name) + `</span>`)
		sb.WriteString(`<span class="muted">` + html.EscapeString(languageProficiencyLabel(b.locale, l.Proficiency)) + `</span>`)
		b.writeDots(&sb, l.Proficiency.Ordinal(), 4)
		sb.WriteString(`</div>`)
	}
	return template.HTML(sb.String())
}

func (b *sectionBuilder) certificates(certs []cv.Certificate) template.HTML {
	named := make([]cv.Certificate, 0, len(certs))
	for _, c := range certs {
		if c.Name != "" {
			named = append(named, c)
		}
	}
	if len(named) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, c := range named {
		sb.WriteString(`<div class="entry">`)
		sb.WriteString(`<div class="entry-head">`)
		sb.WriteString(`<span class="entry-title">` + html.EscapeString(c.Name) + `</span>`)
		if c.Issuer != "" {
			sb.WriteString(`<span class="entry-org">` + html.EscapeString(c.Issuer) + `</span>`)
		}
		if date := FormatYearMonth(c.Date, b.c.DateFormat, b.locale); date != "" {
			sb.WriteString(`<span class="entry-dates">` + html.EscapeString(date) + `</span>`)
		}
		sb.WriteString(`</div>`)
		if c.CredentialID != "" {
			sb.WriteString(`<p class="entry-text muted">ID: ` + html.EscapeString(c.CredentialID) + `</p>`)
		}
		sb.WriteString(`</div>`)
	}
	return template.HTML(sb.String())
}

func (b *sectionBuilder) writeDots(sb *strings.Builder, filled, total int) {
	if filled < 0 {
		filled = 0
	}
	if filled > total {
		filled = total
	}
	sb.WriteString(`<span class="dots">`)
	for i := 0; i < total; i++ {
		if i < filled {
			sb.WriteString(`<span class="dot dot-filled"></span>`)
		} else {
			sb.WriteString(`<span class="dot"></span>`)
		}
	}
	sb.WriteString(`</span>`)
}

// skillDots maps the four skill levels onto 2..5 filled dots of five.
func skillDots(level cv.SkillLevel) int {
	ordinal := level.Ordinal()
	if ordinal == 0 {
		return 0
	}
	return ordinal + 1
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
