package cv

// SectionID names one of the six content blocks of a CV.
type SectionID string

const (
	SectionSummary      SectionID = "summary"
	SectionExperience   SectionID = "experience"
	SectionEducation    SectionID = "education"
	SectionSkills       SectionID = "skills"
	SectionLanguages    SectionID = "languages"
	SectionCertificates SectionID = "certificates"
)

// AllSections lists every known section in canonical order.
func AllSections() []SectionID {
	return []SectionID{
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionLanguages,
		SectionCertificates,
	}
}

// SectionRank pairs a section with its numeric position in the layout.
type SectionRank struct {
	Section SectionID `json:"section"`
	Rank    int       `json:"rank"`
}

// DefaultSectionOrder returns the canonical order: summary, experience,
// education, skills, languages, certificates with ranks 0..5.
func DefaultSectionOrder() []SectionRank {
	sections := AllSections()
	order := make([]SectionRank, 0, len(sections))
	for i, s := range sections {
		order = append(order, SectionRank{Section: s, Rank: i})
	}
	return order
}

// DefaultSectionVisibility marks every known section visible.
func DefaultSectionVisibility() map[SectionID]bool {
	visibility := make(map[SectionID]bool, len(AllSections()))
	for _, s := range AllSections() {
		visibility[s] = true
	}
	return visibility
}
