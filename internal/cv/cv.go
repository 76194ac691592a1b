// Package cv defines the canonical in-memory representation of one résumé
// and the draft constructors / typed patches that mutate it.
//
// Draft values are deliberately lenient: empty strings and missing optional
// fields are valid, unfinished states. Strict checks live in validate.go and
// run only at save/export boundaries.
package cv

// CVData is the aggregate root holding everything a template renders.
type CVData struct {
	PersonalInfo      PersonalInfo       `json:"personal_info"`
	Summary           string             `json:"summary"`
	Experience        []Experience       `json:"experience"`
	Education         []Education        `json:"education"`
	Skills            []Skill            `json:"skills"`
	Languages         []Language         `json:"languages"`
	Certificates      []Certificate      `json:"certificates"`
	SectionVisibility map[SectionID]bool `json:"section_visibility"`
	SectionOrder      []SectionRank      `json:"section_order"`
}

// PersonalInfo carries the header block of a CV. The photo is either a
// storage object key, a URL or a base64 data URI; templates do not care.
type PersonalInfo struct {
	FullName  string `json:"full_name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

// NewCVData returns an empty draft with the default section order and all
// sections visible.
func NewCVData() CVData {
	return CVData{
		Experience:        []Experience{},
		Education:         []Education{},
		Skills:            []Skill{},
		Languages:         []Language{},
		Certificates:      []Certificate{},
		SectionVisibility: DefaultSectionVisibility(),
		SectionOrder:      DefaultSectionOrder(),
	}
}

// Normalize fills in section order and visibility entries that older payloads
// may lack, so every stored CV satisfies the section-order invariant on read.
func (d *CVData) Normalize() {
	if d.SectionVisibility == nil {
		d.SectionVisibility = DefaultSectionVisibility()
	} else {
		for _, s := range AllSections() {
			if _, ok := d.SectionVisibility[s]; !ok {
				d.SectionVisibility[s] = true
			}
		}
	}

	known := make(map[SectionID]bool, len(d.SectionOrder))
	for _, entry := range d.SectionOrder {
		known[entry.Section] = true
	}
	maxRank := -1
	for _, entry := range d.SectionOrder {
		if entry.Rank > maxRank {
			maxRank = entry.Rank
		}
	}
	for _, s := range AllSections() {
		if !known[s] {
			maxRank++
			d.SectionOrder = append(d.SectionOrder, SectionRank{Section: s, Rank: maxRank})
		}
	}
}

// SectionEmpty reports whether the data backing a section has no content.
// Renderers suppress empty sections regardless of visibility.
func (d CVData) SectionEmpty(section SectionID) bool {
	switch section {
	case SectionSummary:
		return d.Summary == ""
	case SectionExperience:
		return len(d.Experience) == 0
	case SectionEducation:
		return len(d.Education) == 0
	case SectionSkills:
		return len(d.Skills) == 0
	case SectionLanguages:
		return len(d.Languages) == 0
	case SectionCertificates:
		return len(d.Certificates) == 0
	default:
		return true
	}
}
