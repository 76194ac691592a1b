package cv

// Typed partial patches per entity. A nil field leaves the current value
// untouched, so the zero patch is the identity. This replaces the dynamic
// "field/value" update style with compile-time field names.

// PersonalInfoPatch updates PersonalInfo field by field.
type PersonalInfoPatch struct {
	FullName  *string `json:"full_name,omitempty"`
	Title     *string `json:"title,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Website   *string `json:"website,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
	Photo     *string `json:"photo,omitempty"`
}

// Apply returns a copy of p with the patch applied.
func (p PersonalInfo) Apply(patch PersonalInfoPatch) PersonalInfo {
	setString(&p.FullName, patch.FullName)
	setString(&p.Title, patch.Title)
	setString(&p.Email, patch.Email)
	setString(&p.Phone, patch.Phone)
	setString(&p.Location, patch.Location)
	setString(&p.LinkedIn, patch.LinkedIn)
	setString(&p.Website, patch.Website)
	setString(&p.GitHub, patch.GitHub)
	setString(&p.Portfolio, patch.Portfolio)
	setString(&p.Photo, patch.Photo)
	return p
}

// ExperiencePatch updates an Experience entry.
type ExperiencePatch struct {
	Company      *string   `json:"company,omitempty"`
	Position     *string   `json:"position,omitempty"`
	StartDate    *string   `json:"start_date,omitempty"`
	EndDate      *string   `json:"end_date,omitempty"`
	Current      *bool     `json:"current,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
}

// Apply returns a copy of e with the patch applied. The id never changes.
func (e Experience) Apply(patch ExperiencePatch) Experience {
	setString(&e.Company, patch.Company)
	setString(&e.Position, patch.Position)
	setString(&e.StartDate, patch.StartDate)
	setString(&e.EndDate, patch.EndDate)
	if patch.Current != nil {
		e.Current = *patch.Current
	}
	setString(&e.Description, patch.Description)
	if patch.Achievements != nil {
		e.Achievements = append([]string(nil), (*patch.Achievements)...)
	}
	return e
}

// EducationPatch updates an Education entry.
type EducationPatch struct {
	Institution  *string   `json:"institution,omitempty"`
	Degree       *string   `json:"degree,omitempty"`
	FieldOfStudy *string   `json:"field_of_study,omitempty"`
	StartDate    *string   `json:"start_date,omitempty"`
	EndDate      *string   `json:"end_date,omitempty"`
	GPA          *string   `json:"gpa,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
}

// Apply returns a copy of e with the patch applied.
func (e Education) Apply(patch EducationPatch) Education {
	setString(&e.Institution, patch.Institution)
	setString(&e.Degree, patch.Degree)
	setString(&e.FieldOfStudy, patch.FieldOfStudy)
	setString(&e.StartDate, patch.StartDate)
	setString(&e.EndDate, patch.EndDate)
	setString(&e.GPA, patch.GPA)
	if patch.Achievements != nil {
		e.Achievements = append([]string(nil), (*patch.Achievements)...)
	}
	return e
}

// SkillPatch updates a Skill entry.
type SkillPatch struct {
	Name  *string     `json:"name,omitempty"`
	Level *SkillLevel `json:"level,omitempty"`
}

// Apply returns a copy of s with the patch applied.
func (s Skill) Apply(patch SkillPatch) Skill {
	setString(&s.Name, patch.Name)
	if patch.Level != nil {
		s.Level = *patch.Level
	}
	return s
}

// LanguagePatch updates a Language entry.
type LanguagePatch struct {
	Name        *string              `json:"name,omitempty"`
	Proficiency *LanguageProficiency `json:"proficiency,omitempty"`
}

// Apply returns a copy of l with the patch applied.
func (l Language) Apply(patch LanguagePatch) Language {
	setString(&l.Name, patch.Name)
	if patch.Proficiency != nil {
		l.Proficiency = *patch.Proficiency
	}
	return l
}

// CertificatePatch updates a Certificate entry.
type CertificatePatch struct {
	Name         *string `json:"name,omitempty"`
	Issuer       *string `json:"issuer,omitempty"`
	Date         *string `json:"date,omitempty"`
	URL          *string `json:"url,omitempty"`
	CredentialID *string `json:"credential_id,omitempty"`
}

// Apply returns a copy of c with the patch applied.
func (c Certificate) Apply(patch CertificatePatch) Certificate {
	setString(&c.Name, patch.Name)
	setString(&c.Issuer, patch.Issuer)
	setString(&c.Date, patch.Date)
	setString(&c.URL, patch.URL)
	setString(&c.CredentialID, patch.CredentialID)
	return c
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
