package cv

import "github.com/google/uuid"

// SkillLevel is the ordinal proficiency scale for skills.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Ordinal maps the level onto 1..4; unknown values map to 0.
func (l SkillLevel) Ordinal() int {
	switch l {
	case SkillBeginner:
		return 1
	case SkillIntermediate:
		return 2
	case SkillAdvanced:
		return 3
	case SkillExpert:
		return 4
	default:
		return 0
	}
}

// LanguageProficiency is the ordinal scale for languages. It is deliberately
// a distinct scale from SkillLevel.
type LanguageProficiency string

const (
	LanguageBasic          LanguageProficiency = "basic"
	LanguageConversational LanguageProficiency = "conversational"
	LanguageProfessional   LanguageProficiency = "professional"
	LanguageNative         LanguageProficiency = "native"
)

// Ordinal maps the proficiency onto 1..4; unknown values map to 0.
func (p LanguageProficiency) Ordinal() int {
	switch p {
	case LanguageBasic:
		return 1
	case LanguageConversational:
		return 2
	case LanguageProfessional:
		return 3
	case LanguageNative:
		return 4
	default:
		return 0
	}
}

// Experience is one employment entry. Dates use "YYYY-MM" granularity.
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education is one study entry; same date granularity as Experience.
type Education struct {
	ID           string   `json:"id"`
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	FieldOfStudy string   `json:"field_of_study"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
}

// Skill is one named skill with an ordinal level.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Language is one spoken language with an ordinal proficiency.
type Language struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Proficiency LanguageProficiency `json:"proficiency"`
}

// Certificate is one certification entry.
type Certificate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	URL          string `json:"url,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
}

// NewExperience returns a blank draft entry with a fresh id.
func NewExperience() Experience {
	return Experience{ID: uuid.NewString(), Achievements: []string{}}
}

// NewEducation returns a blank draft entry with a fresh id.
func NewEducation() Education {
	return Education{ID: uuid.NewString(), Achievements: []string{}}
}

// NewSkill returns a draft skill at the intermediate level.
func NewSkill() Skill {
	return Skill{ID: uuid.NewString(), Level: SkillIntermediate}
}

// NewLanguage returns a draft language at conversational proficiency.
func NewLanguage() Language {
	return Language{ID: uuid.NewString(), Proficiency: LanguageConversational}
}

// NewCertificate returns a blank draft certificate with a fresh id.
func NewCertificate() Certificate {
	return Certificate{ID: uuid.NewString()}
}
