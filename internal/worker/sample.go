package worker

import "cvstudio/internal/cv"

// sampleCVData is the fixture shown on every catalog thumbnail.
func sampleCVData() cv.CVData {
	data := cv.NewCVData()
	data.PersonalInfo = cv.PersonalInfo{
		FullName: "Jordan Avery",
		Title:    "Senior Product Designer",
		Email:    "jordan.avery@example.com",
		Phone:    "+1 555 010 2030",
		Location: "Berlin, Germany",
	}
	data.Summary = "Product designer with eight years of experience shipping design systems and accessible interfaces for consumer platforms."
	data.Experience = []cv.Experience{
		{
			ID:          "sample-exp-1",
			Company:     "Northwind Labs",
			Position:    "Senior Product Designer",
			StartDate:   "2021-03",
			Current:     true,
			Description: "Leads the design system used across four product lines.",
			Achievements: []string{
				"Cut design-to-build handoff time by 40%",
				"Mentors a team of three designers",
			},
		},
		{
			ID:          "sample-exp-2",
			Company:     "Acme Digital",
			Position:    "Product Designer",
			StartDate:   "2017-06",
			EndDate:     "2021-02",
			Description: "Owned onboarding and checkout flows for the consumer app.",
		},
	}
	data.Education = []cv.Education{
		{
			ID:           "sample-edu-1",
			Institution:  "University of the Arts Berlin",
			Degree:       "BA",
			FieldOfStudy: "Communication Design",
			StartDate:    "2012-10",
			EndDate:      "2016-09",
		},
	}
	data.Skills = []cv.Skill{
		{ID: "sample-skill-1", Name: "Figma", Level: cv.SkillExpert},
		{ID: "sample-skill-2", Name: "Design Systems", Level: cv.SkillExpert},
		{ID: "sample-skill-3", Name: "Prototyping", Level: cv.SkillAdvanced},
		{ID: "sample-skill-4", Name: "HTML & CSS", Level: cv.SkillIntermediate},
	}
	data.Languages = []cv.Language{
		{ID: "sample-lang-1", Name: "English", Proficiency: cv.LanguageNative},
		{ID: "sample-lang-2", Name: "German", Proficiency: cv.LanguageProfessional},
	}
	return data
}
