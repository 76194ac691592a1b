package render

import (
	"fmt"
	"strconv"
	"strings"

	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
)

// Locale selects month-name tables and the hardcoded section labels.
// It never affects data validation.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleTR Locale = "tr"
)

// ParseLocale normalizes a locale tag, falling back to English.
func ParseLocale(tag string) Locale {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "tr", "tr-tr":
		return LocaleTR
	default:
		return LocaleEN
	}
}

var monthsFull = map[Locale][12]string{
	LocaleEN: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	LocaleTR: {"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
		"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
}

var monthsShort = map[Locale][12]string{
	LocaleEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	LocaleTR: {"Oca", "Şub", "Mar", "Nis", "May", "Haz",
		"Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"},
}

var sectionLabels = map[Locale]map[cv.SectionID]string{
	LocaleEN: {
		cv.SectionSummary:      "Summary",
		cv.SectionExperience:   "Experience",
		cv.SectionEducation:    "Education",
		cv.SectionSkills:       "Skills",
		cv.SectionLanguages:    "Languages",
		cv.SectionCertificates: "Certificates",
	},
	LocaleTR: {
		cv.SectionSummary:      "Özet",
		cv.SectionExperience:   "Deneyim",
		cv.SectionEducation:    "Eğitim",
		cv.SectionSkills:       "Yetenekler",
		cv.SectionLanguages:    "Diller",
		cv.SectionCertificates: "Sertifikalar",
	},
}

var presentLabels = map[Locale]string{
	LocaleEN: "Present",
	LocaleTR: "Devam ediyor",
}

// SectionLabel returns the localized heading for a section.
func SectionLabel(locale Locale, section cv.SectionID) string {
	if labels, ok := sectionLabels[locale]; ok {
		if label, ok := labels[section]; ok {
			return label
		}
	}
	return sectionLabels[LocaleEN][section]
}

// PresentLabel returns the localized stand-in for an open-ended end date.
func PresentLabel(locale Locale) string {
	if label, ok := presentLabels[locale]; ok {
		return label
	}
	return presentLabels[LocaleEN]
}

// FormatYearMonth renders a "YYYY-MM" value according to the date format.
// An empty input yields an empty output; a malformed input is returned
// unchanged so presentation never fails mid-render.
func FormatYearMonth(value string, format customize.DateFormat, locale Locale) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return value
	}
	year := parts[0]
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return value
	}

	switch format {
	case customize.DateYearOnly:
		return year
	case customize.DateShort:
		return fmt.Sprintf("%s %s", shortMonth(locale, month), year)
	case customize.DateFull:
		return fmt.Sprintf("%s %s", fullMonth(locale, month), year)
	default:
		return value
	}
}

// FormatDateRange joins start and end dates, substituting the localized
// "present" label while the position is current.
func FormatDateRange(start, end string, current bool, format customize.DateFormat, locale Locale) string {
	from := FormatYearMonth(start, format, locale)
	var to string
	if current {
		to = PresentLabel(locale)
	} else {
		to = FormatYearMonth(end, format, locale)
	}

	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " – " + to
	}
}

func fullMonth(locale Locale, month int) string {
	if table, ok := monthsFull[locale]; ok {
		return table[month-1]
	}
	return monthsFull[LocaleEN][month-1]
}

func shortMonth(locale Locale, month int) string {
	if table, ok := monthsShort[locale]; ok {
		return table[month-1]
	}
	return monthsShort[LocaleEN][month-1]
}
