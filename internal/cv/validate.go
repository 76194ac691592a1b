package cv

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Commit-time validation. Drafts are never validated while the user types;
// these checks run only at save/export boundaries.

var yearMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

var commitValidator = newCommitValidator()

func newCommitValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || yearMonthRe.MatchString(s)
	}); err != nil {
		panic(fmt.Sprintf("register yearmonth validation: %v", err))
	}
	return v
}

// FieldError describes one failed commit check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failed check of one commit attempt.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// IsValidationError reports whether err carries commit validation failures.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ValidateCVData runs the strict commit checks over the whole aggregate.
// It returns ValidationErrors listing every violation, or nil.
func ValidateCVData(d CVData) error {
	var errs ValidationErrors

	errs = append(errs, validatePersonalInfo(d.PersonalInfo)...)
	for i, exp := range d.Experience {
		errs = append(errs, validateExperience(exp, fmt.Sprintf("experience[%d]", i))...)
	}
	for i, edu := range d.Education {
		errs = append(errs, validateEducationStrict(edu, fmt.Sprintf("education[%d]", i))...)
	}
	for i, cert := range d.Certificates {
		if cert.Date != "" && !yearMonthRe.MatchString(cert.Date) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("certificates[%d].date", i),
				Message: "must be YYYY-MM",
			})
		}
	}
	errs = append(errs, validateSectionOrder(d.SectionOrder)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validatePersonalInfo(info PersonalInfo) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(info.FullName) == "" {
		errs = append(errs, FieldError{Field: "personal_info.full_name", Message: "is required"})
	}
	if strings.TrimSpace(info.Email) == "" {
		errs = append(errs, FieldError{Field: "personal_info.email", Message: "is required"})
	} else if err := commitValidator.Var(info.Email, "email"); err != nil {
		errs = append(errs, FieldError{Field: "personal_info.email", Message: "must be a valid email"})
	}
	return errs
}

// validateExperience applies the base-schema rules: well-formed dates and,
// for finished positions, end date present and not before start date.
func validateExperience(exp Experience, field string) ValidationErrors {
	var errs ValidationErrors
	if err := commitValidator.Var(exp.StartDate, "yearmonth"); err != nil {
		errs = append(errs, FieldError{Field: field + ".start_date", Message: "must be YYYY-MM"})
	}
	if err := commitValidator.Var(exp.EndDate, "yearmonth"); err != nil {
		errs = append(errs, FieldError{Field: field + ".end_date", Message: "must be YYYY-MM"})
	}
	if !exp.Current {
		switch {
		case exp.EndDate == "":
			errs = append(errs, FieldError{Field: field + ".end_date", Message: "is required unless position is current"})
		case yearMonthRe.MatchString(exp.StartDate) && yearMonthRe.MatchString(exp.EndDate) && exp.EndDate < exp.StartDate:
			// YYYY-MM compares correctly as a string.
			errs = append(errs, FieldError{Field: field + ".end_date", Message: "must not be before start date"})
		}
	}
	return errs
}

// validateEducationStrict orders dates only here, not in the editing path.
// Experience enforces ordering in its base rules while Education does not;
// the asymmetry is inherited behavior and kept on purpose.
func validateEducationStrict(edu Education, field string) ValidationErrors {
	var errs ValidationErrors
	if err := commitValidator.Var(edu.StartDate, "yearmonth"); err != nil {
		errs = append(errs, FieldError{Field: field + ".start_date", Message: "must be YYYY-MM"})
	}
	if err := commitValidator.Var(edu.EndDate, "yearmonth"); err != nil {
		errs = append(errs, FieldError{Field: field + ".end_date", Message: "must be YYYY-MM"})
	}
	if yearMonthRe.MatchString(edu.StartDate) && yearMonthRe.MatchString(edu.EndDate) && edu.EndDate < edu.StartDate {
		errs = append(errs, FieldError{Field: field + ".end_date", Message: "must not be before start date"})
	}
	return errs
}

// validateSectionOrder verifies the invariant that the order contains exactly
// one entry per known section.
func validateSectionOrder(order []SectionRank) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[SectionID]int, len(order))
	for _, entry := range order {
		seen[entry.Section]++
	}
	for _, s := range AllSections() {
		switch seen[s] {
		case 0:
			errs = append(errs, FieldError{Field: "section_order", Message: fmt.Sprintf("missing section %q", s)})
		case 1:
		default:
			errs = append(errs, FieldError{Field: "section_order", Message: fmt.Sprintf("duplicate section %q", s)})
		}
	}
	for _, entry := range order {
		if !isKnownSection(entry.Section) {
			errs = append(errs, FieldError{Field: "section_order", Message: fmt.Sprintf("unknown section %q", entry.Section)})
		}
	}
	return errs
}

func isKnownSection(s SectionID) bool {
	for _, known := range AllSections() {
		if s == known {
			return true
		}
	}
	return false
}
