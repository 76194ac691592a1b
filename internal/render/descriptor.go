package render

import (
	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
)

// descriptor parameterizes the shared rendering engine per template. Most of
// the visual variation between templates is systematic (header treatment,
// column split, heading casing); genuinely bespoke behavior is limited to the
// flags at the bottom.
type descriptor struct {
	shape LayoutShape

	// headerOverride forces the header arrangement regardless of the
	// customization; the zero value follows customization.HeaderStyle.
	headerOverride customize.HeaderStyle

	// sidebarSections are drawn in the narrow column of two-column shapes.
	// Sections absent from this list flow into the main column.
	sidebarSections []cv.SectionID

	// darkSidebar paints the sidebar with the primary color and inverts
	// its text.
	darkSidebar bool

	// accentHeadings colors section headings with the accent token instead
	// of the primary token.
	accentHeadings bool

	// uppercaseHeadings renders section headings in capitals.
	uppercaseHeadings bool

	// dividerOverride forces a section divider treatment; zero value
	// follows customization.SectionDivider.
	dividerOverride customize.SectionDivider

	// highlightMetrics bold-wraps numeric metrics (currency, percentages,
	// grouped numbers) inside free text. Only the finance template does
	// non-trivial text transformation.
	highlightMetrics bool

	// serifHeader renders the name block with extra letter spacing, used by
	// the elegant and executive templates.
	serifHeader bool
}

var descriptors = map[TemplateID]descriptor{
	TemplateClassic: {
		shape: ShapeSingleColumn,
	},
	TemplateModern: {
		shape:           ShapeTwoColumn,
		sidebarSections: []cv.SectionID{cv.SectionSkills, cv.SectionLanguages, cv.SectionCertificates},
		accentHeadings:  true,
	},
	TemplateMinimal: {
		shape:           ShapeSingleColumn,
		dividerOverride: customize.DividerSpace,
	},
	TemplateElegant: {
		shape:          ShapeSingleColumn,
		headerOverride: customize.HeaderCentered,
		serifHeader:    true,
	},
	TemplateCreative: {
		shape:           ShapeTwoColumn,
		sidebarSections: []cv.SectionID{cv.SectionSkills, cv.SectionLanguages},
		darkSidebar:     true,
		accentHeadings:  true,
	},
	TemplateProfessional: {
		shape:             ShapeSingleColumn,
		uppercaseHeadings: true,
	},
	TemplateExecutive: {
		shape:             ShapeSingleColumn,
		headerOverride:    customize.HeaderSplit,
		uppercaseHeadings: true,
		serifHeader:       true,
	},
	TemplateTech: {
		shape:           ShapeTwoColumn,
		sidebarSections: []cv.SectionID{cv.SectionSkills, cv.SectionLanguages, cv.SectionCertificates},
		dividerOverride: customize.DividerBorderLeft,
		accentHeadings:  true,
	},
	TemplateFinance: {
		shape:             ShapeSingleColumn,
		uppercaseHeadings: true,
		highlightMetrics:  true,
	},
	TemplateAcademic: {
		shape:           ShapeSingleColumn,
		headerOverride:  customize.HeaderCentered,
		dividerOverride: customize.DividerLine,
	},
	TemplateCompact: {
		shape:           ShapeTwoColumn,
		sidebarSections: []cv.SectionID{cv.SectionSkills, cv.SectionLanguages, cv.SectionCertificates},
		dividerOverride: customize.DividerSpace,
	},
}
