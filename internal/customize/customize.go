// Package customize holds the user-adjustable style configuration applied
// uniformly across whichever template is active, and the resolver that turns
// it into concrete style primitives.
package customize

// FontFamily names one of the supported font stacks.
type FontFamily string

const (
	FontInter        FontFamily = "inter"
	FontRoboto       FontFamily = "roboto"
	FontOpenSans     FontFamily = "open-sans"
	FontLato         FontFamily = "lato"
	FontMontserrat   FontFamily = "montserrat"
	FontSourceSans   FontFamily = "source-sans"
	FontMerriweather FontFamily = "merriweather"
	FontPlayfair     FontFamily = "playfair"
	FontLora         FontFamily = "lora"
	FontGaramond     FontFamily = "garamond"
	FontJetBrains    FontFamily = "jetbrains-mono"
	FontIBMPlexMono  FontFamily = "ibm-plex-mono"
)

// FontSize is the overall size step.
type FontSize string

const (
	SizeSmall  FontSize = "small"
	SizeMedium FontSize = "medium"
	SizeLarge  FontSize = "large"
)

// Spacing is the overall density step.
type Spacing string

const (
	SpacingCompact Spacing = "compact"
	SpacingNormal  Spacing = "normal"
	SpacingRelaxed Spacing = "relaxed"
)

// BorderStyle controls decorative border weight.
type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderThin   BorderStyle = "thin"
	BorderMedium BorderStyle = "medium"
	BorderThick  BorderStyle = "thick"
)

// LayoutHint nudges templates that support more than one arrangement.
type LayoutHint string

const (
	LayoutSingleColumn LayoutHint = "single-column"
	LayoutSidebarLeft  LayoutHint = "sidebar-left"
	LayoutSidebarRight LayoutHint = "sidebar-right"
)

// HeaderStyle positions the name block.
type HeaderStyle string

const (
	HeaderLeftAligned HeaderStyle = "left-aligned"
	HeaderCentered    HeaderStyle = "centered"
	HeaderSplit       HeaderStyle = "split"
)

// SectionDivider selects how consecutive sections are separated.
type SectionDivider string

const (
	DividerLine       SectionDivider = "line"
	DividerSpace      SectionDivider = "space"
	DividerBorderLeft SectionDivider = "border-left"
	DividerBackground SectionDivider = "background"
)

// NameCasing transforms the rendered full name.
type NameCasing string

const (
	CasingAsTyped   NameCasing = "as-typed"
	CasingUppercase NameCasing = "uppercase"
	CasingTitleCase NameCasing = "title-case"
)

// DateFormat selects how YYYY-MM values print.
type DateFormat string

const (
	DateFull     DateFormat = "full"
	DateShort    DateFormat = "short"
	DateYearOnly DateFormat = "year-only"
)

// SkillDisplay selects the widget used for the skills section.
type SkillDisplay string

const (
	SkillsTags       SkillDisplay = "tags"
	SkillsCommaList  SkillDisplay = "comma-list"
	SkillsBullets    SkillDisplay = "bullets"
	SkillsRatingDots SkillDisplay = "rating-dots"
)

// PhotoShape crops the photo.
type PhotoShape string

const (
	PhotoCircle  PhotoShape = "circle"
	PhotoRounded PhotoShape = "rounded"
	PhotoSquare  PhotoShape = "square"
)

// Customization is a value object with no identity; it is owned by whichever
// CV/template pairing references it and freely copied.
type Customization struct {
	PrimaryColor    string         `json:"primary_color"`
	AccentColor     string         `json:"accent_color"`
	TextColor       string         `json:"text_color"`
	BackgroundColor string         `json:"background_color"`
	FontFamily      FontFamily     `json:"font_family"`
	FontSize        FontSize       `json:"font_size"`
	Spacing         Spacing        `json:"spacing"`
	BorderStyle     BorderStyle    `json:"border_style"`
	Layout          LayoutHint     `json:"layout"`
	HeaderStyle     HeaderStyle    `json:"header_style"`
	SectionDivider  SectionDivider `json:"section_divider"`
	NameCasing      NameCasing     `json:"name_casing"`
	DateFormat      DateFormat     `json:"date_format"`
	SkillDisplay    SkillDisplay   `json:"skill_display"`
	ShowPhoto       bool           `json:"show_photo"`
	PhotoShape      PhotoShape     `json:"photo_shape"`
}

// Default returns the canonical default customization.
func Default() Customization {
	return Customization{
		PrimaryColor:    "#1f2937",
		AccentColor:     "#2563eb",
		TextColor:       "#111827",
		BackgroundColor: "#ffffff",
		FontFamily:      FontInter,
		FontSize:        SizeMedium,
		Spacing:         SpacingNormal,
		BorderStyle:     BorderThin,
		Layout:          LayoutSingleColumn,
		HeaderStyle:     HeaderLeftAligned,
		SectionDivider:  DividerLine,
		NameCasing:      CasingAsTyped,
		DateFormat:      DateShort,
		SkillDisplay:    SkillsTags,
		ShowPhoto:       true,
		PhotoShape:      PhotoCircle,
	}
}

// Patch carries a partial override; nil fields keep the default.
type Patch struct {
	PrimaryColor    *string         `json:"primary_color,omitempty"`
	AccentColor     *string         `json:"accent_color,omitempty"`
	TextColor       *string         `json:"text_color,omitempty"`
	BackgroundColor *string         `json:"background_color,omitempty"`
	FontFamily      *FontFamily     `json:"font_family,omitempty"`
	FontSize        *FontSize       `json:"font_size,omitempty"`
	Spacing         *Spacing        `json:"spacing,omitempty"`
	BorderStyle     *BorderStyle    `json:"border_style,omitempty"`
	Layout          *LayoutHint     `json:"layout,omitempty"`
	HeaderStyle     *HeaderStyle    `json:"header_style,omitempty"`
	SectionDivider  *SectionDivider `json:"section_divider,omitempty"`
	NameCasing      *NameCasing     `json:"name_casing,omitempty"`
	DateFormat      *DateFormat     `json:"date_format,omitempty"`
	SkillDisplay    *SkillDisplay   `json:"skill_display,omitempty"`
	ShowPhoto       *bool           `json:"show_photo,omitempty"`
	PhotoShape      *PhotoShape     `json:"photo_shape,omitempty"`
}

// Merge applies a partial override on top of c and returns the result.
// Renderers must only ever see fully populated values, so partial inputs go
// through Merge(Default(), patch) before reaching the resolver.
func (c Customization) Merge(p Patch) Customization {
	if p.PrimaryColor != nil {
		c.PrimaryColor = *p.PrimaryColor
	}
	if p.AccentColor != nil {
		c.AccentColor = *p.AccentColor
	}
	if p.TextColor != nil {
		c.TextColor = *p.TextColor
	}
	if p.BackgroundColor != nil {
		c.BackgroundColor = *p.BackgroundColor
	}
	if p.FontFamily != nil {
		c.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		c.FontSize = *p.FontSize
	}
	if p.Spacing != nil {
		c.Spacing = *p.Spacing
	}
	if p.BorderStyle != nil {
		c.BorderStyle = *p.BorderStyle
	}
	if p.Layout != nil {
		c.Layout = *p.Layout
	}
	if p.HeaderStyle != nil {
		c.HeaderStyle = *p.HeaderStyle
	}
	if p.SectionDivider != nil {
		c.SectionDivider = *p.SectionDivider
	}
	if p.NameCasing != nil {
		c.NameCasing = *p.NameCasing
	}
	if p.DateFormat != nil {
		c.DateFormat = *p.DateFormat
	}
	if p.SkillDisplay != nil {
		c.SkillDisplay = *p.SkillDisplay
	}
	if p.ShowPhoto != nil {
		c.ShowPhoto = *p.ShowPhoto
	}
	if p.PhotoShape != nil {
		c.PhotoShape = *p.PhotoShape
	}
	return c
}
