package customize

import (
	"fmt"
	"html/template"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// StyleSet carries the concrete style primitives a renderer applies directly,
// with no further enum lookups at render time.
type StyleSet struct {
	// FontFamilyCSS is marked trusted: the quoted multi-value stacks below
	// would otherwise be rejected by html/template's CSS sanitizer, and the
	// value is always one of the closed set of constants in fontStack.
	FontFamilyCSS template.CSS
	FontSizes     FontSizeScale
	Spacing       SpacingScale
	BorderWidthPx int
}

// FontSizeScale lists point sizes per text role.
type FontSizeScale struct {
	BasePt       float64
	HeadingPt    float64
	SubheadingPt float64
	NamePt       float64
}

// SpacingScale lists pixel gaps per layout role.
type SpacingScale struct {
	SectionPx int
	ItemPx    int
	PaddingPx int
}

// Resolve maps a fully populated customization onto concrete primitives.
// It is pure and deterministic. An unrecognized enum value is a defect in the
// caller, not a recoverable condition, so Resolve panics instead of silently
// falling back.
func Resolve(c Customization) StyleSet {
	return StyleSet{
		FontFamilyCSS: fontStack(c.FontFamily),
		FontSizes:     fontSizes(c.FontSize),
		Spacing:       spacing(c.Spacing),
		BorderWidthPx: borderWidth(c.BorderStyle),
	}
}

func fontStack(f FontFamily) template.CSS {
	switch f {
	case FontInter:
		return `'Inter', 'Helvetica Neue', Arial, sans-serif`
	case FontRoboto:
		return `'Roboto', 'Helvetica Neue', Arial, sans-serif`
	case FontOpenSans:
		return `'Open Sans', 'Segoe UI', Arial, sans-serif`
	case FontLato:
		return `'Lato', 'Helvetica Neue', Arial, sans-serif`
	case FontMontserrat:
		return `'Montserrat', 'Helvetica Neue', Arial, sans-serif`
	case FontSourceSans:
		return `'Source Sans 3', 'Segoe UI', Arial, sans-serif`
	case FontMerriweather:
		return `'Merriweather', Georgia, 'Times New Roman', serif`
	case FontPlayfair:
		return `'Playfair Display', Georgia, 'Times New Roman', serif`
	case FontLora:
		return `'Lora', Georgia, 'Times New Roman', serif`
	case FontGaramond:
		return `'EB Garamond', Garamond, Georgia, serif`
	case FontJetBrains:
		return `'JetBrains Mono', 'Courier New', monospace`
	case FontIBMPlexMono:
		return `'IBM Plex Mono', 'Courier New', monospace`
	default:
		panic(fmt.Sprintf("customize: unknown font family %q", f))
	}
}

func fontSizes(s FontSize) FontSizeScale {
	switch s {
	case SizeSmall:
		return FontSizeScale{BasePt: 9, HeadingPt: 12, SubheadingPt: 10.5, NamePt: 20}
	case SizeMedium:
		return FontSizeScale{BasePt: 10, HeadingPt: 13, SubheadingPt: 11.5, NamePt: 24}
	case SizeLarge:
		return FontSizeScale{BasePt: 11, HeadingPt: 14.5, SubheadingPt: 12.5, NamePt: 28}
	default:
		panic(fmt.Sprintf("customize: unknown font size %q", s))
	}
}

func spacing(s Spacing) SpacingScale {
	switch s {
	case SpacingCompact:
		return SpacingScale{SectionPx: 12, ItemPx: 6, PaddingPx: 28}
	case SpacingNormal:
		return SpacingScale{SectionPx: 18, ItemPx: 10, PaddingPx: 36}
	case SpacingRelaxed:
		return SpacingScale{SectionPx: 26, ItemPx: 14, PaddingPx: 44}
	default:
		panic(fmt.Sprintf("customize: unknown spacing %q", s))
	}
}

func borderWidth(b BorderStyle) int {
	switch b {
	case BorderNone:
		return 0
	case BorderThin:
		return 1
	case BorderMedium:
		return 2
	case BorderThick:
		return 3
	default:
		panic(fmt.Sprintf("customize: unknown border style %q", b))
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var colorValidator = validator.New()

// Validate checks the commit-time constraints of a customization: the four
// color tokens must be #RRGGBB and every enum must hold a known value.
func Validate(c Customization) error {
	colors := map[string]string{
		"primary_color":    c.PrimaryColor,
		"accent_color":     c.AccentColor,
		"text_color":       c.TextColor,
		"background_color": c.BackgroundColor,
	}
	for field, value := range colors {
		// validator's hexcolor also admits #RGB shorthand; the stored form
		// is always six digits.
		if err := colorValidator.Var(value, "hexcolor"); err != nil || !hexColorRe.MatchString(value) {
			return fmt.Errorf("%s must be #RRGGBB, got %q", field, value)
		}
	}

	checks := []struct {
		field string
		ok    bool
	}{
		{"font_family", knownFontFamily(c.FontFamily)},
		{"font_size", c.FontSize == SizeSmall || c.FontSize == SizeMedium || c.FontSize == SizeLarge},
		{"spacing", c.Spacing == SpacingCompact || c.Spacing == SpacingNormal || c.Spacing == SpacingRelaxed},
		{"border_style", c.BorderStyle == BorderNone || c.BorderStyle == BorderThin || c.BorderStyle == BorderMedium || c.BorderStyle == BorderThick},
		{"layout", c.Layout == LayoutSingleColumn || c.Layout == LayoutSidebarLeft || c.Layout == LayoutSidebarRight},
		{"header_style", c.HeaderStyle == HeaderLeftAligned || c.HeaderStyle == HeaderCentered || c.HeaderStyle == HeaderSplit},
		{"section_divider", c.SectionDivider == DividerLine || c.SectionDivider == DividerSpace || c.SectionDivider == DividerBorderLeft || c.SectionDivider == DividerBackground},
		{"name_casing", c.NameCasing == CasingAsTyped || c.NameCasing == CasingUppercase || c.NameCasing == CasingTitleCase},
		{"date_format", c.DateFormat == DateFull || c.DateFormat == DateShort || c.DateFormat == DateYearOnly},
		{"skill_display", c.SkillDisplay == SkillsTags || c.SkillDisplay == SkillsCommaList || c.SkillDisplay == SkillsBullets || c.SkillDisplay == SkillsRatingDots},
		{"photo_shape", c.PhotoShape == PhotoCircle || c.PhotoShape == PhotoRounded || c.PhotoShape == PhotoSquare},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%s holds an unknown value", check.field)
		}
	}
	return nil
}

func knownFontFamily(f FontFamily) bool {
	switch f {
	case FontInter, FontRoboto, FontOpenSans, FontLato, FontMontserrat, FontSourceSans,
		FontMerriweather, FontPlayfair, FontLora, FontGaramond, FontJetBrains, FontIBMPlexMono:
		return true
	}
	return false
}
