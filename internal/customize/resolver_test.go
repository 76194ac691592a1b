package customize

import (
	"reflect"
	"testing"
)

func TestResolveIsDeterministic(t *testing.T) {
	c := Default()
	first := Resolve(c)
	second := Resolve(c)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolver not deterministic: %+v != %+v", first, second)
	}
}

func TestResolveCoversEveryEnumValue(t *testing.T) {
	families := []FontFamily{
		FontInter, FontRoboto, FontOpenSans, FontLato, FontMontserrat, FontSourceSans,
		FontMerriweather, FontPlayfair, FontLora, FontGaramond, FontJetBrains, FontIBMPlexMono,
	}
	if len(families) != 12 {
		t.Fatalf("expected 12 font families, got %d", len(families))
	}
	for _, f := range families {
		for _, size := range []FontSize{SizeSmall, SizeMedium, SizeLarge} {
			for _, sp := range []Spacing{SpacingCompact, SpacingNormal, SpacingRelaxed} {
				for _, b := range []BorderStyle{BorderNone, BorderThin, BorderMedium, BorderThick} {
					c := Default()
					c.FontFamily = f
					c.FontSize = size
					c.Spacing = sp
					c.BorderStyle = b
					set := Resolve(c)
					if set.FontFamilyCSS == "" {
						t.Errorf("empty font stack for %q", f)
					}
					if set.FontSizes.BasePt <= 0 || set.Spacing.SectionPx <= 0 {
						t.Errorf("degenerate scale for size=%q spacing=%q: %+v", size, sp, set)
					}
				}
			}
		}
	}
}

func TestResolvePanicsOnUnknownEnum(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unknown font family")
		}
	}()
	c := Default()
	c.FontFamily = "comic-sans"
	Resolve(c)
}

func TestMergeAppliesOnlySetFields(t *testing.T) {
	accent := "#ff0000"
	display := SkillsRatingDots
	merged := Default().Merge(Patch{AccentColor: &accent, SkillDisplay: &display})

	if merged.AccentColor != "#ff0000" {
		t.Errorf("expected accent #ff0000, got %q", merged.AccentColor)
	}
	if merged.SkillDisplay != SkillsRatingDots {
		t.Errorf("expected rating-dots, got %q", merged.SkillDisplay)
	}
	if merged.PrimaryColor != Default().PrimaryColor {
		t.Errorf("primary color must keep default, got %q", merged.PrimaryColor)
	}

	if got := Default().Merge(Patch{}); !reflect.DeepEqual(got, Default()) {
		t.Errorf("empty patch changed defaults: %+v", got)
	}
}

func TestValidateRejectsMalformedColors(t *testing.T) {
	cases := []string{"", "red", "#fff", "#12345g", "123456", "#1234567"}
	for _, bad := range cases {
		c := Default()
		c.AccentColor = bad
		if err := Validate(c); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}

	if err := Validate(Default()); err != nil {
		t.Errorf("defaults must validate, got: %v", err)
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	c := Default()
	c.DateFormat = "iso"
	if err := Validate(c); err == nil {
		t.Error("expected unknown date format to be rejected")
	}
}
