// Package render maps (CV data, customization, locale) onto a fixed-size A4
// document. Rendering is a total function of its inputs: no I/O, no shared
// state, and missing optional fields degrade to omitted markup.
package render

import (
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"cvstudio/internal/customize"
	"cvstudio/internal/cv"
)

// A4 canvas at 96 DPI, the same surface the preview and the PDF printer see.
const (
	PageWidthPx  = 794
	PageHeightPx = 1123
)

// ErrUnknownTemplate reports a template id outside the closed registry.
type ErrUnknownTemplate struct {
	ID TemplateID
}

func (e ErrUnknownTemplate) Error() string {
	return fmt.Sprintf("render: unknown template %q", e.ID)
}

type sectionView struct {
	ID    cv.SectionID
	Label string
	Body  template.HTML
}

type pageView struct {
	Style       customize.StyleSet
	C           customize.Customization
	HeaderStyle customize.HeaderStyle
	Divider     customize.SectionDivider

	Name     string
	Title    string
	Contacts []string
	// Photo is marked trusted: the worker inlines storage objects as data
	// URIs, which the generic URL sanitizer would otherwise reject.
	Photo template.URL

	TwoColumn         bool
	DarkSidebar       bool
	SerifHeader       bool
	AccentHeadings    bool
	UppercaseHeadings bool

	Sidebar []sectionView
	Main    []sectionView

	PageWidth  int
	PageHeight int
}

// Render produces the complete HTML document for one template. It fails only
// on an unknown template id; incomplete CV data renders whatever is present.
func Render(id TemplateID, data cv.CVData, c customize.Customization, locale Locale) (string, error) {
	desc, ok := descriptors[id]
	if !ok {
		return "", ErrUnknownTemplate{ID: id}
	}

	data.Normalize()
	style := customize.Resolve(c)
	builder := newSectionBuilder(c, locale, desc.highlightMetrics)

	headerStyle := c.HeaderStyle
	if desc.headerOverride != "" {
		headerStyle = desc.headerOverride
	}
	divider := c.SectionDivider
	if desc.dividerOverride != "" {
		divider = desc.dividerOverride
	}

	view := pageView{
		Style:             style,
		C:                 c,
		HeaderStyle:       headerStyle,
		Divider:           divider,
		Name:              applyCasing(data.PersonalInfo.FullName, c.NameCasing),
		Title:             data.PersonalInfo.Title,
		Contacts:          contactLines(data.PersonalInfo),
		TwoColumn:         desc.shape == ShapeTwoColumn,
		DarkSidebar:       desc.darkSidebar,
		SerifHeader:       desc.serifHeader,
		AccentHeadings:    desc.accentHeadings,
		UppercaseHeadings: desc.uppercaseHeadings,
		PageWidth:         PageWidthPx,
		PageHeight:        PageHeightPx,
	}
	if c.ShowPhoto && data.PersonalInfo.Photo != "" {
		view.Photo = template.URL(data.PersonalInfo.Photo)
	}

	inSidebar := make(map[cv.SectionID]bool, len(desc.sidebarSections))
	if view.TwoColumn {
		for _, s := range desc.sidebarSections {
			inSidebar[s] = true
		}
	}

	for _, section := range VisibleSections(data) {
		body := builder.build(section, data)
		if body == "" {
			// Emptiness is re-checked here; the policy order alone is not
			// sufficient to draw a section.
			continue
		}
		sv := sectionView{
			ID:    section,
			Label: SectionLabel(locale, section),
			Body:  body,
		}
		if inSidebar[section] {
			view.Sidebar = append(view.Sidebar, sv)
		} else {
			view.Main = append(view.Main, sv)
		}
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return sb.String(), nil
}

func contactLines(info cv.PersonalInfo) []string {
	return nonEmpty(
		info.Email,
		info.Phone,
		info.Location,
		info.LinkedIn,
		info.Website,
		info.GitHub,
		info.Portfolio,
	)
}

func applyCasing(name string, casing customize.NameCasing) string {
	switch casing {
	case customize.CasingUppercase:
		return strings.ToUpper(name)
	case customize.CasingTitleCase:
		return titleCase(name)
	default:
		return name
	}
}

func titleCase(s string) string {
	var sb strings.Builder
	startOfWord := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			startOfWord = true
			sb.WriteRune(r)
			continue
		}
		if startOfWord {
			sb.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// pageTemplate must keep the preview surface and the PDF printer in
// agreement: one fixed 794x1123 canvas, print colors preserved.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    font-family: {{.Style.FontFamilyCSS}};
    font-size: {{.Style.FontSizes.BasePt}}pt;
    color: {{.C.TextColor}};
    -webkit-print-color-adjust: exact;
    print-color-adjust: exact;
  }
  .a4-page {
    width: {{.PageWidth}}px;
    height: {{.PageHeight}}px;
    background: {{.C.BackgroundColor}};
    padding: {{.Style.Spacing.PaddingPx}}px;
    overflow: hidden;
    {{if .TwoColumn}}display: flex; gap: {{.Style.Spacing.SectionPx}}px; padding: 0;{{end}}
  }
  .sidebar {
    width: 34%;
    padding: {{.Style.Spacing.PaddingPx}}px {{.Style.Spacing.ItemPx}}px {{.Style.Spacing.PaddingPx}}px {{.Style.Spacing.PaddingPx}}px;
    {{if .DarkSidebar}}background: {{.C.PrimaryColor}}; color: {{.C.BackgroundColor}};{{end}}
  }
  .main-col { flex: 1; padding: {{.Style.Spacing.PaddingPx}}px {{.Style.Spacing.PaddingPx}}px {{.Style.Spacing.PaddingPx}}px {{.Style.Spacing.ItemPx}}px; }
  .header {
    margin-bottom: {{.Style.Spacing.SectionPx}}px;
    {{if eq .HeaderStyle "centered"}}text-align: center;{{end}}
    {{if eq .HeaderStyle "split"}}display: flex; justify-content: space-between; align-items: flex-start;{{end}}
  }
  .name {
    font-size: {{.Style.FontSizes.NamePt}}pt;
    color: {{.C.PrimaryColor}};
    font-weight: 700;
    {{if .SerifHeader}}letter-spacing: 2px;{{end}}
  }
  .title { font-size: {{.Style.FontSizes.SubheadingPt}}pt; color: {{.C.AccentColor}}; margin-top: 2px; }
  .contacts { margin-top: 6px; font-size: {{.Style.FontSizes.BasePt}}pt; }
  .contacts span { margin-right: 10px; }
  .photo {
    width: 84px; height: 84px; object-fit: cover;
    {{if eq .C.PhotoShape "circle"}}border-radius: 50%;{{end}}
    {{if eq .C.PhotoShape "rounded"}}border-radius: 12px;{{end}}
    {{if .Style.BorderWidthPx}}border: {{.Style.BorderWidthPx}}px solid {{.C.AccentColor}};{{end}}
  }
  .section { margin-bottom: {{.Style.Spacing.SectionPx}}px; }
  {{if eq .Divider "border-left"}}.section { border-left: 3px solid {{.C.AccentColor}}; padding-left: {{.Style.Spacing.ItemPx}}px; }{{end}}
  .section-heading {
    font-size: {{.Style.FontSizes.HeadingPt}}pt;
    font-weight: 700;
    margin-bottom: {{.Style.Spacing.ItemPx}}px;
    color: {{if .AccentHeadings}}{{.C.AccentColor}}{{else}}{{.C.PrimaryColor}}{{end}};
    {{if .UppercaseHeadings}}text-transform: uppercase; letter-spacing: 1px;{{end}}
    {{if eq .Divider "line"}}border-bottom: {{if .Style.BorderWidthPx}}{{.Style.BorderWidthPx}}{{else}}1{{end}}px solid {{.C.AccentColor}}; padding-bottom: 3px;{{end}}
    {{if eq .Divider "background"}}background: {{.C.AccentColor}}22; padding: 3px 6px;{{end}}
  }
  .sidebar .section-heading { {{if .DarkSidebar}}color: {{.C.BackgroundColor}}; border-color: {{.C.BackgroundColor}};{{end}} }
  .entry { margin-bottom: {{.Style.Spacing.ItemPx}}px; }
  .entry-head { display: flex; flex-wrap: wrap; gap: 6px; align-items: baseline; }
  .entry-title { font-weight: 600; font-size: {{.Style.FontSizes.SubheadingPt}}pt; }
  .entry-org { color: {{.C.AccentColor}}; }
  .entry-dates { margin-left: auto; font-size: {{.Style.FontSizes.BasePt}}pt; opacity: 0.75; white-space: nowrap; }
  .entry-text { margin-top: 3px; }
  .achievements { margin: 3px 0 0 16px; }
  .tags { display: flex; flex-wrap: wrap; gap: 5px; }
  .tag {
    background: {{.C.AccentColor}}1a;
    color: {{.C.AccentColor}};
    border-radius: 4px;
    padding: 2px 8px;
    font-size: {{.Style.FontSizes.BasePt}}pt;
  }
  .rated { display: flex; align-items: center; gap: 6px; margin-bottom: 4px; }
  .rated-name { flex: 1; }
  .muted { opacity: 0.7; font-size: {{.Style.FontSizes.BasePt}}pt; }
  .dots { display: inline-flex; gap: 3px; }
  .dot {
    width: 7px; height: 7px; border-radius: 50%;
    border: 1px solid {{.C.AccentColor}};
    display: inline-block;
  }
  .dot-filled { background: {{.C.AccentColor}}; }
  .sidebar .dot { border-color: currentColor; }
  .sidebar .dot-filled { background: currentColor; }
  @page { size: A4; margin: 0; }
</style>
</head>
<body>
<div class="a4-page">
  {{if .TwoColumn}}
  <div class="sidebar">
    {{if .Photo}}<img class="photo" src="{{.Photo}}" alt="">{{end}}
    {{range .Sidebar}}
    <div class="section" id="section-{{.ID}}">
      <div class="section-heading">{{.Label}}</div>
      {{.Body}}
    </div>
    {{end}}
  </div>
  <div class="main-col">
    <div class="header">
      <div>
        <div class="name">{{.Name}}</div>
        {{if .Title}}<div class="title">{{.Title}}</div>{{end}}
        {{if .Contacts}}<div class="contacts">{{range .Contacts}}<span>{{.}}</span>{{end}}</div>{{end}}
      </div>
    </div>
    {{range .Main}}
    <div class="section" id="section-{{.ID}}">
      <div class="section-heading">{{.Label}}</div>
      {{.Body}}
    </div>
    {{end}}
  </div>
  {{else}}
  <div class="header">
    <div>
      <div class="name">{{.Name}}</div>
      {{if .Title}}<div class="title">{{.Title}}</div>{{end}}
      {{if .Contacts}}<div class="contacts">{{range .Contacts}}<span>{{.}}</span>{{end}}</div>{{end}}
    </div>
    {{if .Photo}}<img class="photo" src="{{.Photo}}" alt="">{{end}}
  </div>
  {{range .Main}}
  <div class="section" id="section-{{.ID}}">
    <div class="section-heading">{{.Label}}</div>
    {{.Body}}
  </div>
  {{end}}
  {{end}}
</div>
</body>
</html>
`))
