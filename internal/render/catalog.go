package render

// TemplateID names one of the built-in templates. The set is closed; renderers
// are registered eagerly at init instead of being lazy-loaded.
type TemplateID string

const (
	TemplateClassic      TemplateID = "classic"
	TemplateModern       TemplateID = "modern"
	TemplateMinimal      TemplateID = "minimal"
	TemplateElegant      TemplateID = "elegant"
	TemplateCreative     TemplateID = "creative"
	TemplateProfessional TemplateID = "professional"
	TemplateExecutive    TemplateID = "executive"
	TemplateTech         TemplateID = "tech"
	TemplateFinance      TemplateID = "finance"
	TemplateAcademic     TemplateID = "academic"
	TemplateCompact      TemplateID = "compact"
)

// Category groups templates for the selection UI.
type Category string

const (
	CategoryClassic      Category = "classic"
	CategoryModern       Category = "modern"
	CategoryCreative     Category = "creative"
	CategoryProfessional Category = "professional"
	CategoryMinimal      Category = "minimal"
)

// LayoutShape describes the overall page arrangement of a template.
type LayoutShape string

const (
	ShapeSingleColumn LayoutShape = "single-column"
	ShapeTwoColumn    LayoutShape = "two-column"
)

// Metadata is the immutable descriptive record of one template.
type Metadata struct {
	ID            TemplateID  `json:"id"`
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	ATSScore      int         `json:"ats_score"`
	Premium       bool        `json:"premium"`
	Layout        LayoutShape `json:"layout"`
	Audience      []string    `json:"audience"`
	DefaultColors [2]string   `json:"default_colors"` // primary, accent
}

var catalog = []Metadata{
	{
		ID: TemplateClassic, Name: "Classic", Category: CategoryClassic,
		ATSScore: 95, Layout: ShapeSingleColumn,
		Audience:      []string{"general", "administration", "legal"},
		DefaultColors: [2]string{"#1f2937", "#374151"},
	},
	{
		ID: TemplateModern, Name: "Modern", Category: CategoryModern,
		ATSScore: 88, Layout: ShapeTwoColumn,
		Audience:      []string{"marketing", "product", "startups"},
		DefaultColors: [2]string{"#0f172a", "#2563eb"},
	},
	{
		ID: TemplateMinimal, Name: "Minimal", Category: CategoryMinimal,
		ATSScore: 97, Layout: ShapeSingleColumn,
		Audience:      []string{"general", "engineering", "research"},
		DefaultColors: [2]string{"#111827", "#6b7280"},
	},
	{
		ID: TemplateElegant, Name: "Elegant", Category: CategoryClassic,
		ATSScore: 82, Premium: true, Layout: ShapeSingleColumn,
		Audience:      []string{"hospitality", "fashion", "publishing"},
		DefaultColors: [2]string{"#1c1917", "#a16207"},
	},
	{
		ID: TemplateCreative, Name: "Creative", Category: CategoryCreative,
		ATSScore: 70, Premium: true, Layout: ShapeTwoColumn,
		Audience:      []string{"design", "media", "advertising"},
		DefaultColors: [2]string{"#312e81", "#db2777"},
	},
	{
		ID: TemplateProfessional, Name: "Professional", Category: CategoryProfessional,
		ATSScore: 92, Layout: ShapeSingleColumn,
		Audience:      []string{"consulting", "operations", "sales"},
		DefaultColors: [2]string{"#1e3a8a", "#1d4ed8"},
	},
	{
		ID: TemplateExecutive, Name: "Executive", Category: CategoryProfessional,
		ATSScore: 85, Premium: true, Layout: ShapeSingleColumn,
		Audience:      []string{"leadership", "board", "director"},
		DefaultColors: [2]string{"#18181b", "#854d0e"},
	},
	{
		ID: TemplateTech, Name: "Tech", Category: CategoryModern,
		ATSScore: 90, Layout: ShapeTwoColumn,
		Audience:      []string{"engineering", "devops", "data"},
		DefaultColors: [2]string{"#0f172a", "#059669"},
	},
	{
		ID: TemplateFinance, Name: "Finance", Category: CategoryProfessional,
		ATSScore: 93, Premium: true, Layout: ShapeSingleColumn,
		Audience:      []string{"banking", "accounting", "analysis"},
		DefaultColors: [2]string{"#14532d", "#166534"},
	},
	{
		ID: TemplateAcademic, Name: "Academic", Category: CategoryClassic,
		ATSScore: 94, Layout: ShapeSingleColumn,
		Audience:      []string{"research", "teaching", "science"},
		DefaultColors: [2]string{"#1e293b", "#7c2d12"},
	},
	{
		ID: TemplateCompact, Name: "Compact", Category: CategoryMinimal,
		ATSScore: 91, Layout: ShapeTwoColumn,
		Audience:      []string{"general", "early-career"},
		DefaultColors: [2]string{"#111827", "#0e7490"},
	},
}

// All returns the full registry in its fixed order.
func All() []Metadata {
	out := make([]Metadata, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory filters the registry to one category.
func ByCategory(category Category) []Metadata {
	var out []Metadata
	for _, m := range catalog {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// ByLayout filters the registry to one layout shape.
func ByLayout(layout LayoutShape) []Metadata {
	var out []Metadata
	for _, m := range catalog {
		if m.Layout == layout {
			out = append(out, m)
		}
	}
	return out
}

// Get looks up one template's metadata. Unknown ids report ok=false; an
// unknown template is not an error condition for the catalog.
func Get(id TemplateID) (Metadata, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Metadata{}, false
}
