package render

import (
	"html"
	"html/template"
	"regexp"
)

// metricRe matches the numeric "metrics" the finance template emphasizes:
// currency amounts ($1.2M, €500, £3,000), percentages (12%, 3.5%) and large
// grouped numbers (10,000).
var metricRe = regexp.MustCompile(`[$€£¥]\s?\d[\d,.]*[KMBkmb]?|\d+(?:\.\d+)?\s?%|\d{1,3}(?:,\d{3})+`)

// highlightMetrics escapes the text and wraps every metric in <strong>.
func highlightMetrics(text string) template.HTML {
	if text == "" {
		return ""
	}

	var out []byte
	last := 0
	for _, loc := range metricRe.FindAllStringIndex(text, -1) {
		out = append(out, html.EscapeString(text[last:loc[0]])...)
		out = append(out, "<strong>"...)
		out = append(out, html.EscapeString(text[loc[0]:loc[1]])...)
		out = append(out, "</strong>"...)
		last = loc[1]
	}
	out = append(out, html.EscapeString(text[last:])...)
	return template.HTML(out)
}

// plainText escapes free text without any transformation.
func plainText(text string) template.HTML {
	return template.HTML(html.EscapeString(text))
}
