package render

import (
	"sort"

	"cvstudio/internal/cv"
)

// VisibleSections returns the ordered list of sections a renderer should
// attempt to draw: the section order stable-sorted by rank (ties keep their
// original array position), filtered down to sections that are both marked
// visible and backed by non-empty data.
//
// Section renderers re-check emptiness before drawing; the final decision is
// always visible(section) && !empty(section).
func VisibleSections(data cv.CVData) []cv.SectionID {
	order := make([]cv.SectionRank, len(data.SectionOrder))
	copy(order, data.SectionOrder)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Rank < order[j].Rank
	})

	result := make([]cv.SectionID, 0, len(order))
	for _, entry := range order {
		if !data.SectionVisibility[entry.Section] {
			continue
		}
		if data.SectionEmpty(entry.Section) {
			continue
		}
		result = append(result, entry.Section)
	}
	return result
}
