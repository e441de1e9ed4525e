package model

// A TechItem is a technology stack entry.
type TechItem struct {
	Base

	Name     string       `json:"name"`
	Category TechCategory `json:"category"`
	Icon     Asset        `json:"icon"`
	Color    string       `json:"color"` // Presentation token (CSS text color class)
}

// Label implements Model.
func (m *TechItem) Label() string {
	return m.Name
}

// A TechCategory groups the tech stack entries.
type TechCategory string

const (
	CategoryLanguages TechCategory = "Languages"
	CategoryFrontend  TechCategory = "Frontend"
	CategoryBackend   TechCategory = "Backend"
	CategoryAI        TechCategory = "AI & Agentic Systems"
	CategoryDatabases TechCategory = "Databases"
	CategoryDevOps    TechCategory = "DevOps"
)

// TechCategories lists the known categories in display order.
var TechCategories = []TechCategory{
	CategoryLanguages,
	CategoryFrontend,
	CategoryBackend,
	CategoryAI,
	CategoryDatabases,
	CategoryDevOps,
}

// Known returns true if the category belongs to the known set.
func (c TechCategory) Known() bool {
	for _, category := range TechCategories {
		if c == category {
			return true
		}
	}
	return false
}

// A TechGroup is the set of tech items sharing the same category.
type TechGroup struct {
	Category TechCategory `json:"category"`
	Items    []*TechItem  `json:"items"`
}

// GroupTechStack groups the given items by category.
// Known categories come first in display order, unknown ones follow in order of appearance.
// Empty known categories are omitted.
func GroupTechStack(items []*TechItem) []TechGroup {
	index := map[TechCategory][]*TechItem{}
	var unknown []TechCategory

	for _, item := range items {
		if _, ok := index[item.Category]; !ok && !item.Category.Known() {
			unknown = append(unknown, item.Category)
		}
		index[item.Category] = append(index[item.Category], item)
	}

	groups := make([]TechGroup, 0, len(index))
	for _, category := range append(append([]TechCategory{}, TechCategories...), unknown...) {
		if len(index[category]) == 0 {
			continue
		}
		groups = append(groups, TechGroup{Category: category, Items: index[category]})
	}
	return groups
}
