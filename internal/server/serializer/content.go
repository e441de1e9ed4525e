package serializer

import (
	"time"

	"github.com/mdouchement/novatech/internal/model"
)

// Lead serializes the render of a lead.
func Lead(m *model.Lead) map[string]any {
	return map[string]any{
		"_id":       m.ID,
		"name":      m.Name,
		"email":     m.Email,
		"phone":     m.Phone,
		"message":   m.Message,
		"createdAt": m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Leads serializes the render of leads.
func Leads(m []*model.Lead) []map[string]any {
	leads := make([]map[string]any, len(m))
	for i, l := range m {
		leads[i] = Lead(l)
	}
	return leads
}

// TechGroups serializes the render of the grouped tech stack.
// A group never renders null items.
func TechGroups(groups []model.TechGroup) []map[string]any {
	r := make([]map[string]any, len(groups))
	for i, g := range groups {
		items := g.Items
		if items == nil {
			items = []*model.TechItem{}
		}

		r[i] = map[string]any{
			"category": g.Category,
			"items":    items,
		}
	}
	return r
}
