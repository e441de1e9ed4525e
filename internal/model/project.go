package model

// A Project is a portfolio entry.
type Project struct {
	Base

	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       Asset    `json:"image"`
	Tags        []string `json:"tags"`
}

// Label implements Model.
func (m *Project) Label() string {
	return m.Title
}
