package model

// A Service is an offer of the agency.
type Service struct {
	Base

	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Asset  `json:"icon"`
	Color       string `json:"color"` // Presentation token (CSS gradient classes)
}

// Label implements Model.
func (m *Service) Label() string {
	return m.Title
}
