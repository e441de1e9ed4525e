package model

import (
	"strings"
	"time"
)

// A Lead is a contact form submission.
type Lead struct {
	Base

	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Label implements Model.
func (m *Lead) Label() string {
	return m.Name
}

// MissingField returns the json name of the first empty field required by the contact form.
// It returns an empty string when the lead is complete.
func (m *Lead) MissingField() string {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return "name"
	case strings.TrimSpace(m.Email) == "":
		return "email"
	case strings.TrimSpace(m.Message) == "":
		return "message"
	}
	return ""
}
