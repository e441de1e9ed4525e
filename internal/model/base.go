package model

type (
	// A Model defines a record that can be stored in a collection.
	Model interface {
		// GetID returns the model's ID.
		GetID() string
		// SetID defines the model's ID.
		SetID(string)
		// Label returns the human readable name of the record (title or name).
		Label() string
	}

	// A Base contains the default model fields.
	Base struct {
		ID string `json:"_id,omitempty"`
	}
)

// GetID returns the model's ID.
func (m *Base) GetID() string {
	return m.ID
}

// SetID defines the model's ID.
func (m *Base) SetID(id string) {
	m.ID = id
}
