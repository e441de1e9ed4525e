package model

// A Collection is the name of a record set, also used as its storage key.
type Collection string

const (
	// Leads holds contact form submissions.
	Leads Collection = "leads"
	// Projects holds portfolio entries.
	Projects Collection = "projects"
	// Services holds the agency offers.
	Services Collection = "services"
	// TechStack holds technology stack entries.
	TechStack Collection = "techStack"

	// AdminTokenKey is the storage key of the admin session token.
	AdminTokenKey = "adminToken"
)

// Collections lists all the collections.
var Collections = []Collection{Leads, Projects, Services, TechStack}

// ParseCollection returns the collection matching the given name.
// Aliases used by the HTTP routes and the CLI are accepted.
func ParseCollection(name string) (Collection, bool) {
	switch name {
	case "leads", "lead":
		return Leads, true
	case "projects", "project":
		return Projects, true
	case "services", "service":
		return Services, true
	case "techStack", "techstack", "tech", "stack":
		return TechStack, true
	}
	return "", false
}

// Key returns the storage key of the collection.
func (c Collection) Key() string {
	return string(c)
}

// Prepend returns true when new records are inserted at the head of the collection.
func (c Collection) Prepend() bool {
	return c == Leads || c == Projects
}
