package store

import (
	"context"

	"github.com/mdouchement/novatech/internal/model"
)

// FetchProjects returns all the projects, most recent first.
func (s *Store) FetchProjects(ctx context.Context) ([]*model.Project, error) {
	return projects.fetch(ctx, s)
}

// SaveProject creates or updates a project and returns its id.
func (s *Store) SaveProject(ctx context.Context, project *model.Project) (string, error) {
	return projects.save(ctx, s, project)
}

// PatchProject updates the given fields of a project, zero values included.
// fields are the struct field names, a missing id creates a project like SaveProject.
func (s *Store) PatchProject(ctx context.Context, project *model.Project, fields ...string) (string, error) {
	return projects.patch(ctx, s, project, fields)
}

// DeleteProject removes the project with the given id.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return projects.remove(ctx, s, id)
}
