package store

import (
	"context"

	"github.com/mdouchement/novatech/internal/model"
)

// FetchTechStack returns all the tech items in creation order.
func (s *Store) FetchTechStack(ctx context.Context) ([]*model.TechItem, error) {
	return techStack.fetch(ctx, s)
}

// SaveTechItem creates or updates a tech item and returns its id.
func (s *Store) SaveTechItem(ctx context.Context, item *model.TechItem) (string, error) {
	return techStack.save(ctx, s, item)
}

// PatchTechItem is SaveTechItem restricted to the given fields, zero values included.
func (s *Store) PatchTechItem(ctx context.Context, item *model.TechItem, fields ...string) (string, error) {
	return techStack.patch(ctx, s, item, fields)
}

// DeleteTechItem removes the tech item with the given id.
func (s *Store) DeleteTechItem(ctx context.Context, id string) error {
	return techStack.remove(ctx, s, id)
}
