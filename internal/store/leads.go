package store

import (
	"context"

	"github.com/mdouchement/novatech/internal/model"
)

// FetchLeads returns all the leads, most recent first.
func (s *Store) FetchLeads(ctx context.Context) ([]*model.Lead, error) {
	return leads.fetch(ctx, s)
}

// SubmitLead stores a new lead and returns its id.
// The id and the creation date are always assigned by the store.
func (s *Store) SubmitLead(ctx context.Context, lead *model.Lead) (string, error) {
	return leads.insert(ctx, s, lead, func(l *model.Lead) {
		l.CreatedAt = s.now().UTC()
	})
}

// DeleteLead removes the lead with the given id.
func (s *Store) DeleteLead(ctx context.Context, id string) error {
	return leads.remove(ctx, s, id)
}
