package store

import (
	"context"

	"github.com/mdouchement/novatech/internal/model"
)

// FetchServices returns all the services in creation order.
func (s *Store) FetchServices(ctx context.Context) ([]*model.Service, error) {
	return services.fetch(ctx, s)
}

// SaveService creates or updates a service and returns its id.
func (s *Store) SaveService(ctx context.Context, service *model.Service) (string, error) {
	return services.save(ctx, s, service)
}

// PatchService is SaveService restricted to the given fields, zero values included.
func (s *Store) PatchService(ctx context.Context, service *model.Service, fields ...string) (string, error) {
	return services.patch(ctx, s, service, fields)
}

// DeleteService removes the service with the given id.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	return services.remove(ctx, s, id)
}
