package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdouchement/novatech/internal/model"
	"github.com/pkg/errors"
)

// A CorruptStateError lists the storage keys holding malformed collections.
type CorruptStateError struct {
	Keys []string
}

// Error implements error interface.
func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupted state: %s", strings.Join(e.Keys, ", "))
}

// IsCorruptState returns true if err is a CorruptStateError.
func IsCorruptState(err error) bool {
	_, ok := errors.Cause(err).(*CorruptStateError)
	return ok
}

// Check validates every persisted collection.
// It returns a *CorruptStateError naming the malformed ones.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var corrupted []string
	for _, c := range model.Collections {
		raw, err := s.db.Get(c.Key())
		if err != nil {
			if s.db.IsNotFound(err) {
				continue
			}
			return s.storageError(err, c.Key())
		}

		if err = decode(c, raw); err != nil {
			s.log.WithField("key", c.Key()).WithError(err).Warn("corrupted collection")
			corrupted = append(corrupted, c.Key())
		}
	}

	if len(corrupted) > 0 {
		return &CorruptStateError{Keys: corrupted}
	}
	return nil
}

// Reset forgets the given collection so it reads as its seed defaults again.
func (s *Store) Reset(ctx context.Context, c model.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mu := s.lock(c.Key())
	mu.Lock()
	defer mu.Unlock()

	if err := s.db.Remove(c.Key()); err != nil {
		return s.storageError(err, c.Key())
	}

	s.log.WithField("collection", c).Info("collection reset")
	return nil
}

// Seed persists the seed defaults of every never written collection.
func (s *Store) Seed(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, c := range model.Collections {
		err := s.seed(c)
		if err != nil {
			return errors.Wrapf(err, "could not seed %s", c)
		}
	}
	return nil
}

func (s *Store) seed(c model.Collection) error {
	mu := s.lock(c.Key())
	mu.Lock()
	defer mu.Unlock()

	_, err := s.db.Get(c.Key())
	if err == nil {
		return nil
	}
	if !s.db.IsNotFound(err) {
		return s.storageError(err, c.Key())
	}

	switch c {
	case model.Leads:
		return leads.write(s, leads.seed())
	case model.Projects:
		return projects.write(s, projects.seed())
	case model.Services:
		return services.write(s, services.seed())
	case model.TechStack:
		return techStack.write(s, techStack.seed())
	}
	return errors.Errorf("unknown collection %s", c)
}

func decode(c model.Collection, raw []byte) (err error) {
	switch c {
	case model.Leads:
		_, err = leads.decode(raw)
	case model.Projects:
		_, err = projects.decode(raw)
	case model.Services:
		_, err = services.decode(raw)
	case model.TechStack:
		_, err = techStack.decode(raw)
	default:
		err = errors.Errorf("unknown collection %s", c)
	}
	return err
}
