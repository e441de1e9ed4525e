package store

import (
	"context"
	"encoding/json"

	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/pkg/structs"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// record is a pointer to a model struct.
type record[T any] interface {
	*T
	model.Model
}

// collection binds a record type to its storage key and seed defaults.
type collection[T any, P record[T]] struct {
	name model.Collection
	seed func() []P
}

var (
	leads     = collection[model.Lead, *model.Lead]{name: model.Leads, seed: func() []*model.Lead { return []*model.Lead{} }}
	projects  = collection[model.Project, *model.Project]{name: model.Projects, seed: model.SeedProjects}
	services  = collection[model.Service, *model.Service]{name: model.Services, seed: model.SeedServices}
	techStack = collection[model.TechItem, *model.TechItem]{name: model.TechStack, seed: model.SeedTechStack}
)

// decode parses a persisted collection.
func (c collection[T, P]) decode(raw []byte) ([]P, error) {
	if err := fastjson.ValidateBytes(raw); err != nil {
		return nil, err
	}

	var records []P
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	// Drop null entries.
	n := 0
	for _, r := range records {
		if r != nil {
			records[n] = r
			n++
		}
	}
	return records[:n], nil
}

// read returns the persisted records, the seed defaults when the collection
// has never been written, holds null or can't be decoded.
func (c collection[T, P]) read(s *Store) ([]P, error) {
	key := c.name.Key()

	raw, err := s.db.Get(key)
	if err != nil {
		if s.db.IsNotFound(err) {
			return c.seed(), nil
		}
		return nil, s.storageError(err, key)
	}

	records, err := c.decode(raw)
	if err != nil {
		s.log.WithError(&CorruptStateError{Keys: []string{key}}).
			WithField("cause", err.Error()).
			Warn("falling back to seed defaults")
		return c.seed(), nil
	}
	if records == nil {
		// A stored null reads as a never-written collection.
		return c.seed(), nil
	}
	return records, nil
}

// write replaces the whole persisted collection.
func (c collection[T, P]) write(s *Store, records []P) error {
	key := c.name.Key()

	payload, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "could not serialize %s", key)
	}

	if err = s.db.Set(key, payload); err != nil {
		return s.storageError(err, key)
	}
	return nil
}

// fetch returns the collection after the simulated latency.
func (c collection[T, P]) fetch(ctx context.Context, s *Store) ([]P, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return c.read(s)
}

// mutate runs a read-modify-write sequence under the collection lock.
func (c collection[T, P]) mutate(ctx context.Context, s *Store, fn func([]P) []P) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	mu := s.lock(c.name.Key())
	mu.Lock()
	defer mu.Unlock()

	records, err := c.read(s)
	if err != nil {
		return err
	}
	return c.write(s, fn(records))
}

// insert stores a copy of r with a fresh id according to the collection ordering rule.
// prepare is applied to the copy before insertion.
func (c collection[T, P]) insert(ctx context.Context, s *Store, r P, prepare func(P)) (string, error) {
	if r == nil {
		return "", errors.Errorf("could not insert nil record in %s", c.name)
	}

	v := *(*T)(r)
	fresh := P(&v)
	id := s.newID()
	fresh.SetID(id)
	if prepare != nil {
		prepare(fresh)
	}

	err := c.mutate(ctx, s, func(records []P) []P {
		if c.name.Prepend() {
			return append([]P{fresh}, records...)
		}
		return append(records, fresh)
	})
	if err != nil {
		return "", err
	}

	s.log.WithField("collection", c.name).WithField("id", id).Debug("record created")
	return id, nil
}

// save implements the upsert by id.
// Without id a new record is inserted, otherwise the non-zero fields of patch are merged
// into the record with the same id. An unknown id is ignored.
func (c collection[T, P]) save(ctx context.Context, s *Store, patch P) (string, error) {
	return c.update(ctx, s, patch, func(dst, src P) {
		structs.Merge(dst, src, "Base")
	})
}

// patch behaves like save but only the given fields are merged, zero values included.
func (c collection[T, P]) patch(ctx context.Context, s *Store, patch P, fields []string) (string, error) {
	for _, name := range fields {
		if name == "Base" || !structs.HasField(patch, name) {
			return "", errors.Errorf("could not patch unknown field %s in %s", name, c.name)
		}
	}

	return c.update(ctx, s, patch, func(dst, src P) {
		structs.MergeFields(dst, src, fields...)
	})
}

func (c collection[T, P]) update(ctx context.Context, s *Store, patch P, merge func(dst, src P)) (string, error) {
	if patch == nil {
		return "", errors.Errorf("could not save nil record in %s", c.name)
	}

	id := patch.GetID()
	if id == "" {
		return c.insert(ctx, s, patch, nil)
	}

	var found bool
	err := c.mutate(ctx, s, func(records []P) []P {
		for _, r := range records {
			if r.GetID() == id {
				merge(r, patch)
				found = true
			}
		}
		return records
	})
	if err != nil {
		return "", err
	}

	s.log.WithField("collection", c.name).WithField("id", id).WithField("found", found).Debug("record saved")
	return id, nil
}

// remove implements the idempotent delete by id.
func (c collection[T, P]) remove(ctx context.Context, s *Store, id string) error {
	err := c.mutate(ctx, s, func(records []P) []P {
		kept := records[:0]
		for _, r := range records {
			if r.GetID() != id {
				kept = append(kept, r)
			}
		}
		return kept
	})
	if err != nil {
		return err
	}

	s.log.WithField("collection", c.name).WithField("id", id).Debug("record deleted")
	return nil
}
