package store

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/logger"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultLatency is the delay applied to every operation, it mimics a network round trip.
const DefaultLatency = 600 * time.Millisecond

var (
	// ErrUnavailable is returned when the storage area can't be reached.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded is returned when a write exceeds the storage area capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrImageRead is returned when an image can't be read.
	ErrImageRead = errors.New("could not read image")
)

type (
	// Content is the call surface of the content store.
	// It is implemented by the local Store and by the HTTP client.
	Content interface {
		FetchLeads(ctx context.Context) ([]*model.Lead, error)
		SubmitLead(ctx context.Context, lead *model.Lead) (string, error)
		DeleteLead(ctx context.Context, id string) error

		FetchProjects(ctx context.Context) ([]*model.Project, error)
		SaveProject(ctx context.Context, project *model.Project) (string, error)
		DeleteProject(ctx context.Context, id string) error

		FetchServices(ctx context.Context) ([]*model.Service, error)
		SaveService(ctx context.Context, service *model.Service) (string, error)
		DeleteService(ctx context.Context, id string) error

		FetchTechStack(ctx context.Context) ([]*model.TechItem, error)
		SaveTechItem(ctx context.Context, item *model.TechItem) (string, error)
		DeleteTechItem(ctx context.Context, id string) error

		AdminLogin(ctx context.Context, email, password string) (model.Login, error)
		AdminLogout(ctx context.Context) error

		EncodeImage(ctx context.Context, r io.Reader) (string, error)
	}

	// A Config holds the Store settings.
	Config struct {
		// Latency is waited before each operation, zero disables it.
		Latency     time.Duration
		Credentials Credentials
		Logger      logrus.FieldLogger
		// Now and NewID are overridable for tests.
		Now   func() time.Time
		NewID func() string
	}

	// A Store owns the persisted collections.
	Store struct {
		db          database.Client
		log         logrus.FieldLogger
		latency     time.Duration
		credentials Credentials
		now         func() time.Time
		newID       func() string

		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}
)

// New returns a new Store backed by the given storage area.
func New(db database.Client, cfg Config) *Store {
	s := &Store{
		db:          db,
		log:         cfg.Logger,
		latency:     cfg.Latency,
		credentials: cfg.Credentials,
		now:         cfg.Now,
		newID:       cfg.NewID,
		locks:       map[string]*sync.Mutex{},
	}

	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.credentials.Email == "" {
		s.credentials = DefaultCredentials
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string {
			return uuid.Must(uuid.NewV4()).String()
		}
	}

	return s
}

// wait simulates the network latency.
// It returns early with the context error when ctx is done.
func (s *Store) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.latency <= 0 {
		return nil
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// lock returns the mutex guarding the given storage key.
func (s *Store) lock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.locks[key]
	if !ok {
		mu = new(sync.Mutex)
		s.locks[key] = mu
	}
	return mu
}

// storageError converts a storage area error into a store error.
func (s *Store) storageError(err error, key string) error {
	if s.db.IsQuotaExceeded(err) {
		return errors.Wrapf(ErrQuotaExceeded, "%s", key)
	}
	return errors.Wrapf(ErrUnavailable, "%s: %s", key, err)
}

// IsUnavailable returns true if err is caused by an unreachable storage area.
func IsUnavailable(err error) bool {
	return errors.Cause(err) == ErrUnavailable
}

// IsQuotaExceeded returns true if err is caused by a full storage area.
func IsQuotaExceeded(err error) bool {
	return errors.Cause(err) == ErrQuotaExceeded
}

// IsImageRead returns true if err is caused by an unreadable image.
func IsImageRead(err error) bool {
	return errors.Cause(err) == ErrImageRead
}
