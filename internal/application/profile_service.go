package application

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	repo "github.com/oksasatya/go-profile-manager/internal/domain/repository"
)

const (
	DefaultSaveDelay   = 500 * time.Millisecond
	DefaultDeleteDelay = 350 * time.Millisecond
)

// ProfileStore is the adapter type the service persists through.
type ProfileStore = StoreAdapter[[]entity.Profile]

// NewProfileStore returns an adapter for the profile collection stored under key.
func NewProfileStore(kv repo.KVStore, key string, loadDelay time.Duration, logger *logrus.Logger) *ProfileStore {
	return NewStoreAdapter(kv, key, []entity.Profile{},
		WithLoadDelay[[]entity.Profile](loadDelay),
		WithClone(cloneProfiles),
		WithLogger[[]entity.Profile](logger),
	)
}

func cloneProfiles(p []entity.Profile) []entity.Profile {
	if p == nil {
		return []entity.Profile{}
	}
	return slices.Clone(p)
}

// ProfileService runs the create/update/delete/clear flows against the
// collection mirror. Every flow writes first and reflects the written value;
// outcomes are reported through the Toaster.
type ProfileService struct {
	Store  *ProfileStore
	Toast  *Toaster
	Logger *logrus.Logger

	Publisher EventPublisher
	Indexer   ProfileIndexer
	Metrics   MutationObserver

	SaveDelay   time.Duration
	DeleteDelay time.Duration
	Now         func() time.Time
	NewID       func() string
	// OnSettled runs after every mutation, successful or not (closes the form).
	OnSettled func()

	mu   sync.Mutex
	busy atomic.Bool
}

func NewProfileService(store *ProfileStore, toast *Toaster, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		Store:       store,
		Toast:       toast,
		Logger:      logger,
		SaveDelay:   DefaultSaveDelay,
		DeleteDelay: DefaultDeleteDelay,
		Now:         time.Now,
		NewID:       uuid.NewString,
	}
}

// Busy reports whether a mutation is in flight.
func (s *ProfileService) Busy() bool { return s.busy.Load() }

// List returns a copy of the current collection.
func (s *ProfileService) List() []entity.Profile {
	return s.Store.State().Data
}

// Get looks a profile up by id in the mirror.
func (s *ProfileService) Get(id string) (entity.Profile, bool) {
	list := s.List()
	if i := entity.IndexOf(list, id); i >= 0 {
		return list[i], true
	}
	return entity.Profile{}, false
}

// Create prepends a new profile with a fresh id and creation time.
func (s *ProfileService) Create(ctx context.Context, d entity.ProfileDraft) (entity.Profile, error) {
	return s.mutate(ctx, "create", s.SaveDelay, "Profile created", entity.ProfileCreated,
		func(cur []entity.Profile) ([]entity.Profile, entity.Profile, error) {
			id := s.NewID()
			for entity.IndexOf(cur, id) >= 0 {
				id = s.NewID()
			}
			p := d.Apply(entity.Profile{ID: id, CreatedAt: s.Now().UTC()})
			next := make([]entity.Profile, 0, len(cur)+1)
			next = append(next, p)
			next = append(next, cur...)
			return next, p, nil
		})
}

// Update overwrites the editable fields of the profile with id; id and
// CreatedAt are preserved.
func (s *ProfileService) Update(ctx context.Context, id string, d entity.ProfileDraft) (entity.Profile, error) {
	return s.mutate(ctx, "update", s.SaveDelay, "Profile updated", entity.ProfileUpdated,
		func(cur []entity.Profile) ([]entity.Profile, entity.Profile, error) {
			i := entity.IndexOf(cur, id)
			if i < 0 {
				return nil, entity.Profile{}, fmt.Errorf("update %s: %w", id, ErrProfileNotFound)
			}
			next := slices.Clone(cur)
			next[i] = d.Apply(cur[i])
			return next, next[i], nil
		})
}

// Delete removes the profile with id. Callers are expected to have obtained
// confirmation first (see ConfirmDialog).
func (s *ProfileService) Delete(ctx context.Context, id string) (entity.Profile, error) {
	return s.mutate(ctx, "delete", s.DeleteDelay, "Profile deleted", entity.ProfileDeleted,
		func(cur []entity.Profile) ([]entity.Profile, entity.Profile, error) {
			i := entity.IndexOf(cur, id)
			if i < 0 {
				return nil, entity.Profile{}, fmt.Errorf("delete %s: %w", id, ErrProfileNotFound)
			}
			next := make([]entity.Profile, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			return next, cur[i], nil
		})
}

// ClearAll removes the whole stored collection. Unlike Delete it takes no
// confirmation.
func (s *ProfileService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	start := time.Now()
	defer s.settle()

	res := s.Store.Clear(context.WithoutCancel(ctx))
	s.observe("clear", res.OK, time.Since(start))
	if !res.OK {
		s.Toast.Error("Failed to clear: " + res.Error)
		return fmt.Errorf("%w: %w", ErrSaveFailed, res.Err)
	}
	s.Toast.Success("All profiles cleared")
	s.afterWrite(ctx, entity.ProfilesClear, entity.Profile{})
	return nil
}

type computeFunc func(cur []entity.Profile) (next []entity.Profile, target entity.Profile, err error)

// mutate is the shared flow: busy, delay, compute from the mirror, save,
// toast, settle. Once started the write always runs to completion.
func (s *ProfileService) mutate(ctx context.Context, op string, delay time.Duration, okMsg string, evt entity.ProfileEventType, compute computeFunc) (entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	start := time.Now()
	defer s.settle()

	if delay > 0 {
		time.Sleep(delay)
	}

	next, target, err := compute(s.Store.State().Data)
	if err != nil {
		s.observe(op, false, time.Since(start))
		s.Toast.Error("Profile not found")
		return entity.Profile{}, err
	}

	res := s.Store.Save(context.WithoutCancel(ctx), next)
	s.observe(op, res.OK, time.Since(start))
	if !res.OK {
		s.Toast.Error("Failed to save: " + res.Error)
		return entity.Profile{}, fmt.Errorf("%w: %w", ErrSaveFailed, res.Err)
	}
	s.Toast.Success(okMsg)
	s.afterWrite(ctx, evt, target)
	return target, nil
}

func (s *ProfileService) settle() {
	s.busy.Store(false)
	if s.OnSettled != nil {
		s.OnSettled()
	}
}

func (s *ProfileService) observe(op string, ok bool, took time.Duration) {
	if s.Metrics != nil {
		s.Metrics.ObserveMutation(op, ok, took)
	}
}

// afterWrite fans a persisted change out to the optional publisher and
// search index. Failures there are logged only.
func (s *ProfileService) afterWrite(ctx context.Context, typ entity.ProfileEventType, p entity.Profile) {
	ctx = context.WithoutCancel(ctx)
	if s.Publisher != nil {
		evt := entity.ProfileEvent{Type: typ, StorageKey: s.Store.Key(), Profile: p, OccurredAt: s.Now().UTC()}
		if err := s.Publisher.PublishJSON(ctx, evt); err != nil {
			s.warn(err, "publish profile event failed", typ, p.ID)
		}
	}
	if s.Indexer != nil {
		var err error
		switch typ {
		case entity.ProfileCreated, entity.ProfileUpdated:
			err = s.Indexer.Index(ctx, p)
		case entity.ProfileDeleted:
			err = s.Indexer.Delete(ctx, p.ID)
		case entity.ProfilesClear:
			err = s.Indexer.DeleteAll(ctx)
		}
		if err != nil {
			s.warn(err, "search index update failed", typ, p.ID)
		}
	}
}

func (s *ProfileService) warn(err error, msg string, typ entity.ProfileEventType, id string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(logrus.Fields{"event": typ, "profile_id": id}).Warn(msg)
}
