package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	repo "github.com/oksasatya/go-profile-manager/internal/domain/repository"
)

// DefaultStorageKey is the key the collection is persisted under. A change
// in document shape requires a new key.
const (
	DefaultStorageKey = "user_profiles_v1"
	DefaultLoadDelay  = 450 * time.Millisecond
)

// SessionConfig carries the timing knobs of a session. Zero delays make every
// flow synchronous, which is what tests use.
type SessionConfig struct {
	StorageKey  string
	LoadDelay   time.Duration
	SaveDelay   time.Duration
	DeleteDelay time.Duration
	ToastTTL    time.Duration
}

// Session is one mounted instance of the profile manager: it owns the
// collection mirror and the UI state machines around it.
type Session struct {
	Store    *ProfileStore
	Profiles *ProfileService
	Form     *FormController
	Confirm  *ConfirmDialog
	Toast    *Toaster
	Logger   *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSession(kv repo.KVStore, cfg SessionConfig, logger *logrus.Logger) *Session {
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	store := NewProfileStore(kv, cfg.StorageKey, cfg.LoadDelay, logger)
	toast := NewToaster(cfg.ToastTTL)
	svc := NewProfileService(store, toast, logger)
	svc.SaveDelay = cfg.SaveDelay
	svc.DeleteDelay = cfg.DeleteDelay

	form := NewFormController()
	svc.OnSettled = form.Close

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		Store:    store,
		Profiles: svc,
		Form:     form,
		Toast:    toast,
		Logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.Confirm = NewConfirmDialog(func(ctx context.Context, id string) error {
		_, err := svc.Delete(ctx, id)
		return err
	})
	return s
}

// Start begins the initial load in the background.
func (s *Session) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_, _ = s.Reload()
	}()
}

// Reload re-reads the collection from storage. It is bound to the session
// lifetime, not to the caller's request.
func (s *Session) Reload() (LoadState[[]entity.Profile], error) {
	st, err := s.Store.Load(s.ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrAdapterClosed) && s.Logger != nil {
		s.Logger.WithError(err).Warn("reload failed")
	}
	return st, err
}

// SaveDraft is the form's submit handler: create when editingID is empty,
// update otherwise.
func (s *Session) SaveDraft(ctx context.Context, editingID string, d entity.ProfileDraft) error {
	var err error
	if editingID == "" {
		_, err = s.Profiles.Create(ctx, d)
	} else {
		_, err = s.Profiles.Update(ctx, editingID, d)
	}
	return err
}

// Close tears the session down: pending loads are dropped and the toast timer stopped.
func (s *Session) Close() {
	s.cancel()
	s.Store.Close()
	s.wg.Wait()
	s.Toast.Dismiss()
}
