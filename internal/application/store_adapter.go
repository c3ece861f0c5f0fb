package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-profile-manager/internal/domain/repository"
)

// LoadState is the observable state of a StoreAdapter.
type LoadState[T any] struct {
	Data      T      `json:"data"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
	SaveError string `json:"save_error,omitempty"`
}

// SaveResult reports the outcome of a write. Callers must branch on OK:
// a failed save leaves both the stored value and the mirror untouched.
type SaveResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// StoreAdapter mirrors one JSON value kept under a single key of a KVStore.
// The mirror only ever changes to a value that was just written (or read)
// successfully.
type StoreAdapter[T any] struct {
	kv        repo.KVStore
	key       string
	def       T
	clone     func(T) T
	loadDelay time.Duration
	logger    *logrus.Logger

	writeMu sync.Mutex

	mu      sync.RWMutex
	data    T
	loading bool
	loadErr string
	saveErr string
	closed  bool
}

type AdapterOption[T any] func(*StoreAdapter[T])

// WithLoadDelay delays every load attempt by d to model I/O latency.
func WithLoadDelay[T any](d time.Duration) AdapterOption[T] {
	return func(a *StoreAdapter[T]) { a.loadDelay = d }
}

// WithClone sets how values are copied when handed out of the adapter.
func WithClone[T any](fn func(T) T) AdapterOption[T] {
	return func(a *StoreAdapter[T]) { a.clone = fn }
}

func WithLogger[T any](l *logrus.Logger) AdapterOption[T] {
	return func(a *StoreAdapter[T]) { a.logger = l }
}

// NewStoreAdapter binds an adapter to key, starting from def until Load runs.
func NewStoreAdapter[T any](kv repo.KVStore, key string, def T, opts ...AdapterOption[T]) *StoreAdapter[T] {
	a := &StoreAdapter[T]{
		kv:    kv,
		key:   key,
		def:   def,
		clone: func(v T) T { return v },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.data = a.clone(def)
	return a
}

// Key returns the storage key the adapter is bound to.
func (a *StoreAdapter[T]) Key() string { return a.key }

// Load reads and decodes the stored value after the configured delay.
// A missing key yields the default; an unreadable or undecodable value yields
// the default plus an error message in the state. ctx acts as the liveness
// token: once it is done, or the adapter is closed, nothing is committed.
// Saves issued while a load is reading wait for it to commit.
func (a *StoreAdapter[T]) Load(ctx context.Context) (LoadState[T], error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return a.State(), ErrAdapterClosed
	}
	a.loading = true
	a.mu.Unlock()

	if err := sleepCtx(ctx, a.loadDelay); err != nil {
		return a.State(), err
	}

	// read and commit under the write lock so a concurrent Save cannot be
	// overwritten by the older value read here
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	next := a.clone(a.def)
	var msg string
	raw, found, err := a.kv.Get(ctx, a.key)
	switch {
	case err != nil:
		msg = fmt.Sprintf("Failed to load saved data: %v", err)
	case found:
		var decoded T
		if dErr := json.Unmarshal([]byte(raw), &decoded); dErr != nil {
			msg = fmt.Sprintf("Saved data is corrupted and was ignored: %v", dErr)
		} else {
			next = decoded
		}
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return a.State(), ErrAdapterClosed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		a.mu.Unlock()
		return a.State(), ctxErr
	}
	a.data = next
	a.loadErr = msg
	a.loading = false
	a.mu.Unlock()

	if a.logger != nil {
		entry := a.logger.WithField("key", a.key).WithField("found", found)
		if msg != "" {
			entry.WithField("reason", msg).Warn("load fell back to default")
		} else {
			entry.Debug("loaded")
		}
	}
	return a.State(), nil
}

// Save encodes next and writes it under the key. The mirror is replaced only
// when the write succeeded.
func (a *StoreAdapter[T]) Save(ctx context.Context, next T) SaveResult {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	b, err := json.Marshal(next)
	if err != nil {
		return a.failSave(fmt.Errorf("encode %s: %w", a.key, err))
	}
	if err := a.kv.Set(ctx, a.key, string(b)); err != nil {
		return a.failSave(err)
	}
	a.mu.Lock()
	a.data = a.clone(next)
	a.saveErr = ""
	a.mu.Unlock()
	return SaveResult{OK: true}
}

// Clear removes the key entirely and resets the mirror to the default.
func (a *StoreAdapter[T]) Clear(ctx context.Context) SaveResult {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	if err := a.kv.Remove(ctx, a.key); err != nil {
		return a.failSave(err)
	}
	a.mu.Lock()
	a.data = a.clone(a.def)
	a.saveErr = ""
	a.mu.Unlock()
	return SaveResult{OK: true}
}

func (a *StoreAdapter[T]) failSave(err error) SaveResult {
	a.mu.Lock()
	a.saveErr = err.Error()
	a.mu.Unlock()
	if a.logger != nil {
		a.logger.WithError(err).WithField("key", a.key).Error("save failed")
	}
	return SaveResult{OK: false, Error: err.Error(), Err: err}
}

// State returns a copy of the current mirror and flags.
func (a *StoreAdapter[T]) State() LoadState[T] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return LoadState[T]{
		Data:      a.clone(a.data),
		Loading:   a.loading,
		Error:     a.loadErr,
		SaveError: a.saveErr,
	}
}

// DismissError clears the load error banner.
func (a *StoreAdapter[T]) DismissError() {
	a.mu.Lock()
	a.loadErr = ""
	a.mu.Unlock()
}

// Close tears the adapter down; in-flight loads will not commit afterwards.
func (a *StoreAdapter[T]) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
