package application

import (
	"sync"
	"time"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
)

// DefaultToastTTL is how long a notification stays visible.
const DefaultToastTTL = 3 * time.Second

// Toaster holds at most one notification. Showing a new one replaces the
// current one and restarts the dismiss timer from zero.
type Toaster struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *entity.Notification
	timer   *time.Timer
	gen     uint64
	now     func() time.Time
}

// NewToaster returns a toaster dismissing after ttl; ttl <= 0 keeps toasts until replaced.
func NewToaster(ttl time.Duration) *Toaster {
	return &Toaster{ttl: ttl, now: time.Now}
}

func (t *Toaster) Success(msg string) entity.Notification {
	return t.Show(entity.NotificationSuccess, msg)
}

func (t *Toaster) Error(msg string) entity.Notification {
	return t.Show(entity.NotificationError, msg)
}

func (t *Toaster) Show(kind entity.NotificationKind, msg string) entity.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	now := t.now()
	n := entity.Notification{Kind: kind, Message: msg, CreatedAt: now}
	if t.ttl > 0 {
		n.ExpiresAt = now.Add(t.ttl)
		gen := t.gen
		t.timer = time.AfterFunc(t.ttl, func() { t.expire(gen) })
	}
	t.current = &n
	return n
}

// Current returns the visible notification, if any.
func (t *Toaster) Current() (entity.Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return entity.Notification{}, false
	}
	return *t.current, true
}

// Dismiss hides the current notification and cancels its timer.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.current = nil
}

// stopLocked cancels the pending timer. Bumping gen makes a timer that
// already fired but has not yet taken the lock a no-op.
func (t *Toaster) stopLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Toaster) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return
	}
	t.current = nil
	t.timer = nil
}
