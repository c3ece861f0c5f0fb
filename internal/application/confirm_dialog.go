package application

import (
	"context"
	"sync"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
)

// DeleteFunc performs the delete flow for a confirmed target.
type DeleteFunc func(ctx context.Context, id string) error

// ConfirmDialog guards single-record deletes: closed -> open(target) -> closed.
// Only one confirmation may be open at a time.
type ConfirmDialog struct {
	mu         sync.Mutex
	target     *entity.Profile
	confirming bool
	onConfirm  DeleteFunc
}

func NewConfirmDialog(onConfirm DeleteFunc) *ConfirmDialog {
	return &ConfirmDialog{onConfirm: onConfirm}
}

func (d *ConfirmDialog) Open(target entity.Profile) error {
	if target.ID == "" {
		return ErrNoTarget
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.target != nil {
		return ErrConfirmationOpen
	}
	d.target = &target
	return nil
}

// Target returns the profile awaiting confirmation.
func (d *ConfirmDialog) Target() (entity.Profile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.target == nil {
		return entity.Profile{}, false
	}
	return *d.target, true
}

// Confirm runs the delete flow and closes the dialog whatever its outcome;
// failures are reported by the flow itself.
func (d *ConfirmDialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.target == nil || d.confirming {
		d.mu.Unlock()
		return ErrNoConfirmation
	}
	id := d.target.ID
	d.confirming = true
	d.mu.Unlock()

	err := d.onConfirm(ctx, id)

	d.mu.Lock()
	d.target = nil
	d.confirming = false
	d.mu.Unlock()
	return err
}

// Cancel closes the dialog without side effects.
func (d *ConfirmDialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.confirming {
		return
	}
	d.target = nil
}
