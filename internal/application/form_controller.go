package application

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	"github.com/oksasatya/go-profile-manager/pkg/validation"
)

type FormMode string

const (
	FormClosed FormMode = "closed"
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// FormState is a snapshot of the controller.
type FormState struct {
	Mode      FormMode            `json:"mode"`
	EditingID string              `json:"editing_id,omitempty"`
	Draft     entity.ProfileDraft `json:"draft"`
	Errors    map[string]string   `json:"errors,omitempty"`
}

// SubmitFunc receives a validated draft. editingID is empty when creating.
type SubmitFunc func(ctx context.Context, editingID string, d entity.ProfileDraft) error

// FormController keeps the draft of exactly one profile. Validation runs on
// Submit only; the controller never writes to storage itself.
type FormController struct {
	mu        sync.Mutex
	validate  *validator.Validate
	mode      FormMode
	editingID string
	draft     entity.ProfileDraft
	errors    map[string]string
}

func NewFormController() *FormController {
	return &FormController{validate: validation.New(), mode: FormClosed}
}

// OpenCreate starts a blank draft.
func (f *FormController) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = FormCreate
	f.editingID = ""
	f.draft = entity.ProfileDraft{}
	f.errors = nil
}

// OpenEdit seeds the draft from p.
func (f *FormController) OpenEdit(p entity.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = FormEdit
	f.editingID = p.ID
	f.draft = entity.DraftFrom(p)
	f.errors = nil
}

// SetField updates one field of the open draft by its JSON name.
func (f *FormController) SetField(field, value string) error {
	return f.SetFields(map[string]string{field: value})
}

// SetFields updates several fields at once. Nothing is applied when any
// name is unknown.
func (f *FormController) SetFields(fields map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == FormClosed {
		return ErrFormClosed
	}
	for name := range fields {
		if !isDraftField(name) {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	for name, value := range fields {
		switch name {
		case "name":
			f.draft.Name = value
		case "email":
			f.draft.Email = value
		case "role":
			f.draft.Role = value
		case "avatar":
			f.draft.Avatar = value
		}
	}
	return nil
}

func isDraftField(name string) bool {
	switch name {
	case "name", "email", "role", "avatar":
		return true
	}
	return false
}

// SetDraft replaces the whole draft of the open form.
func (f *FormController) SetDraft(d entity.ProfileDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == FormClosed {
		return ErrFormClosed
	}
	f.draft = d
	return nil
}

func (f *FormController) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{Mode: f.mode, EditingID: f.editingID, Draft: f.draft, Errors: maps.Clone(f.errors)}
}

// Submit validates the draft and, when valid, hands it to fn exactly once.
// On validation failure the field messages are returned with ErrValidation
// and fn is not called.
func (f *FormController) Submit(ctx context.Context, fn SubmitFunc) (map[string]string, error) {
	f.mu.Lock()
	if f.mode == FormClosed {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	draft, editingID := f.draft, f.editingID
	if err := f.validate.Struct(draft); err != nil {
		f.errors = validation.ToDetails(err)
		details := maps.Clone(f.errors)
		f.mu.Unlock()
		return details, ErrValidation
	}
	f.errors = nil
	f.mu.Unlock()

	return nil, fn(ctx, editingID, draft)
}

// Cancel discards the draft without side effects.
func (f *FormController) Cancel() { f.Close() }

func (f *FormController) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = FormClosed
	f.editingID = ""
	f.draft = entity.ProfileDraft{}
	f.errors = nil
}
