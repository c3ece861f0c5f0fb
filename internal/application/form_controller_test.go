package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
)

func TestFormSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		draft   entity.ProfileDraft
		wantErr map[string]string
	}{
		{"valid", entity.ProfileDraft{Name: "Ada", Email: "ada@example.com"}, nil},
		{"valid with padding", entity.ProfileDraft{Name: " Ada ", Email: " ada@example.com "}, nil},
		{"blank name", entity.ProfileDraft{Name: "   ", Email: "ada@example.com"}, map[string]string{"name": "is required"}},
		{"empty email", entity.ProfileDraft{Name: "Ada"}, map[string]string{"email": "is required"}},
		{"no tld", entity.ProfileDraft{Name: "Ada", Email: "ada@example"}, map[string]string{"email": "must be a valid email"}},
		{"whitespace inside", entity.ProfileDraft{Name: "Ada", Email: "a da@example.com"}, map[string]string{"email": "must be a valid email"}},
		{"both", entity.ProfileDraft{Email: "nope"}, map[string]string{"name": "is required", "email": "must be a valid email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormController()
			f.OpenCreate()
			require.NoError(t, f.SetDraft(tt.draft))

			calls := 0
			details, err := f.Submit(context.Background(), func(context.Context, string, entity.ProfileDraft) error {
				calls++
				return nil
			})

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, 1, calls)
				assert.Empty(t, f.State().Errors)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, calls)
			assert.Equal(t, tt.wantErr, details)
			assert.Equal(t, tt.wantErr, f.State().Errors)
		})
	}
}

func TestFormOpenEditSeedsDraft(t *testing.T) {
	f := NewFormController()
	p := sampleProfiles()[0]
	f.OpenEdit(p)

	st := f.State()
	assert.Equal(t, FormEdit, st.Mode)
	assert.Equal(t, p.ID, st.EditingID)
	assert.Equal(t, entity.DraftFrom(p), st.Draft)

	require.NoError(t, f.SetField("role", "Rear Admiral"))
	var gotID string
	var got entity.ProfileDraft
	_, err := f.Submit(context.Background(), func(_ context.Context, id string, d entity.ProfileDraft) error {
		gotID, got = id, d
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, gotID)
	assert.Equal(t, "Rear Admiral", got.Role)
}

func TestFormSetFieldRules(t *testing.T) {
	f := NewFormController()
	require.ErrorIs(t, f.SetField("name", "x"), ErrFormClosed)

	f.OpenCreate()
	require.ErrorIs(t, f.SetField("id", "x"), ErrUnknownField)
	for _, field := range []string{"name", "email", "role", "avatar"} {
		require.NoError(t, f.SetField(field, field+"-value"))
	}
	assert.Equal(t, entity.ProfileDraft{Name: "name-value", Email: "email-value", Role: "role-value", Avatar: "avatar-value"}, f.State().Draft)
}

func TestFormCancelDiscardsDraft(t *testing.T) {
	f := NewFormController()
	f.OpenCreate()
	require.NoError(t, f.SetField("name", "Ada"))

	f.Cancel()
	assert.Equal(t, FormState{Mode: FormClosed}, f.State())

	_, err := f.Submit(context.Background(), func(context.Context, string, entity.ProfileDraft) error {
		t.Fatal("submit on a closed form must not call the handler")
		return nil
	})
	assert.ErrorIs(t, err, ErrFormClosed)
}

func TestFormSubmitReturnsHandlerError(t *testing.T) {
	f := NewFormController()
	f.OpenCreate()
	require.NoError(t, f.SetDraft(entity.ProfileDraft{Name: "Ada", Email: "ada@example.com"}))
	boom := errors.New("boom")

	details, err := f.Submit(context.Background(), func(context.Context, string, entity.ProfileDraft) error { return boom })
	assert.Nil(t, details)
	assert.ErrorIs(t, err, boom)
}

func TestFormSetFieldsIsAllOrNothing(t *testing.T) {
	f := NewFormController()
	f.OpenCreate()
	require.NoError(t, f.SetDraft(entity.ProfileDraft{Name: "Ada"}))

	err := f.SetFields(map[string]string{"name": "Grace", "email": "grace@example.com", "id": "x"})
	require.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, entity.ProfileDraft{Name: "Ada"}, f.State().Draft)

	require.NoError(t, f.SetFields(map[string]string{"name": "Grace", "role": "Admiral"}))
	assert.Equal(t, entity.ProfileDraft{Name: "Grace", Role: "Admiral"}, f.State().Draft)
}
