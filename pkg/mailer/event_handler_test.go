package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	mailtpl "github.com/oksasatya/go-profile-manager/pkg/mailer/templates"
)

type sent struct{ To, Subject, Text, HTML string }

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func event(t *testing.T, typ entity.ProfileEventType, p entity.Profile) []byte {
	t.Helper()
	b, err := json.Marshal(entity.ProfileEvent{Type: typ, StorageKey: "user_profiles_v1", Profile: p, OccurredAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return b
}

func TestJobForEvent(t *testing.T) {
	p := entity.Profile{ID: "a", Name: "Ada", Email: "ada@example.com"}
	tests := []struct {
		typ    entity.ProfileEventType
		p      entity.Profile
		wantOK bool
		tpl    string
	}{
		{entity.ProfileCreated, p, true, mailtpl.ProfileWelcome},
		{entity.ProfileDeleted, p, true, mailtpl.ProfileRemoved},
		{entity.ProfileUpdated, p, false, ""},
		{entity.ProfilesClear, entity.Profile{}, false, ""},
		{entity.ProfileCreated, entity.Profile{ID: "b", Name: "No Mail"}, false, ""},
	}
	for _, tt := range tests {
		job, ok := JobForEvent(entity.ProfileEvent{Type: tt.typ, Profile: tt.p}, "Profiles", "Acme")
		assert.Equal(t, tt.wantOK, ok, tt.typ)
		if ok {
			assert.Equal(t, tt.tpl, job.Template)
			assert.Equal(t, tt.p.Email, job.To)
			assert.Equal(t, "Acme", job.Data.CompanyName)
		}
	}
}

func TestEventHandlerSendsWelcome(t *testing.T) {
	s := &fakeSender{}
	h := &EventHandler{Sender: s, AppName: "Profiles"}

	require.NoError(t, h.Handle(context.Background(), event(t, entity.ProfileCreated, entity.Profile{ID: "a", Name: "Ada", Email: "ada@example.com"})))

	require.Len(t, s.sent, 1)
	assert.Equal(t, "ada@example.com", s.sent[0].To)
	assert.Equal(t, "Welcome to Profiles, Ada", s.sent[0].Subject)
	assert.Contains(t, s.sent[0].HTML, "ada@example.com")
}

func TestEventHandlerIgnoresUpdates(t *testing.T) {
	s := &fakeSender{}
	h := &EventHandler{Sender: s}

	require.NoError(t, h.Handle(context.Background(), event(t, entity.ProfileUpdated, entity.Profile{ID: "a", Email: "ada@example.com"})))
	assert.Empty(t, s.sent)
}

func TestEventHandlerErrors(t *testing.T) {
	h := &EventHandler{Sender: &fakeSender{}}
	err := h.Handle(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrBadMessage)

	down := errors.New("mailgun down")
	h = &EventHandler{Sender: &fakeSender{err: down}}
	err = h.Handle(context.Background(), event(t, entity.ProfileDeleted, entity.Profile{ID: "a", Name: "Ada", Email: "ada@example.com"}))
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrBadMessage, "send failures are retryable")
}
