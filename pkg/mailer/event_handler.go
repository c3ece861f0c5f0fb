package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	"github.com/oksasatya/go-profile-manager/pkg/helpers"
)

// ErrBadMessage marks a message that can never be processed; it should be
// dropped rather than requeued.
var ErrBadMessage = errors.New("bad message")

// EventHandler turns profile events into emails.
type EventHandler struct {
	Sender      Sender
	AppName     string
	CompanyName string
	Logger      *logrus.Logger
}

// Handle decodes one queue message and delivers the email it maps to, if any.
func (h *EventHandler) Handle(ctx context.Context, body []byte) error {
	var evt entity.ProfileEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	job, ok := JobForEvent(evt, h.AppName, h.CompanyName)
	if !ok {
		h.info("event ignored", evt)
		return nil
	}
	if err := Deliver(ctx, h.Sender, job); err != nil {
		if _, _, _, rerr := job.Render(); rerr != nil {
			return fmt.Errorf("%w: render %s: %w", ErrBadMessage, job.Template, rerr)
		}
		return err
	}
	h.info("email sent", evt)
	return nil
}

func (h *EventHandler) info(msg string, evt entity.ProfileEvent) {
	if h.Logger == nil {
		return
	}
	helpers.LogInfo(h.Logger, msg, logrus.Fields{"event": evt.Type, "profile_id": evt.Profile.ID})
}

// LogSender is a Sender that only logs; used when MAIL_SEND_ENABLED is false.
type LogSender struct {
	Logger *logrus.Logger
}

func (s LogSender) Send(_ context.Context, to, subject, _, _ string) error {
	helpers.LogInfo(s.Logger, "mail send disabled; email not sent", logrus.Fields{"to": to, "subject": subject})
	return nil
}
