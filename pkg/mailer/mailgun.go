package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers one email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun sends through the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	From    string
	Timeout time.Duration
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), From: from, Timeout: 10 * time.Second}
}

// Send sends one message; html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.From, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}

// Deliver renders the job and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	subject, text, html, err := job.Render()
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
