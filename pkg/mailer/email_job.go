package mailer

import (
	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	mailtpl "github.com/oksasatya/go-profile-manager/pkg/mailer/templates"
)

// EmailJob is a rendered-on-demand email derived from a profile event.
type EmailJob struct {
	To       string
	Template string
	Data     mailtpl.EmailData
}

// JobForEvent maps a profile event to an email. ok is false for events that
// send nothing (updates, clears, profiles without an email).
func JobForEvent(evt entity.ProfileEvent, appName, companyName string) (EmailJob, bool) {
	var tpl string
	switch evt.Type {
	case entity.ProfileCreated:
		tpl = mailtpl.ProfileWelcome
	case entity.ProfileDeleted:
		tpl = mailtpl.ProfileRemoved
	default:
		return EmailJob{}, false
	}
	p := evt.Profile
	if p.Email == "" {
		return EmailJob{}, false
	}
	return EmailJob{
		To:       p.Email,
		Template: tpl,
		Data:     mailtpl.NewEmailData(appName, companyName, p.Name, p.Email, p.Role, evt.OccurredAt),
	}, true
}

// Render produces subject, text and html for the job.
func (j EmailJob) Render() (subject, text, html string, err error) {
	return mailtpl.Render(j.Template, j.Data)
}
