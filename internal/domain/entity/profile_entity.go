package entity

import (
	"strings"
	"time"
)

// Profile is a single user record in the managed collection.
// CreatedAt is set once on creation and never changed by edits.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// ProfileDraft holds the editable fields of a profile
type ProfileDraft struct {
	Name   string `json:"name" validate:"notblank"`
	Email  string `json:"email" validate:"required,simple_email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// DraftFrom seeds a draft from an existing profile.
func DraftFrom(p Profile) ProfileDraft {
	return ProfileDraft{Name: p.Name, Email: p.Email, Role: p.Role, Avatar: p.Avatar}
}

// Apply overwrites every editable field of p with the draft values.
// ID and CreatedAt are left untouched; name and email are stored trimmed.
func (d ProfileDraft) Apply(p Profile) Profile {
	p.Name = strings.TrimSpace(d.Name)
	p.Email = strings.TrimSpace(d.Email)
	p.Role = d.Role
	p.Avatar = d.Avatar
	return p
}

// IndexOf returns the position of id in profiles or -1.
func IndexOf(profiles []Profile, id string) int {
	for i := range profiles {
		if profiles[i].ID == id {
			return i
		}
	}
	return -1
}
