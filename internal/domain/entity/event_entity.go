package entity

import "time"

// ProfileEventType names a persisted change to the collection.
type ProfileEventType string

const (
	ProfileCreated ProfileEventType = "profile.created"
	ProfileUpdated ProfileEventType = "profile.updated"
	ProfileDeleted ProfileEventType = "profile.deleted"
	ProfilesClear  ProfileEventType = "profile.cleared"
)

// ProfileEvent is published after a change has been written to the store.
// Profile is empty for ProfilesClear.
type ProfileEvent struct {
	Type       ProfileEventType `json:"type"`
	StorageKey string           `json:"storage_key"`
	Profile    Profile          `json:"profile,omitzero"`
	OccurredAt time.Time        `json:"occurred_at"`
}
