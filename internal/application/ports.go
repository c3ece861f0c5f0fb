package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
)

// EventPublisher receives a ProfileEvent after each successful write.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileIndexer mirrors the collection into a search index.
type ProfileIndexer interface {
	Index(ctx context.Context, p entity.Profile) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Search(ctx context.Context, q string, size int) ([]entity.Profile, error)
}

// MutationObserver records the outcome of each mutation flow.
type MutationObserver interface {
	ObserveMutation(op string, ok bool, took time.Duration)
}
