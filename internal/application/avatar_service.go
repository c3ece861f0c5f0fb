package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrAvatarStorageDisabled = errors.New("avatar storage not configured")
	ErrUnsupportedAvatar     = errors.New("avatar must be an image")
)

// ObjectUploader stores an object and returns its public URL.
type ObjectUploader func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)

// AvatarService uploads avatar images; the returned URL goes into a draft's
// avatar field. It never touches the profile collection itself.
type AvatarService struct {
	Upload ObjectUploader
	Prefix string
}

func NewAvatarService(upload ObjectUploader) *AvatarService {
	return &AvatarService{Upload: upload, Prefix: "avatars"}
}

func (s *AvatarService) UploadAvatar(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if s == nil || s.Upload == nil {
		return "", ErrAvatarStorageDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrUnsupportedAvatar
	}
	ext := strings.ToLower(path.Ext(filename))
	objectPath := path.Join(s.Prefix, uuid.NewString()+ext)
	return s.Upload(ctx, objectPath, contentType, r)
}
