package application

import (
	"context"
	"strings"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
)

// Search matches q against name, email and role. The search index is used
// when one is configured; otherwise the mirror is scanned.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]entity.Profile, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	q = strings.TrimSpace(q)
	if s.Indexer != nil && q != "" {
		out, err := s.Indexer.Search(ctx, q, size)
		if err == nil {
			return out, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("index search failed, scanning collection")
		}
	}
	return filterProfiles(s.List(), q, size), nil
}

func filterProfiles(list []entity.Profile, q string, size int) []entity.Profile {
	needle := strings.ToLower(q)
	out := make([]entity.Profile, 0, min(size, len(list)))
	for _, p := range list {
		if len(out) == size {
			break
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) ||
			strings.Contains(strings.ToLower(p.Role), needle) {
			out = append(out, p)
		}
	}
	return out
}
