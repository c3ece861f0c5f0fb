package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "profiles.db")

	s, err := NewKVStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	_, found, err := s.Get(ctx, "user_profiles_v1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "user_profiles_v1", `[]`))
	require.NoError(t, s.Set(ctx, "user_profiles_v1", `[{"id":"a"}]`))
	require.NoError(t, s.Close())

	s, err = NewKVStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, found, err := s.Get(ctx, "user_profiles_v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, s.Remove(ctx, "user_profiles_v1"))
	require.NoError(t, s.Remove(ctx, "user_profiles_v1"))
	_, found, err = s.Get(ctx, "user_profiles_v1")
	require.NoError(t, err)
	assert.False(t, found)
}
