package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-manager/internal/domain/repository"
)

func TestKVStoreBasics(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(0)

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Remove(ctx, "k"))
	require.NoError(t, s.Remove(ctx, "k"))
	assert.Equal(t, 0, s.Len())
}

func TestKVStoreQuota(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(10)

	require.NoError(t, s.Set(ctx, "k", "123456789"))
	// overwriting only counts the new value
	require.NoError(t, s.Set(ctx, "k", "987654321"))

	err := s.Set(ctx, "k", "1234567890")
	require.ErrorIs(t, err, repository.ErrQuotaExceeded)
	v, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "987654321", v)

	require.ErrorIs(t, s.Set(ctx, "other", "x"), repository.ErrQuotaExceeded)
}

func TestKVStoreFailNextSet(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(0)
	boom := errors.New("boom")

	s.FailNextSet(boom)
	assert.ErrorIs(t, s.Set(ctx, "k", "v"), boom)
	assert.NoError(t, s.Set(ctx, "k", "v"))
}
