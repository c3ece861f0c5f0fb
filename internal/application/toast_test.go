package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
)

func TestToastReplacesAndStampsExpiry(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tt := NewToaster(time.Hour)
	tt.now = func() time.Time { return at }
	defer tt.Dismiss()

	tt.Success("first")
	n := tt.Error("second")

	cur, ok := tt.Current()
	require.True(t, ok)
	assert.Equal(t, n, cur)
	assert.Equal(t, entity.NotificationError, cur.Kind)
	assert.Equal(t, "second", cur.Message)
	assert.Equal(t, at.Add(time.Hour), cur.ExpiresAt)
}

func TestToastAutoDismisses(t *testing.T) {
	tt := NewToaster(30 * time.Millisecond)
	tt.Success("saved")

	require.Eventually(t, func() bool {
		_, ok := tt.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestToastTimerResetsOnReplacement(t *testing.T) {
	const ttl = 200 * time.Millisecond
	tt := NewToaster(ttl)
	defer tt.Dismiss()

	tt.Success("first")
	time.Sleep(120 * time.Millisecond)
	tt.Success("second")
	// past the first toast's deadline, inside the second's
	time.Sleep(120 * time.Millisecond)

	cur, ok := tt.Current()
	require.True(t, ok, "replacement must restart the timer")
	assert.Equal(t, "second", cur.Message)

	require.Eventually(t, func() bool {
		_, ok := tt.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestToastDismiss(t *testing.T) {
	tt := NewToaster(time.Hour)
	tt.Success("saved")
	tt.Dismiss()

	_, ok := tt.Current()
	assert.False(t, ok)
}

func TestToastZeroTTLKeepsUntilReplaced(t *testing.T) {
	tt := NewToaster(0)
	n := tt.Success("sticky")

	assert.True(t, n.ExpiresAt.IsZero())
	_, ok := tt.Current()
	assert.True(t, ok)
}
