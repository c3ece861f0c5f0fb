package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/bucket/avatars/a1.png", PublicURL("bucket", "avatars/a1.png"))
	assert.Equal(t, "https://storage.googleapis.com/bucket/avatars/my%20face.png", PublicURL("bucket", "avatars/my face.png"))
}
