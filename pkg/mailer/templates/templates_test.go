package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	data := NewEmailData("Profiles", "", "Ada <script>", "ada@example.com", "Engineer", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))

	subject, text, html, err := Render(ProfileWelcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Profiles, Ada <script>", subject)
	assert.Contains(t, text, `with the role "Engineer" on 01 May 2024, 08:00 UTC.`)
	assert.Contains(t, text, "Profile Manager", "empty company falls back")
	assert.Contains(t, html, "Ada &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestRenderRemovedWithoutRole(t *testing.T) {
	data := NewEmailData("", "Acme", "Grace", "grace@example.com", "", time.Now())

	subject, text, _, err := Render(ProfileRemoved, data)
	require.NoError(t, err)
	assert.Equal(t, "Your Profile Manager profile was removed", subject)
	assert.NotContains(t, text, "role")
	assert.Contains(t, text, "Acme")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", EmailData{})
	assert.Error(t, err)
}
